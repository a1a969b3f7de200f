package generative

import (
	"fmt"
	"strings"

	"github.com/albapepper/scoracle-assistant/internal/sqlbuild"
)

func systemPrompt(columns []string) string {
	return fmt.Sprintf(`You are a Turkish Football League expert with access to a comprehensive database.
The database contains detailed statistics for teams including:
%s

Your task is to:
1. Analyze user questions about Turkish football
2. Generate appropriate SQL queries to fetch relevant data
3. Provide detailed, natural language responses using the data

Important rules:
- Always verify team names exist before querying
- Handle season specifications carefully (format: YY/YY)
- Provide context and insights in your answers
- Format numbers nicely in responses
- Use appropriate statistical comparisons when relevant`, strings.Join(columns, ", "))
}

func queryPrompt(question string, dialect sqlbuild.Dialect) string {
	engine := "PostgreSQL"
	if dialect == sqlbuild.SQLite {
		engine = "SQLite"
	}
	return fmt.Sprintf(`Based on the user's question, generate a SQL query to fetch the relevant data.
The database is %s and has tables: seasons (id, year), teams (id, name) and team_statistics with relationships:
- team_statistics.team_id references teams.id
- team_statistics.season_id references seasons.id
Seasons are stored as YY/YY, for example 24/25. Match team names case-insensitively with %s LIKE a lower-case pattern.

User question: %s

Return only a single SELECT statement without any explanation.`, engine, dialect.Fold("t.name"), question)
}

func narrationPrompt(question, statement, results string) string {
	return fmt.Sprintf(`Generate a natural language response to the user's question using the query results.

User question: %s
Query executed: %s
Query results: %s

Provide a detailed, informative response that:
1. Directly answers the user's question
2. Includes relevant statistics and context
3. Adds insights where appropriate
4. Uses natural, conversational language
If the results are empty, say that no matching data was found.`, question, statement, results)
}
