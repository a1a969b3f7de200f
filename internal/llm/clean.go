package llm

import (
	"regexp"
	"strings"
)

var (
	thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)
	fenced     = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")
	queryLine  = regexp.MustCompile(`(?im)^\s*(SELECT|WITH)\b`)
	selectWord = regexp.MustCompile(`(?i)\bSELECT\b`)
)

// CleanQuery strips the wrapping models put around a statement: reasoning
// blocks, markdown fences, comment lines, a "SQL:" label, prose before the
// statement and prose after a line-ending semicolon. The statement itself is
// not validated.
func CleanQuery(s string) string {
	s = thinkBlock.ReplaceAllString(s, "")
	// An unterminated reasoning block swallows the rest of the output.
	if i := strings.Index(s, "<think>"); i != -1 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)

	if m := fenced.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	s = strings.TrimSpace(strings.Join(kept, "\n"))

	if loc := queryLine.FindStringIndex(s); loc != nil {
		s = s[loc[0]:]
	} else if loc := selectWord.FindStringIndex(s); loc != nil {
		s = s[loc[0]:]
	}
	if i := strings.Index(s, ";\n"); i != -1 {
		s = s[:i+1]
	}
	for _, prefix := range []string{"SQL:", "Sql:", "sql:"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return strings.Trim(strings.TrimSpace(s), "`")
}
