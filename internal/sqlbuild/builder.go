package sqlbuild

import (
	"errors"
	"fmt"
	"strings"

	"github.com/albapepper/scoracle-assistant/internal/schema"
)

// ErrUnknownIdentifier is returned when a table or column is not in the
// schema allow-list.
var ErrUnknownIdentifier = errors.New("identifier not in schema allow-list")

// Upsert describes an INSERT ... ON CONFLICT DO UPDATE statement.
type Upsert struct {
	Table     string
	Columns   []string
	Conflict  []string // unique key columns
	Returning string   // optional column to return
}

// Build renders the statement for d. Columns that are not part of Conflict
// are overwritten from the excluded row. When every column is part of the
// conflict key the statement becomes a no-op update so RETURNING still yields
// the existing row.
func (u Upsert) Build(d Dialect) (string, error) {
	if err := checkIdentifiers(u.Table); err != nil {
		return "", err
	}
	if len(u.Columns) == 0 {
		return "", fmt.Errorf("upsert %s: no columns", u.Table)
	}
	if err := checkIdentifiers(u.Columns...); err != nil {
		return "", err
	}
	if err := checkIdentifiers(u.Conflict...); err != nil {
		return "", err
	}

	conflict := make(map[string]bool, len(u.Conflict))
	for _, c := range u.Conflict {
		conflict[c] = true
	}
	var sets []string
	for _, c := range u.Columns {
		if !conflict[c] {
			sets = append(sets, c+" = EXCLUDED."+c)
		}
	}
	if len(sets) == 0 && len(u.Conflict) > 0 {
		sets = append(sets, u.Conflict[0]+" = EXCLUDED."+u.Conflict[0])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES (%s)",
		u.Table, strings.Join(u.Columns, ", "), placeholders(d, 0, len(u.Columns)))
	if len(u.Conflict) > 0 {
		fmt.Fprintf(&b, " ON CONFLICT (%s) DO UPDATE SET %s",
			strings.Join(u.Conflict, ", "), strings.Join(sets, ", "))
	}
	if u.Returning != "" {
		if err := checkIdentifiers(u.Returning); err != nil {
			return "", err
		}
		b.WriteString(" RETURNING " + u.Returning)
	}
	return b.String(), nil
}

func checkIdentifiers(names ...string) error {
	for _, n := range names {
		if !schema.IsIdentifier(n) {
			return fmt.Errorf("%w: %q", ErrUnknownIdentifier, n)
		}
	}
	return nil
}
