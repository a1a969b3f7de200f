package sqlbuild

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNotReadOnly is returned by CheckReadOnly for statements that could
// modify the database.
var ErrNotReadOnly = errors.New("statement is not a single read-only query")

var (
	mutating     = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE|DROP|ALTER|CREATE|TRUNCATE|GRANT|REVOKE|COPY|MERGE|CALL|VACUUM|ATTACH|DETACH|PRAGMA|REINDEX)\b`)
	lineComment  = regexp.MustCompile(`--[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	quoted       = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// CheckReadOnly accepts exactly one SELECT (or WITH ... SELECT) statement. A
// single trailing semicolon is allowed. String literals are ignored when
// looking for mutating keywords, so `WHERE name = 'Drop FC'` passes.
func CheckReadOnly(stmt string) error {
	s := blockComment.ReplaceAllString(stmt, " ")
	s = lineComment.ReplaceAllString(s, " ")
	s = quoted.ReplaceAllString(s, "''")
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	if s == "" || strings.Contains(s, ";") {
		return ErrNotReadOnly
	}
	first := strings.ToUpper(strings.Fields(s)[0])
	if first != "SELECT" && first != "WITH" {
		return ErrNotReadOnly
	}
	if mutating.MatchString(s) {
		return ErrNotReadOnly
	}
	return nil
}
