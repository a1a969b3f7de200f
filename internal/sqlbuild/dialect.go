// Package sqlbuild renders SQL for the two supported data stores. Every
// identifier it interpolates is checked against the schema allow-list; values
// always travel as bound parameters.
package sqlbuild

import (
	"strconv"
	"strings"
)

// Dialect identifies the placeholder and DDL flavor of a data store.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// Placeholder returns the n-th (1-based) bind placeholder.
func (d Dialect) Placeholder(n int) string {
	if d == SQLite {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

// Args collects bound parameters and hands out placeholders in order.
type Args struct {
	dialect Dialect
	values  []any
}

// NewArgs returns an empty parameter list for d.
func NewArgs(d Dialect) *Args {
	return &Args{dialect: d}
}

// Add binds v and returns its placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return a.dialect.Placeholder(len(a.values))
}

// Values returns the bound parameters in placeholder order.
func (a *Args) Values() []any {
	return a.values
}

// placeholders returns n consecutive placeholders numbered from start+1,
// joined with ", ".
func placeholders(d Dialect, start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = d.Placeholder(start + i + 1)
	}
	return strings.Join(parts, ", ")
}
