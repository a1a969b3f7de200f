// Package seed imports a league feed into the database.
package seed

import "fmt"

// SeedResult tracks counts and errors from an import.
type SeedResult struct {
	SeasonsUpserted    int
	TeamsUpserted      int
	StatisticsUpserted int
	Errors             []string
}

// Add merges another SeedResult into this one.
func (r *SeedResult) Add(other SeedResult) {
	r.SeasonsUpserted += other.SeasonsUpserted
	r.TeamsUpserted += other.TeamsUpserted
	r.StatisticsUpserted += other.StatisticsUpserted
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError records an error message.
func (r *SeedResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the import.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"seasons=%d teams=%d team_statistics=%d errors=%d",
		r.SeasonsUpserted, r.TeamsUpserted, r.StatisticsUpserted,
		len(r.Errors),
	)
}
