package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-assistant/internal/config"
	"github.com/albapepper/scoracle-assistant/internal/schema"
	"github.com/albapepper/scoracle-assistant/internal/sqlbuild"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "league.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, ApplySchema(context.Background(), s))
	return s
}

func TestOpenPicksSQLiteForSQLiteURLs(t *testing.T) {
	cfg := &config.Config{DatabaseURL: "sqlite:" + filepath.Join(t.TempDir(), "x.db")}
	d, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, sqlbuild.SQLite, d.Dialect())
	assert.NoError(t, d.Ping(context.Background()))
}

func TestSQLiteListColumns(t *testing.T) {
	s := openTestSQLite(t)

	cols, err := s.ListColumns(context.Background(), "team_statistics")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "team_id", "season_id"}, cols[:3])
	assert.Equal(t, schema.Columns(), cols[3:])

	cols, err = s.ListColumns(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestSQLiteQueryIsReadOnly(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	require.NoError(t, s.InTx(ctx, func(tx Tx) error {
		return tx.Exec(ctx, "INSERT INTO teams (id, name) VALUES (?, ?)", 1, "Galatasaray")
	}))

	rows, err := s.Query(ctx, "SELECT id, name FROM teams WHERE LOWER(name) LIKE LOWER(?)", "%gala%")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{int64(1), "Galatasaray"}, rows[0])

	_, err = s.Query(ctx, "DELETE FROM teams")
	require.Error(t, err)

	// query_only is lifted again for writers.
	require.NoError(t, s.InTx(ctx, func(tx Tx) error {
		return tx.Exec(ctx, "INSERT INTO teams (id, name) VALUES (?, ?)", 2, "Fenerbahce")
	}))
	rows, err = s.Query(ctx, "SELECT COUNT(*) FROM teams")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows[0][0])
}

func TestSQLiteFoldMatchesNonASCIINames(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	require.NoError(t, s.InTx(ctx, func(tx Tx) error {
		for id, name := range map[int]string{1: "Çaykur Rizespor", 2: "İstanbul Başakşehir", 3: "Galatasaray"} {
			if err := tx.Exec(ctx, "INSERT INTO teams (id, name) VALUES (?, ?)", id, name); err != nil {
				return err
			}
		}
		return nil
	}))

	for fragment, want := range map[string]string{
		"Çaykur":     "Çaykur Rizespor",
		"çaykur":     "Çaykur Rizespor",
		"İstanbul":   "İstanbul Başakşehir",
		"istanbul":   "İstanbul Başakşehir",
		"başakşehir": "İstanbul Başakşehir",
		"GALA":       "Galatasaray",
	} {
		rows, err := s.Query(ctx, "SELECT name FROM teams WHERE "+sqlbuild.SQLite.Fold("name")+" LIKE ?", sqlbuild.Contains(fragment))
		require.NoError(t, err)
		require.Len(t, rows, 1, fragment)
		assert.Equal(t, want, rows[0][0], fragment)
	}

	rows, err := s.Query(ctx, "SELECT fold(NULL)")
	require.NoError(t, err)
	assert.Nil(t, rows[0][0])
}

func TestSQLiteInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	boom := errors.New("boom")

	err := s.InTx(ctx, func(tx Tx) error {
		id, err := tx.QueryInt(ctx, "INSERT INTO seasons (year) VALUES (?) RETURNING id", "24/25")
		require.NoError(t, err)
		assert.Positive(t, id)
		return boom
	})
	require.ErrorIs(t, err, boom)

	rows, err := s.Query(ctx, "SELECT COUNT(*) FROM seasons")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows[0][0])
}

func TestSQLiteRejectsNegativeMetrics(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	err := s.InTx(ctx, func(tx Tx) error {
		if err := tx.Exec(ctx, "INSERT INTO teams (id, name) VALUES (1, 'Galatasaray')"); err != nil {
			return err
		}
		if err := tx.Exec(ctx, "INSERT INTO seasons (id, year) VALUES (1, '24/25')"); err != nil {
			return err
		}
		return tx.Exec(ctx, "INSERT INTO team_statistics (team_id, season_id, goals_scored) VALUES (1, 1, -3)")
	})
	assert.Error(t, err)
}
