package sqlitemigrate_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/KirkDiggler/scum-bot-discord/internal/repositories/sqlitemigrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApply_RecordsAndSkipsApplied(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	fsys := fstest.MapFS{
		"m/0001_a.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE a (id INTEGER);\n-- +migrate Down\nDROP TABLE a;\n")},
		"m/0002_b.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"m/README.md":  {Data: []byte("not a migration")},
	}

	require.NoError(t, sqlitemigrate.Apply(ctx, db, fsys, "m"))
	// a second run must not try to recreate the tables
	require.NoError(t, sqlitemigrate.Apply(ctx, db, fsys, "m"))

	names, err := sqlitemigrate.Applied(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, names)

	_, err = db.ExecContext(ctx, "INSERT INTO a (id) VALUES (1)")
	assert.NoError(t, err)
}

func TestApply_FailureRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	fsys := fstest.MapFS{
		"0001_bad.sql": {Data: []byte("CREATE TABLE oops (")},
	}

	err := sqlitemigrate.Apply(ctx, db, fsys, ".")
	require.Error(t, err)

	names, err := sqlitemigrate.Applied(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestApply_RequiresDB(t *testing.T) {
	err := sqlitemigrate.Apply(context.Background(), nil, fstest.MapFS{}, ".")
	assert.Error(t, err)
}

func TestUpSection(t *testing.T) {
	assert.Equal(t, "SELECT 1;", sqlitemigrate.UpSection("SELECT 1;"))
	assert.Equal(t, "\nUP\n", sqlitemigrate.UpSection("-- +migrate Up\nUP\n-- +migrate Down\nDOWN"))
	assert.Equal(t, "\nUP", sqlitemigrate.UpSection("-- +migrate Up\nUP"))
}
