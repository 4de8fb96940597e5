package sqlitemigrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestApplyMigrationsRecordsApplied(t *testing.T) {
	db := openInMemoryDB(t)

	migrations := fstest.MapFS{
		"001_menu.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE menu(id INTEGER PRIMARY KEY);\n-- +migrate Down\nDROP TABLE menu;"),
		},
	}

	require.NoError(t, ApplyMigrations(context.Background(), db, migrations, ""))

	applied, err := Applied(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_menu.sql"}, applied)
	assert.True(t, tableExists(t, db, "menu"))
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"001_menu.sql": &fstest.MapFile{Data: []byte("CREATE TABLE menu(id INTEGER PRIMARY KEY);")},
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, ApplyMigrations(context.Background(), db, migrations, "."))
	}

	assert.Equal(t, int64(1), queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApplyMigrationsRunsInNameOrder(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"sql/002_seed.sql":  &fstest.MapFile{Data: []byte("INSERT INTO menu(id) VALUES (1);")},
		"sql/001_table.sql": &fstest.MapFile{Data: []byte("CREATE TABLE menu(id INTEGER PRIMARY KEY);")},
		"sql/README.md":     &fstest.MapFile{Data: []byte("ignored")},
	}

	require.NoError(t, ApplyMigrations(context.Background(), db, migrations, "sql"))
	assert.Equal(t, int64(1), queryInt64(t, db, "SELECT COUNT(*) FROM menu"))
}

func TestApplyMigrationsDoesNotRecordFailedMigration(t *testing.T) {
	db := openInMemoryDB(t)

	bad := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREAT table things(id INT);")},
	}
	require.Error(t, ApplyMigrations(context.Background(), db, bad, ""))
	assert.Equal(t, int64(0), queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"))

	good := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE things(id INT);")},
	}
	require.NoError(t, ApplyMigrations(context.Background(), db, good, ""))
	assert.Equal(t, int64(1), queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApplyMigrationsRequiresDB(t *testing.T) {
	assert.Error(t, ApplyMigrations(context.Background(), nil, fstest.MapFS{}, ""))
}

func TestExtractUpMigration(t *testing.T) {
	assert.Equal(t, "\nA\n", ExtractUpMigration("-- +migrate Up\nA\n-- +migrate Down\nB"))
	assert.Equal(t, "\nA", ExtractUpMigration("-- +migrate Up\nA"))
	assert.Equal(t, "A", ExtractUpMigration("A"))
}

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func queryInt64(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	require.NoError(t, db.QueryRow(query).Scan(&value))
	return value
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count))
	return count > 0
}
