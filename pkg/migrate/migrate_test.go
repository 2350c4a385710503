package migrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"migrations/001_create_reaches.up.sql":   {Data: []byte(`CREATE TABLE reaches (id TEXT PRIMARY KEY);`)},
		"migrations/001_create_reaches.down.sql": {Data: []byte(`DROP TABLE reaches;`)},
		"migrations/002_add_gauge.up.sql":        {Data: []byte(`ALTER TABLE reaches ADD COLUMN gauge TEXT;`)},
		"migrations/002_add_gauge.down.sql":      {Data: []byte(`ALTER TABLE reaches DROP COLUMN gauge;`)},
		"migrations/README.md":                   {Data: []byte(`not a migration`)},
	}
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetMigrations(t *testing.T) {
	migrations, err := NewFSProvider(testFS(), "migrations", "").GetMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "create reaches", migrations[0].Name)
	assert.Contains(t, migrations[0].Up, "CREATE TABLE")
	assert.Contains(t, migrations[0].Down, "DROP TABLE")
	assert.Equal(t, 2, migrations[1].Version)
}

func TestGetMigrationsMissingDir(t *testing.T) {
	_, err := NewFSProvider(testFS(), "nowhere", "").GetMigrations()
	assert.Error(t, err)
}

func TestMigrateUpAndDown(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	m := NewMigrator(db, NewFSProvider(testFS(), "migrations", ""), nil)

	pending, err := m.GetPendingMigrations(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, m.MigrateUp(ctx))
	version, err := m.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	_, err = db.ExecContext(ctx, `INSERT INTO reaches (id, gauge) VALUES ('upper', 'USGS 1')`)
	require.NoError(t, err)

	// A second run is a no-op
	require.NoError(t, m.MigrateUp(ctx))

	require.NoError(t, m.MigrateTo(ctx, 1))
	version, err = m.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	_, err = db.ExecContext(ctx, `INSERT INTO reaches (id, gauge) VALUES ('lower', 'USGS 2')`)
	assert.Error(t, err)

	require.NoError(t, m.MigrateDown(ctx, 0))
	version, err = m.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, version)
}

func TestMigrateDownRejectsHigherTarget(t *testing.T) {
	ctx := context.Background()
	m := NewMigrator(openDB(t), NewFSProvider(testFS(), "migrations", ""), nil)
	require.NoError(t, m.MigrateTo(ctx, 1))

	assert.Error(t, m.MigrateDown(ctx, 1))
	assert.Error(t, m.MigrateDown(ctx, 2))
}

func TestFailedMigrationRollsBack(t *testing.T) {
	ctx := context.Background()
	fsys := testFS()
	fsys["migrations/003_broken.up.sql"] = &fstest.MapFile{Data: []byte(`CREATE TABLE gauges (id TEXT); THIS IS NOT SQL;`)}

	m := NewMigrator(openDB(t), NewFSProvider(fsys, "migrations", ""), nil)
	require.Error(t, m.MigrateUp(ctx))

	version, err := m.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}
