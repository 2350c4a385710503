package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Migration files are named 001_migration_name.up.sql or 001_migration_name.down.sql
var migrationFileRegex = regexp.MustCompile(`^(\d+)_(.+)\.(up|down)\.sql$`)

// FSProvider loads SQLite migrations from a file system, usually an embed.FS
type FSProvider struct {
	fsys           fs.FS
	dir            string
	migrationTable string
}

// NewFSProvider creates a provider reading the migration files in dir of fsys
func NewFSProvider(fsys fs.FS, dir string, migrationTable string) *FSProvider {
	if migrationTable == "" {
		migrationTable = "schema_migrations"
	}
	if dir == "" {
		dir = "."
	}
	return &FSProvider{
		fsys:           fsys,
		dir:            dir,
		migrationTable: migrationTable,
	}
}

// GetMigrations loads all migrations, sorted by version
func (p *FSProvider) GetMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(p.fsys, p.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory %s: %w", p.dir, err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matches := migrationFileRegex.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("invalid version number in file %s: %w", entry.Name(), err)
		}

		content, err := fs.ReadFile(p.fsys, path.Join(p.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		m := byVersion[version]
		if m == nil {
			m = &Migration{Version: version, Name: strings.ReplaceAll(matches[2], "_", " ")}
			byVersion[version] = m
		}
		if matches[3] == "up" {
			m.Up = string(content)
		} else {
			m.Down = string(content)
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// CreateMigrationTable creates the migration tracking table
func (p *FSProvider) CreateMigrationTable(ctx context.Context, db DB) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`, p.migrationTable)

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}
	return nil
}

// GetCurrentVersion returns the highest applied migration version
func (p *FSProvider) GetCurrentVersion(ctx context.Context, db DB) (int, error) {
	query := fmt.Sprintf("SELECT COALESCE(MAX(version), 0) FROM %s", p.migrationTable)

	var version int
	if err := db.QueryRowContext(ctx, query).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// SetVersion records version as the current one
func (p *FSProvider) SetVersion(ctx context.Context, db DB, version int) error {
	var err error
	if version == 0 {
		_, err = db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", p.migrationTable))
	} else {
		// Rolling back leaves higher rows behind, so clear them first
		_, err = db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE version > ?", p.migrationTable), version)
		if err == nil {
			_, err = db.ExecContext(ctx, fmt.Sprintf(`
				INSERT OR REPLACE INTO %s (version, applied_at)
				VALUES (?, CURRENT_TIMESTAMP)
			`, p.migrationTable), version)
		}
	}

	if err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}
	return nil
}
