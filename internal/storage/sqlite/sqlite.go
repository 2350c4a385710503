// Package sqlite stores stream profiles in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/chrissnell/streamprofile/internal/storage"
	"github.com/chrissnell/streamprofile/pkg/migrate"
	"github.com/chrissnell/streamprofile/pkg/profile"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned when no profile has the requested ID
var ErrNotFound = errors.New("profile not found")

// Store implements storage.ProfileStore on SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	logger *zap.SugaredLogger
}

var _ storage.ProfileStore = (*Store)(nil)

// New opens (creating if needed) the database at dbPath
func New(ctx context.Context, dbPath string, logger *zap.SugaredLogger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	migrator := migrate.NewMigrator(db, migrate.NewFSProvider(migrations, "migrations", ""), logger)
	if err := migrator.MigrateUp(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Debugw("opened profile store", "path", dbPath)
	return &Store{
		db:     db,
		dbPath: dbPath,
		logger: logger,
	}, nil
}

// SaveProfile writes the profile's augmented table and feature index
// under a new ID
func (s *Store) SaveProfile(ctx context.Context, p *profile.Profile) (string, error) {
	id := uuid.New().String()
	t := p.Table()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertProfileSQL,
		id, p.Name(), p.Metric(), t.Len(), p.Length(), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("failed to insert profile: %w", err)
	}

	colStmt, err := tx.PrepareContext(ctx, insertColumnSQL)
	if err != nil {
		return "", fmt.Errorf("failed to prepare column insert: %w", err)
	}
	defer colStmt.Close()

	valStmt, err := tx.PrepareContext(ctx, insertValueSQL)
	if err != nil {
		return "", fmt.Errorf("failed to prepare value insert: %w", err)
	}
	defer valStmt.Close()

	for pos, name := range t.Columns() {
		if _, err := colStmt.ExecContext(ctx, id, pos, name); err != nil {
			return "", fmt.Errorf("failed to insert column %s: %w", name, err)
		}
		values, _ := t.Column(name)
		for i, v := range values {
			cell := sql.NullFloat64{Float64: v, Valid: !profile.IsMissing(v)}
			if _, err := valStmt.ExecContext(ctx, id, name, i, cell); err != nil {
				return "", fmt.Errorf("failed to insert %s row %d: %w", name, i, err)
			}
		}
	}

	for _, f := range p.AllFeatures() {
		r := f.Run()
		_, err := tx.ExecContext(ctx, insertFeatureSQL, id, string(f.Label()), f.Seq(), f.Name(), r.Start, r.End)
		if err != nil {
			return "", fmt.Errorf("failed to insert feature %s: %w", f.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debugw("saved profile", "id", id, "profile", p.String(), "shots", t.Len())
	return id, nil
}

// LoadProfile reads a saved record table back
func (s *Store) LoadProfile(ctx context.Context, id string) (*storage.StoredProfile, error) {
	sp := &storage.StoredProfile{ID: id}

	var shots int
	var created string
	err := s.db.QueryRowContext(ctx, selectProfileSQL, id).Scan(&sp.Name, &sp.Metric, &shots, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	if sp.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", created, err)
	}

	names, err := s.columnNames(ctx, id)
	if err != nil {
		return nil, err
	}

	columns := make(map[string][]float64, len(names))
	for _, name := range names {
		values := make([]float64, shots)
		for i := range values {
			values[i] = profile.Missing
		}
		columns[name] = values
	}

	rows, err := s.db.QueryContext(ctx, selectValuesSQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var i int
		var v sql.NullFloat64
		if err := rows.Scan(&name, &i, &v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		col, ok := columns[name]
		if !ok || i < 0 || i >= shots {
			return nil, fmt.Errorf("stored value %s[%d] outside profile %s", name, i, id)
		}
		if v.Valid {
			col[i] = v.Float64
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating values: %w", err)
	}

	if sp.Table, err = profile.NewTable(columns); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *Store) columnNames(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, selectColumnsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListProfiles returns every saved profile, oldest first
func (s *Store) ListProfiles(ctx context.Context) ([]storage.ProfileSummary, error) {
	rows, err := s.db.QueryContext(ctx, listProfilesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	summaries := []storage.ProfileSummary{}
	for rows.Next() {
		var ps storage.ProfileSummary
		var created string
		if err := rows.Scan(&ps.ID, &ps.Name, &ps.Metric, &ps.Shots, &ps.Length, &created, &ps.Features); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		if ps.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("bad created_at %q: %w", created, err)
		}
		summaries = append(summaries, ps)
	}
	return summaries, rows.Err()
}

// ListFeatures returns the feature index of a saved profile in row order
func (s *Store) ListFeatures(ctx context.Context, id string) ([]storage.FeatureRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectFeaturesSQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query features: %w", err)
	}
	defer rows.Close()

	var records []storage.FeatureRecord
	for rows.Next() {
		var fr storage.FeatureRecord
		var label string
		if err := rows.Scan(&label, &fr.Seq, &fr.Name, &fr.Start, &fr.End); err != nil {
			return nil, fmt.Errorf("failed to scan feature: %w", err)
		}
		fr.Label = profile.Morphology(label)
		records = append(records, fr)
	}
	return records, rows.Err()
}

// DeleteProfile removes a saved profile and everything stored with it
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var removed int64
	for _, stmt := range deleteProfileSQL {
		res, err := tx.ExecContext(ctx, stmt, id)
		if err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		removed, _ = res.RowsAffected()
	}
	if removed == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
