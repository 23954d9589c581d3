// Package store persists archive days per game and serves them as the
// nested archive structure.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/claes/quizweb/internal/archive"
	"github.com/claes/quizweb/internal/model"
	"github.com/claes/quizweb/internal/store/migrations"
)

// ErrUnsupportedDriver is returned by Open for drivers other than sqlite and pgx.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Store is the archive provider backed by database/sql.
type Store struct {
	db     *sql.DB
	driver string
	logger *zap.Logger
}

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Open connects to the database and applies pending migrations.
func Open(ctx context.Context, driver, dsn string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var dialect string
	switch driver {
	case "sqlite":
		dialect = "sqlite3"
	case "pgx":
		dialect = "pgx"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if driver == "sqlite" {
		// a single connection keeps ":memory:" databases coherent
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUp(ctx, db, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	logger.Info("archive store ready", zap.String("driver", driver))
	return &Store{db: db, driver: driver, logger: logger}, nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ArchiveStructure returns the days of gameKey grouped by year and month.
// A game with no days yields an empty structure.
func (s *Store) ArchiveStructure(ctx context.Context, gameKey string) (model.ArchiveStructure, error) {
	dates, err := s.Dates(ctx, gameKey)
	if err != nil {
		return model.ArchiveStructure{}, err
	}
	return archive.Group(dates), nil
}

// Dates returns the stored days of gameKey in ascending order.
func (s *Store) Dates(ctx context.Context, gameKey string) ([]model.DateKey, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT date_key FROM archive_entries WHERE game_key = ? ORDER BY date_key`), gameKey)
	if err != nil {
		return nil, fmt.Errorf("query archive %q: %w", gameKey, err)
	}
	defer rows.Close()

	var out []model.DateKey
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan archive %q: %w", gameKey, err)
		}
		out = append(out, model.DateKey(d))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archive %q: %w", gameKey, err)
	}
	return out, nil
}

// AddDates stores days for gameKey. Days already present are left alone.
// It returns the number of new rows.
func (s *Store) AddDates(ctx context.Context, gameKey string, dates ...model.DateKey) (int, error) {
	if gameKey == "" {
		return 0, errors.New("add dates: empty game key")
	}
	keys := make([]model.DateKey, 0, len(dates))
	for _, d := range dates {
		k, err := archive.ParseDateKey(string(d))
		if err != nil {
			return 0, fmt.Errorf("add dates: %w", err)
		}
		keys = append(keys, k)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.rebind(
		`INSERT INTO archive_entries (game_key, date_key) VALUES (?, ?) ON CONFLICT (game_key, date_key) DO NOTHING`))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, d := range keys {
		res, err := stmt.ExecContext(ctx, gameKey, string(d))
		if err != nil {
			return 0, fmt.Errorf("insert %s/%s: %w", gameKey, d, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return added, nil
}

// HasDate reports whether gameKey has an entry for d.
func (s *Store) HasDate(ctx context.Context, gameKey string, d model.DateKey) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT 1 FROM archive_entries WHERE game_key = ? AND date_key = ?`), gameKey, string(d)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup %s/%s: %w", gameKey, d, err)
	}
	return true, nil
}

// Games lists the game keys that have at least one day.
func (s *Store) Games(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT game_key FROM archive_entries ORDER BY game_key`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// rebind rewrites ? placeholders to $n for pgx.
func (s *Store) rebind(q string) string {
	if s.driver != "pgx" {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
