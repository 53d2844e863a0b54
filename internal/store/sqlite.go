package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/motleyton/tgbot-hp/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
// Safe to call on every startup; the schema setup is idempotent.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// AddFriend inserts a birthday record. Uniqueness of (user_id, name) is
// enforced by the schema, so concurrent sessions for the same owner cannot
// race past the check.
func (r *SQLiteRepo) AddFriend(ctx context.Context, ownerID int64, name string, birthday time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO birthdays (user_id, name, birthday)
		VALUES (?, ?, ?)`,
		ownerID, name, domain.FormatBirthDate(birthday),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: owner=%d name=%q", ErrDuplicateFriend, ownerID, name)
		}
		return 0, err
	}
	return res.LastInsertId()
}

// BirthdaysOn returns all records whose birthday month-day matches md.
// The stored year is ignored, which also sidesteps leap-year arithmetic.
func (r *SQLiteRepo) BirthdaysOn(ctx context.Context, md domain.MonthDay) ([]domain.Friend, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, birthday
		FROM birthdays
		WHERE strftime('%m-%d', birthday) = ?`,
		md.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Friend
	for rows.Next() {
		f, err := scanFriend(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// GetFriend returns the record with the given id or ErrFriendNotFound.
func (r *SQLiteRepo) GetFriend(ctx context.Context, id int64) (*domain.Friend, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, birthday
		FROM birthdays
		WHERE id = ?`,
		id,
	)
	f, err := scanFriend(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%d", ErrFriendNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// scanFriend reads one birthdays row from either a *sql.Row or *sql.Rows scan.
func scanFriend(scan func(...any) error) (*domain.Friend, error) {
	var (
		id       int64
		ownerID  int64
		name     string
		birthday string
	)
	if err := scan(&id, &ownerID, &name, &birthday); err != nil {
		return nil, err
	}
	bd, err := domain.ParseBirthDate(birthday)
	if err != nil {
		return nil, fmt.Errorf("stored birthday for id=%d: %w", id, err)
	}
	return &domain.Friend{ID: id, OwnerID: ownerID, Name: name, Birthday: bd}, nil
}

// isUniqueViolation checks for a SQLite UNIQUE constraint failure.
// The modernc driver exposes constraint errors only through the message text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
