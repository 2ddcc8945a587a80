// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded; we never call anything from it directly.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/registration-api/internal/config"
	"github.com/aanand-mishra/registration-api/internal/storage"
	"github.com/aanand-mishra/registration-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// schema is idempotent, so it is safe to run on every startup.
//
//	created_at is filled in by SQLite at insert time and never updated.
const schema = `
	CREATE TABLE IF NOT EXISTS registrations (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT    NOT NULL,
		age         INTEGER NOT NULL,
		phone       TEXT    NOT NULL,
		email       TEXT    NOT NULL,
		dance_style TEXT,
		experience  TEXT,
		message     TEXT,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)
`

// Explicit column list, in the order every Scan below expects.
const columns = "id, name, age, phone, email, dance_style, experience, message, created_at"

// SQLite is the concrete implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.StoragePath, creates the
// registrations table if it does not already exist, and returns a
// ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// One connection for the whole process: statements are executed one
	// after another by the driver, and SQLite never sees two writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateRegistration inserts a new row into the registrations table.
// Placeholders (?) keep user input out of the SQL text.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateRegistration(ctx context.Context, req types.RegistrationRequest) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx, `
		INSERT INTO registrations (name, age, phone, email, dance_style, experience, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: prepare: %w", err)
	}
	defer stmt.Close()

	// Nil *string arguments are stored as NULL.
	result, err := stmt.ExecContext(ctx,
		req.Name,
		int(req.Age),
		req.Phone,
		req.Email,
		req.DanceStyle,
		req.Experience,
		req.Message,
	)
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: last insert id: %w", err)
	}

	return lastID, nil
}

// GetRegistrationByID fetches exactly one row matched by primary key.
func (s *SQLite) GetRegistrationByID(ctx context.Context, id int64) (types.Registration, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT "+columns+" FROM registrations WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Registration{}, fmt.Errorf("GetRegistrationByID: prepare: %w", err)
	}
	defer stmt.Close()

	reg, err := scanRegistration(stmt.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Registration{}, fmt.Errorf("GetRegistrationByID: id %d: %w", id, storage.ErrNotFound)
		}
		return types.Registration{}, fmt.Errorf("GetRegistrationByID: scan: %w", err)
	}

	return reg, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetRegistrations returns all rows, most recent first.
//
// created_at only has one-second resolution, so rows inserted within the
// same second are ordered by id, which is assigned in insertion order.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetRegistrations(ctx context.Context) ([]types.Registration, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT "+columns+" FROM registrations ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("GetRegistrations: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetRegistrations: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so the JSON response carries [] rather than null.
	registrations := make([]types.Registration, 0)

	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("GetRegistrations: scan row: %w", err)
		}
		registrations = append(registrations, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetRegistrations: rows iteration: %w", err)
	}

	return registrations, nil
}

// DeleteRegistrationByID removes a row by primary key. Zero affected rows
// means the id did not exist.
func (s *SQLite) DeleteRegistrationByID(ctx context.Context, id int64) error {
	stmt, err := s.Db.PrepareContext(ctx, "DELETE FROM registrations WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteRegistrationByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("DeleteRegistrationByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteRegistrationByID: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("DeleteRegistrationByID: id %d: %w", id, storage.ErrNotFound)
	}

	return nil
}

// CountRegistrations returns the total number of rows.
func (s *SQLite) CountRegistrations(ctx context.Context) (int64, error) {
	var total int64
	if err := s.Db.QueryRowContext(ctx, "SELECT COUNT(*) FROM registrations").Scan(&total); err != nil {
		return 0, fmt.Errorf("CountRegistrations: scan: %w", err)
	}
	return total, nil
}

// Ping checks that the database file is still reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

// Close closes the database handle. Call it once, at shutdown.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row scanner) (types.Registration, error) {
	var reg types.Registration
	var danceStyle, experience, message sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&reg.ID,
		&reg.Name,
		&reg.Age,
		&reg.Phone,
		&reg.Email,
		&danceStyle,
		&experience,
		&message,
		&createdAt,
	)
	if err != nil {
		return types.Registration{}, err
	}

	reg.DanceStyle = nullable(danceStyle)
	reg.Experience = nullable(experience)
	reg.Message = nullable(message)
	if createdAt.Valid {
		reg.CreatedAt = createdAt.Time
	}

	return reg, nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
