// Package storage defines the Storage interface, a contract that any
// database backend must satisfy to work with this application.
//
// Handlers depend only on this interface, so tests can pass a fake that
// satisfies it and a different database only needs a new implementation.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/registration-api/internal/types"
)

// ErrNotFound is returned (wrapped) when no registration matches an id.
// Check for it with errors.Is.
var ErrNotFound = errors.New("registration not found")

// Storage is the database contract.
type Storage interface {
	// CreateRegistration inserts a new row and returns the auto-generated
	// primary-key ID. The caller has already validated req.
	CreateRegistration(ctx context.Context, req types.RegistrationRequest) (int64, error)

	// GetRegistrationByID fetches one registration or returns ErrNotFound.
	GetRegistrationByID(ctx context.Context, id int64) (types.Registration, error)

	// GetRegistrations returns every registration, newest first.
	// Returns an empty slice (not nil) if there are none.
	GetRegistrations(ctx context.Context) ([]types.Registration, error)

	// DeleteRegistrationByID removes a row permanently or returns
	// ErrNotFound if nothing matched.
	DeleteRegistrationByID(ctx context.Context, id int64) error

	// CountRegistrations returns the number of stored rows.
	CountRegistrations(ctx context.Context) (int64, error)

	// Ping reports whether the database is reachable.
	Ping(ctx context.Context) error

	// Close releases the database handle.
	Close() error
}
