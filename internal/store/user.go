package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/empowermint/empowermint-api/internal/domain"
)

// UserProfileStore defines the interface for user profile persistence.
type UserProfileStore interface {
	// Create saves a new user profile to the store.
	// It validates the profile before storing it.
	// Returns ErrUserExists if a profile with the same ID already exists.
	// Returns validation errors from the domain UserProfile if data is invalid.
	Create(ctx context.Context, profile *domain.UserProfile) error

	// GetByID retrieves a user profile by its unique ID.
	// Returns ErrUserNotFound if the profile does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)

	// UpdateAccessibility replaces the accessibility settings of an existing profile.
	// Returns ErrUserNotFound if the profile does not exist.
	// Returns validation errors if the settings are invalid.
	UpdateAccessibility(ctx context.Context, id uuid.UUID, settings domain.AccessibilitySettings) error

	// Delete removes a user profile from the store by its ID.
	// Returns ErrUserNotFound if the profile does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserProfileStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserProfileStore
}
