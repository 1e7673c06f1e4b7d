// internal/domain/repository/user_repository.go
package repository

import (
	"context"

	"github.com/tandemhq/tandem/internal/domain/models"
)

// UserRepository is the full set of operations the system performs against
// persisted users.
type UserRepository interface {
	// Create persists a new user with an empty household set. The id comes
	// from the auth provider, not from the store.
	Create(ctx context.Context, id models.UserID, data models.CreateUserDTO) (models.User, error)

	// GetByID retrieves a user, or NOT_FOUND.
	GetByID(ctx context.Context, id models.UserID) (models.User, error)

	// GetByEmail retrieves a user by exact (case-folded) email match, or
	// NOT_FOUND.
	GetByEmail(ctx context.Context, email string) (models.User, error)

	// Update applies the non-nil fields of data and returns the updated user.
	Update(ctx context.Context, id models.UserID, data models.UpdateUserDTO) (models.User, error)

	// Delete hard-removes the user document.
	Delete(ctx context.Context, id models.UserID) error

	// AddHousehold adds householdID to the user's household set (set-union).
	AddHousehold(ctx context.Context, id models.UserID, householdID models.HouseholdID) error

	// RemoveHousehold removes householdID from the user's household set
	// (set-difference), clearing current_household_id if it pointed there.
	RemoveHousehold(ctx context.Context, id models.UserID, householdID models.HouseholdID) error
}
