// internal/domain/repository/household_repository.go
package repository

import (
	"context"

	"github.com/tandemhq/tandem/internal/domain/models"
)

// HouseholdRepository is the full set of operations the system performs
// against persisted households.
type HouseholdRepository interface {
	// Create persists a new household whose member set holds exactly the
	// creator.
	Create(ctx context.Context, createdBy models.UserID, data models.CreateHouseholdDTO) (models.Household, error)

	// GetByID retrieves a household, or NOT_FOUND.
	GetByID(ctx context.Context, id models.HouseholdID) (models.Household, error)

	// GetByUserID lists the households whose member set contains userID.
	GetByUserID(ctx context.Context, userID models.UserID) ([]models.Household, error)

	// Update applies the non-nil fields of data and returns the updated
	// household.
	Update(ctx context.Context, id models.HouseholdID, data models.UpdateHouseholdDTO) (models.Household, error)

	// Delete removes the household and cascades: its household cards and
	// invitations are deleted and the household id is pulled from every
	// member's household set.
	Delete(ctx context.Context, id models.HouseholdID) error

	// AddMember adds userID to the member set. Implemented as $addToSet, so
	// adding an existing member is a no-op.
	AddMember(ctx context.Context, id models.HouseholdID, userID models.UserID) error

	// RemoveMember removes userID from the member set via $pull.
	RemoveMember(ctx context.Context, id models.HouseholdID, userID models.UserID) error

	// AddCard adds cardID to the active-card set. $addToSet semantics, same
	// as AddMember.
	AddCard(ctx context.Context, id models.HouseholdID, cardID models.CardID) error

	// RemoveCard removes cardID from the active-card set via $pull.
	RemoveCard(ctx context.Context, id models.HouseholdID, cardID models.CardID) error

	// GetMembers resolves the member set to profiles. Member ids that no
	// longer resolve to a user are silently dropped; a store fault on any
	// sub-lookup fails the whole call.
	GetMembers(ctx context.Context, id models.HouseholdID) ([]models.HouseholdMember, error)
}
