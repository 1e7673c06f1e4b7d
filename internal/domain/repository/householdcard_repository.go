// internal/domain/repository/householdcard_repository.go
package repository

import (
	"context"

	"github.com/tandemhq/tandem/internal/domain/models"
)

// HouseholdCardRepository creates, mutates, and queries assignment records.
//
// Callers adopting a template must call ExistsByCardID first and treat a
// positive result as a hard stop: Create does not perform the check itself.
// The store's unique (household_id, card_id) index backstops concurrent
// double-adoption with CONFLICT.
type HouseholdCardRepository interface {
	// Create persists a new card instance, active, with history seeded empty
	// or with one self-assignment entry when an initial owner is supplied.
	Create(ctx context.Context, data models.CreateHouseholdCardDTO) (models.HouseholdCard, error)

	// GetByID retrieves a card instance, or NOT_FOUND.
	GetByID(ctx context.Context, id models.HouseholdCardID) (models.HouseholdCard, error)

	// GetByHouseholdID lists every card instance of a household.
	GetByHouseholdID(ctx context.Context, householdID models.HouseholdID) ([]models.HouseholdCard, error)

	// GetByOwner lists the active card instances currently owned by userID.
	GetByOwner(ctx context.Context, householdID models.HouseholdID, userID models.UserID) ([]models.HouseholdCard, error)

	// Update applies the non-nil fields of data and returns the updated
	// record. Ownership changes that should be historized go through
	// AssignCard.
	Update(ctx context.Context, id models.HouseholdCardID, data models.UpdateHouseholdCardDTO) (models.HouseholdCard, error)

	// AssignCard appends exactly one history entry with a store-assigned
	// timestamp and sets current_owner to match it. The write is guarded on
	// the record version: a concurrent assignment surfaces as CONFLICT.
	AssignCard(ctx context.Context, id models.HouseholdCardID, assignment models.AssignCardDTO) (models.HouseholdCard, error)

	// Delete hard-removes the card instance.
	Delete(ctx context.Context, id models.HouseholdCardID) error

	// ExistsByCardID reports whether any instance (active or not) of cardID
	// exists in the household. Pre-check for the one-instance-per-template
	// invariant.
	ExistsByCardID(ctx context.Context, householdID models.HouseholdID, cardID models.CardID) (bool, error)
}
