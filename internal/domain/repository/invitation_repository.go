// internal/domain/repository/invitation_repository.go
package repository

import (
	"context"

	"github.com/tandemhq/tandem/internal/domain/models"
)

// InvitationRepository manages the invitation state machine. Expiry is
// evaluated lazily at read/accept time; there is no background sweep.
type InvitationRepository interface {
	// Create persists a pending invitation with a freshly generated code and
	// an expiry a fixed validity window from now.
	Create(ctx context.Context, data models.CreateInvitationDTO) (models.Invitation, error)

	// GetByID retrieves an invitation, or NOT_FOUND.
	GetByID(ctx context.Context, id models.InvitationID) (models.Invitation, error)

	// GetByInviteCode retrieves an invitation by exact code match, or
	// NOT_FOUND.
	GetByInviteCode(ctx context.Context, code string) (models.Invitation, error)

	// GetByHouseholdID lists a household's invitations.
	GetByHouseholdID(ctx context.Context, householdID models.HouseholdID) ([]models.Invitation, error)

	// Accept transitions a pending, unexpired invitation to accepted and
	// returns the updated record. An expired or non-pending invitation
	// yields VALIDATION without mutating status.
	Accept(ctx context.Context, code string) (models.Invitation, error)

	// Decline transitions a pending invitation to declined. Same guards as
	// Accept.
	Decline(ctx context.Context, id models.InvitationID) (models.Invitation, error)

	// Delete hard-removes the invitation.
	Delete(ctx context.Context, id models.InvitationID) error

	// IsExpired reports whether the invitation's validity window has passed.
	IsExpired(inv models.Invitation) bool
}
