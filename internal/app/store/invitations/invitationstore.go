// internal/app/store/invitations/invitationstore.go
package invitationstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tandemhq/tandem/internal/app/system/invitecode"
	"github.com/tandemhq/tandem/internal/apperror"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/domain/repository"
)

// Validity is how long an invitation stays redeemable after creation.
const Validity = 7 * 24 * time.Hour

// createAttempts bounds the regenerate loop when a code collides with the
// unique index. Collisions are vanishingly rare at 32^8 codes, so two
// retries is plenty.
const createAttempts = 3

// Store persists invitations. Expiry is never swept; it is evaluated
// lazily against ExpiresAt whenever a code is redeemed.
type Store struct {
	c *mongo.Collection
}

var _ repository.InvitationRepository = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("invitations")}
}

func (s *Store) Create(ctx context.Context, data models.CreateInvitationDTO) (models.Invitation, error) {
	now := time.Now().UTC()
	inv := models.Invitation{
		HouseholdID:  data.HouseholdID,
		InvitedBy:    data.InvitedBy,
		InvitedEmail: data.InvitedEmail,
		Status:       models.InvitationPending,
		ExpiresAt:    now.Add(Validity),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var lastErr error
	for i := 0; i < createAttempts; i++ {
		inv.ID = models.NewInvitationID()
		inv.InviteCode = invitecode.New()
		if _, err := s.c.InsertOne(ctx, inv); err != nil {
			if wafflemongo.IsDup(err) {
				lastErr = err
				continue
			}
			return models.Invitation{}, apperror.Unknown("failed to create invitation", err)
		}
		return inv, nil
	}
	return models.Invitation{}, apperror.Unknown("failed to generate a unique invite code", lastErr)
}

func (s *Store) GetByID(ctx context.Context, id models.InvitationID) (models.Invitation, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *Store) GetByInviteCode(ctx context.Context, code string) (models.Invitation, error) {
	return s.findOne(ctx, bson.M{"invite_code": code})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.Invitation, error) {
	var inv models.Invitation
	err := s.c.FindOne(ctx, filter).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return models.Invitation{}, apperror.NotFound("invitation not found")
	}
	if err != nil {
		return models.Invitation{}, apperror.Unknown("failed to fetch invitation", err)
	}
	return inv, nil
}

func (s *Store) GetByHouseholdID(ctx context.Context, householdID models.HouseholdID) ([]models.Invitation, error) {
	cur, err := s.c.Find(ctx, bson.M{"household_id": householdID})
	if err != nil {
		return nil, apperror.Unknown("failed to fetch invitations", err)
	}
	defer cur.Close(ctx)

	var invs []models.Invitation
	if err := cur.All(ctx, &invs); err != nil {
		return nil, apperror.Unknown("failed to decode invitations", err)
	}
	if invs == nil {
		invs = []models.Invitation{}
	}
	return invs, nil
}

// Accept redeems a code. The guards run in order: a missing code is
// NOT_FOUND, an expired one is VALIDATION, a non-pending one is VALIDATION.
// Only a pending, unexpired invitation gets written.
func (s *Store) Accept(ctx context.Context, code string) (models.Invitation, error) {
	inv, err := s.GetByInviteCode(ctx, code)
	if err != nil {
		return models.Invitation{}, err
	}
	if s.IsExpired(inv) {
		return models.Invitation{}, apperror.Validation("invitation has expired")
	}
	if inv.Status != models.InvitationPending {
		return models.Invitation{}, apperror.Validation("invitation is no longer pending")
	}
	return s.transition(ctx, inv.ID, models.InvitationAccepted)
}

// Decline refuses a pending invitation. Guards mirror Accept.
func (s *Store) Decline(ctx context.Context, id models.InvitationID) (models.Invitation, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Invitation{}, err
	}
	if s.IsExpired(inv) {
		return models.Invitation{}, apperror.Validation("invitation has expired")
	}
	if inv.Status != models.InvitationPending {
		return models.Invitation{}, apperror.Validation("invitation is no longer pending")
	}
	return s.transition(ctx, inv.ID, models.InvitationDeclined)
}

func (s *Store) transition(ctx context.Context, id models.InvitationID, status models.InvitationStatus) (models.Invitation, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Invitation
	err := s.c.FindOneAndUpdate(ctx,
		// Re-filter on pending so a concurrent redeem loses cleanly.
		bson.M{"_id": id, "status": models.InvitationPending},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return models.Invitation{}, apperror.Validation("invitation is no longer pending")
	}
	if err != nil {
		return models.Invitation{}, apperror.Unknown("failed to update invitation", err)
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id models.InvitationID) error {
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apperror.Unknown("failed to delete invitation", err)
	}
	return nil
}

// IsExpired reports whether the validity window has passed. Pure, so it can
// also classify records already read.
func (s *Store) IsExpired(inv models.Invitation) bool {
	return time.Now().UTC().After(inv.ExpiresAt)
}
