// internal/app/store/householdcards/householdcardstore.go
package householdcardstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tandemhq/tandem/internal/apperror"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/domain/repository"
)

// Store persists household cards and their assignment history.
//
// Invariants enforced here:
//   - assignment_history is append-only: AssignCard only ever $pushes, and
//     no other operation touches the array
//   - current_owner always matches the latest history entry after a
//     successful AssignCard
//   - entry timestamps come from this layer at write time, never from the
//     caller
//   - the (household_id, card_id) unique index turns a concurrent
//     double-adopt into CONFLICT; callers still run ExistsByCardID first so
//     the ordinary path fails before writing anything
type Store struct {
	c *mongo.Collection
}

var _ repository.HouseholdCardRepository = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("household_cards")}
}

func (s *Store) Create(ctx context.Context, data models.CreateHouseholdCardDTO) (models.HouseholdCard, error) {
	now := time.Now().UTC()
	card := models.HouseholdCard{
		ID:                models.NewHouseholdCardID(),
		HouseholdID:       data.HouseholdID,
		CardID:            data.CardID,
		CurrentOwner:      data.CurrentOwner,
		IsActive:          true,
		AssignmentHistory: []models.Assignment{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if data.CurrentOwner != nil {
		// Adopting with an owner seeds history with one self-assignment.
		card.AssignmentHistory = append(card.AssignmentHistory, models.Assignment{
			AssignedTo: data.CurrentOwner,
			AssignedBy: *data.CurrentOwner,
			AssignedAt: now,
		})
	}

	if _, err := s.c.InsertOne(ctx, card); err != nil {
		if wafflemongo.IsDup(err) {
			return models.HouseholdCard{}, apperror.Conflict("this card is already in the household's deck")
		}
		return models.HouseholdCard{}, apperror.Unknown("failed to create household card", err)
	}
	return card, nil
}

func (s *Store) GetByID(ctx context.Context, id models.HouseholdCardID) (models.HouseholdCard, error) {
	var card models.HouseholdCard
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&card)
	if err == mongo.ErrNoDocuments {
		return models.HouseholdCard{}, apperror.NotFound("household card not found")
	}
	if err != nil {
		return models.HouseholdCard{}, apperror.Unknown("failed to fetch household card", err)
	}
	return card, nil
}

func (s *Store) GetByHouseholdID(ctx context.Context, householdID models.HouseholdID) ([]models.HouseholdCard, error) {
	return s.find(ctx, bson.M{"household_id": householdID})
}

func (s *Store) GetByOwner(ctx context.Context, householdID models.HouseholdID, userID models.UserID) ([]models.HouseholdCard, error) {
	return s.find(ctx, bson.M{
		"household_id":  householdID,
		"current_owner": userID,
		"is_active":     true,
	})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.HouseholdCard, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, apperror.Unknown("failed to fetch household cards", err)
	}
	defer cur.Close(ctx)

	var cards []models.HouseholdCard
	if err := cur.All(ctx, &cards); err != nil {
		return nil, apperror.Unknown("failed to decode household cards", err)
	}
	if cards == nil {
		cards = []models.HouseholdCard{}
	}
	return cards, nil
}

func (s *Store) Update(ctx context.Context, id models.HouseholdCardID, data models.UpdateHouseholdCardDTO) (models.HouseholdCard, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if data.Unassign {
		set["current_owner"] = nil
	} else if data.CurrentOwner != nil {
		set["current_owner"] = *data.CurrentOwner
	}
	if data.IsActive != nil {
		set["is_active"] = *data.IsActive
	}
	if data.Notes != nil {
		set["notes"] = *data.Notes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var card models.HouseholdCard
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&card)
	if err == mongo.ErrNoDocuments {
		return models.HouseholdCard{}, apperror.NotFound("household card not found")
	}
	if err != nil {
		return models.HouseholdCard{}, apperror.Unknown("failed to update household card", err)
	}
	return card, nil
}

// AssignCard appends one history entry and moves current_owner to match it.
// The write is a single update guarded on the version read beforehand, so
// two concurrent assignments cannot silently drop a history entry: the
// second one fails with CONFLICT and must be re-invoked against the fresh
// record.
func (s *Store) AssignCard(ctx context.Context, id models.HouseholdCardID, assignment models.AssignCardDTO) (models.HouseholdCard, error) {
	card, err := s.GetByID(ctx, id)
	if err != nil {
		return models.HouseholdCard{}, err
	}

	entry := models.Assignment{
		AssignedTo: assignment.AssignedTo,
		AssignedBy: assignment.AssignedBy,
		AssignedAt: time.Now().UTC(),
		Note:       assignment.Note,
	}

	var owner interface{}
	if assignment.AssignedTo != nil {
		owner = *assignment.AssignedTo
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.HouseholdCard
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "version": card.Version},
		bson.M{
			"$push": bson.M{"assignment_history": entry},
			"$set":  bson.M{"current_owner": owner, "updated_at": entry.AssignedAt},
			"$inc":  bson.M{"version": 1},
		},
		opts,
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		// The record moved between our read and write.
		return models.HouseholdCard{}, apperror.Conflict("card was assigned concurrently, retry")
	}
	if err != nil {
		return models.HouseholdCard{}, apperror.Unknown("failed to assign card", err)
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id models.HouseholdCardID) error {
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apperror.Unknown("failed to delete household card", err)
	}
	return nil
}

func (s *Store) ExistsByCardID(ctx context.Context, householdID models.HouseholdID, cardID models.CardID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"household_id": householdID, "card_id": cardID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, apperror.Unknown("failed to check if card exists", err)
	}
	return true, nil
}
