// internal/app/store/households/householdstore.go
package householdstore

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/tandemhq/tandem/internal/apperror"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/domain/repository"
)

// Store persists households.
//
// Member and active-card sets are mutated only with $addToSet/$pull so
// concurrent joins never clobber each other. Delete cascades to the
// household's cards and invitations and pulls the household id out of every
// member's household set.
type Store struct {
	c           *mongo.Collection
	users       *mongo.Collection
	cards       *mongo.Collection
	invitations *mongo.Collection
}

var _ repository.HouseholdRepository = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{
		c:           db.Collection("households"),
		users:       db.Collection("users"),
		cards:       db.Collection("household_cards"),
		invitations: db.Collection("invitations"),
	}
}

func (s *Store) Create(ctx context.Context, createdBy models.UserID, data models.CreateHouseholdDTO) (models.Household, error) {
	now := time.Now().UTC()
	hh := models.Household{
		ID:            models.NewHouseholdID(),
		Name:          data.Name,
		CreatedBy:     createdBy,
		MemberIDs:     []models.UserID{createdBy},
		ActiveCardIDs: []models.CardID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.c.InsertOne(ctx, hh); err != nil {
		return models.Household{}, apperror.Unknown("failed to create household", err)
	}
	return hh, nil
}

func (s *Store) GetByID(ctx context.Context, id models.HouseholdID) (models.Household, error) {
	var hh models.Household
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&hh)
	if err == mongo.ErrNoDocuments {
		return models.Household{}, apperror.NotFound("household not found")
	}
	if err != nil {
		return models.Household{}, apperror.Unknown("failed to fetch household", err)
	}
	return hh, nil
}

func (s *Store) GetByUserID(ctx context.Context, userID models.UserID) ([]models.Household, error) {
	cur, err := s.c.Find(ctx, bson.M{"member_ids": userID})
	if err != nil {
		return nil, apperror.Unknown("failed to fetch households for user", err)
	}
	defer cur.Close(ctx)

	var households []models.Household
	if err := cur.All(ctx, &households); err != nil {
		return nil, apperror.Unknown("failed to decode households", err)
	}
	return households, nil
}

func (s *Store) Update(ctx context.Context, id models.HouseholdID, data models.UpdateHouseholdDTO) (models.Household, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if data.Name != nil {
		set["name"] = *data.Name
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var hh models.Household
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&hh)
	if err == mongo.ErrNoDocuments {
		return models.Household{}, apperror.NotFound("household not found")
	}
	if err != nil {
		return models.Household{}, apperror.Unknown("failed to update household", err)
	}
	return hh, nil
}

// Delete removes the household and everything exclusively owned by it.
// Children go first: a crash mid-cascade leaves an empty household behind,
// never orphaned cards.
func (s *Store) Delete(ctx context.Context, id models.HouseholdID) error {
	var hh models.Household
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&hh)
	if err == mongo.ErrNoDocuments {
		return apperror.NotFound("household not found")
	}
	if err != nil {
		return apperror.Unknown("failed to fetch household", err)
	}

	if _, err := s.cards.DeleteMany(ctx, bson.M{"household_id": id}); err != nil {
		return apperror.Unknown("failed to delete household cards", err)
	}
	if _, err := s.invitations.DeleteMany(ctx, bson.M{"household_id": id}); err != nil {
		return apperror.Unknown("failed to delete household invitations", err)
	}

	_, err = s.users.UpdateMany(ctx,
		bson.M{"household_ids": id},
		bson.M{"$pull": bson.M{"household_ids": id}},
	)
	if err != nil {
		return apperror.Unknown("failed to detach members", err)
	}
	_, err = s.users.UpdateMany(ctx,
		bson.M{"current_household_id": id},
		bson.M{"$unset": bson.M{"current_household_id": ""}},
	)
	if err != nil {
		return apperror.Unknown("failed to clear current household pointers", err)
	}

	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apperror.Unknown("failed to delete household", err)
	}
	return nil
}

func (s *Store) AddMember(ctx context.Context, id models.HouseholdID, userID models.UserID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"member_ids": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperror.Unknown("failed to add member to household", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("household not found")
	}
	return nil
}

func (s *Store) RemoveMember(ctx context.Context, id models.HouseholdID, userID models.UserID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"member_ids": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperror.Unknown("failed to remove member from household", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("household not found")
	}
	return nil
}

func (s *Store) AddCard(ctx context.Context, id models.HouseholdID, cardID models.CardID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"active_card_ids": cardID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperror.Unknown("failed to add card to household", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("household not found")
	}
	return nil
}

func (s *Store) RemoveCard(ctx context.Context, id models.HouseholdID, cardID models.CardID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"active_card_ids": cardID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperror.Unknown("failed to remove card from household", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("household not found")
	}
	return nil
}

// GetMembers resolves the member set to user profiles. Lookups run
// concurrently; an id that no longer matches a user is dropped rather than
// failing the call, tolerating stale membership references. A store fault on
// any lookup fails the whole call.
func (s *Store) GetMembers(ctx context.Context, id models.HouseholdID) ([]models.HouseholdMember, error) {
	hh, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(hh.MemberIDs) == 0 {
		return []models.HouseholdMember{}, nil
	}

	var (
		mu      sync.Mutex
		found   = make(map[models.UserID]models.User, len(hh.MemberIDs))
		g, gctx = errgroup.WithContext(ctx)
	)
	for _, memberID := range hh.MemberIDs {
		g.Go(func() error {
			var u models.User
			err := s.users.FindOne(gctx, bson.M{"_id": memberID}).Decode(&u)
			if err == mongo.ErrNoDocuments {
				return nil // stale reference, drop
			}
			if err != nil {
				return err
			}
			mu.Lock()
			found[memberID] = u
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperror.Unknown("failed to fetch household members", err)
	}

	// Preserve the member-set order for a stable response.
	members := make([]models.HouseholdMember, 0, len(found))
	for _, memberID := range hh.MemberIDs {
		u, ok := found[memberID]
		if !ok {
			continue
		}
		members = append(members, models.HouseholdMember{
			UserID:   u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Avatar:   u.Avatar,
			JoinedAt: u.CreatedAt,
		})
	}
	return members, nil
}
