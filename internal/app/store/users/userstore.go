// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tandemhq/tandem/internal/apperror"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/domain/repository"
)

// Store persists users. Email uniqueness is enforced by the unique email_ci
// index; household membership lives in the household_ids set and is mutated
// only with $addToSet/$pull.
type Store struct {
	c *mongo.Collection
}

var _ repository.UserRepository = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) Create(ctx context.Context, id models.UserID, data models.CreateUserDTO) (models.User, error) {
	now := time.Now().UTC()
	user := models.User{
		ID:           id,
		Email:        data.Email,
		EmailCI:      text.Fold(data.Email),
		Name:         data.Name,
		Avatar:       data.Avatar,
		AuthProvider: data.AuthProvider,
		HouseholdIDs: []models.HouseholdID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, user); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, apperror.Conflict("a user with this email already exists")
		}
		return models.User{}, apperror.Unknown("failed to create user", err)
	}
	return user, nil
}

func (s *Store) GetByID(ctx context.Context, id models.UserID) (models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, apperror.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, apperror.Unknown("failed to fetch user", err)
	}
	return user, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, apperror.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, apperror.Unknown("failed to fetch user by email", err)
	}
	return user, nil
}

func (s *Store) Update(ctx context.Context, id models.UserID, data models.UpdateUserDTO) (models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if data.Name != nil {
		set["name"] = *data.Name
	}
	if data.Avatar != nil {
		set["avatar"] = *data.Avatar
	}
	if data.CurrentHouseholdID != nil {
		set["current_household_id"] = *data.CurrentHouseholdID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, apperror.NotFound("user not found")
	}
	if err != nil {
		return models.User{}, apperror.Unknown("failed to update user", err)
	}
	return user, nil
}

func (s *Store) Delete(ctx context.Context, id models.UserID) error {
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apperror.Unknown("failed to delete user", err)
	}
	return nil
}

func (s *Store) AddHousehold(ctx context.Context, id models.UserID, householdID models.HouseholdID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"household_ids": householdID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperror.Unknown("failed to add household to user", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("user not found")
	}
	return nil
}

func (s *Store) RemoveHousehold(ctx context.Context, id models.UserID, householdID models.HouseholdID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"household_ids": householdID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperror.Unknown("failed to remove household from user", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("user not found")
	}

	// A dangling current-household pointer must not outlive the membership.
	_, err = s.c.UpdateOne(ctx,
		bson.M{"_id": id, "current_household_id": householdID},
		bson.M{"$unset": bson.M{"current_household_id": ""}},
	)
	if err != nil {
		return apperror.Unknown("failed to clear current household", err)
	}
	return nil
}
