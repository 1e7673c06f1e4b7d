// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tandemhq/tandem/internal/domain/models"
)

// Fixtures inserts test records directly into collections, bypassing the
// stores, so store tests can arrange state without depending on the code
// under test.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user with an email-provider account.
func (f *Fixtures) CreateUser(ctx context.Context, id models.UserID, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           id,
		Email:        email,
		EmailCI:      text.Fold(email),
		Name:         name,
		AuthProvider: models.ProviderEmail,
		HouseholdIDs: []models.HouseholdID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateHousehold inserts a test household with the given members. The
// first member is recorded as the creator.
func (f *Fixtures) CreateHousehold(ctx context.Context, name string, members ...models.UserID) models.Household {
	f.t.Helper()
	if len(members) == 0 {
		f.t.Fatal("CreateHousehold needs at least one member")
	}

	now := time.Now().UTC()
	hh := models.Household{
		ID:            models.NewHouseholdID(),
		Name:          name,
		CreatedBy:     members[0],
		MemberIDs:     members,
		ActiveCardIDs: []models.CardID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("households").InsertOne(ctx, hh); err != nil {
		f.t.Fatalf("failed to create test household: %v", err)
	}
	return hh
}

// CreateTemplate inserts a minimal card template.
func (f *Fixtures) CreateTemplate(ctx context.Context, id models.CardID, name string, category models.CardCategory) models.CardTemplate {
	f.t.Helper()

	tpl := models.CardTemplate{
		ID:          id,
		Name:        name,
		Category:    category,
		Description: "test template",
		Frequency:   models.FrequencyWeekly,
	}
	if _, err := f.db.Collection("card_templates").InsertOne(ctx, tpl); err != nil {
		f.t.Fatalf("failed to create test template: %v", err)
	}
	return tpl
}

// CreateHouseholdCard inserts an active card instance. owner may be nil.
func (f *Fixtures) CreateHouseholdCard(ctx context.Context, householdID models.HouseholdID, cardID models.CardID, owner *models.UserID) models.HouseholdCard {
	f.t.Helper()

	now := time.Now().UTC()
	card := models.HouseholdCard{
		ID:                models.NewHouseholdCardID(),
		HouseholdID:       householdID,
		CardID:            cardID,
		CurrentOwner:      owner,
		IsActive:          true,
		AssignmentHistory: []models.Assignment{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := f.db.Collection("household_cards").InsertOne(ctx, card); err != nil {
		f.t.Fatalf("failed to create test household card: %v", err)
	}
	return card
}

// CreateInvitation inserts an invitation in the given status with the
// given remaining validity (negative means already expired).
func (f *Fixtures) CreateInvitation(ctx context.Context, householdID models.HouseholdID, invitedBy models.UserID, code string, status models.InvitationStatus, validity time.Duration) models.Invitation {
	f.t.Helper()

	now := time.Now().UTC()
	inv := models.Invitation{
		ID:           models.NewInvitationID(),
		HouseholdID:  householdID,
		InvitedBy:    invitedBy,
		InvitedEmail: "invitee@example.com",
		InviteCode:   code,
		Status:       status,
		ExpiresAt:    now.Add(validity),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("invitations").InsertOne(ctx, inv); err != nil {
		f.t.Fatalf("failed to create test invitation: %v", err)
	}
	return inv
}
