// internal/app/store/householdcards/householdcardstore_test.go
package householdcardstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	householdcardstore "github.com/tandemhq/tandem/internal/app/store/householdcards"
	"github.com/tandemhq/tandem/internal/app/system/indexes"
	"github.com/tandemhq/tandem/internal/apperror"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/testutil"
)

func TestStore_Create_WithOwnerSeedsHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := householdcardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := models.UserID("user-1")
	card, err := store.Create(ctx, models.CreateHouseholdCardDTO{
		HouseholdID:  "hh-1",
		CardID:       "card-laundry",
		CurrentOwner: &owner,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !card.IsActive {
		t.Error("new cards should start active")
	}
	if len(card.AssignmentHistory) != 1 {
		t.Fatalf("history: got %d entries, want 1 self-assignment", len(card.AssignmentHistory))
	}
	entry := card.AssignmentHistory[0]
	if entry.AssignedTo == nil || *entry.AssignedTo != owner || entry.AssignedBy != owner {
		t.Errorf("self-assignment entry wrong: %+v", entry)
	}
	if entry.AssignedAt.IsZero() {
		t.Error("entry timestamp should be set by the store")
	}
}

func TestStore_Create_WithoutOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := householdcardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	card, err := store.Create(ctx, models.CreateHouseholdCardDTO{
		HouseholdID: "hh-1",
		CardID:      "card-laundry",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if card.CurrentOwner != nil {
		t.Errorf("CurrentOwner: got %v, want nil", *card.CurrentOwner)
	}
	if card.AssignmentHistory == nil || len(card.AssignmentHistory) != 0 {
		t.Errorf("history should start empty, got %v", card.AssignmentHistory)
	}
}

func TestStore_Create_DuplicatePairConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := householdcardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	dto := models.CreateHouseholdCardDTO{HouseholdID: "hh-1", CardID: "card-laundry"}
	if _, err := store.Create(ctx, dto); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, dto); apperror.CodeOf(err) != apperror.CodeConflict {
		t.Fatalf("second Create: got %v, want CONFLICT", err)
	}

	// The same template in another household is fine.
	dto.HouseholdID = "hh-2"
	if _, err := store.Create(ctx, dto); err != nil {
		t.Fatalf("Create in other household failed: %v", err)
	}
}

func TestStore_ExistsByCardID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := householdcardstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateHouseholdCard(ctx, "hh-1", "card-laundry", nil)

	exists, err := store.ExistsByCardID(ctx, "hh-1", "card-laundry")
	if err != nil {
		t.Fatalf("ExistsByCardID failed: %v", err)
	}
	if !exists {
		t.Error("expected exists=true for an adopted template")
	}

	exists, err = store.ExistsByCardID(ctx, "hh-1", "card-dishes")
	if err != nil {
		t.Fatalf("ExistsByCardID failed: %v", err)
	}
	if exists {
		t.Error("expected exists=false for a template the household never adopted")
	}
}

func TestStore_AssignCard_AppendsHistoryAndMovesOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := householdcardstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	card := fixtures.CreateHouseholdCard(ctx, "hh-1", "card-laundry", nil)

	to := models.UserID("user-2")
	updated, err := store.AssignCard(ctx, card.ID, models.AssignCardDTO{
		AssignedTo: &to,
		AssignedBy: "user-1",
		Note:       "your turn this week",
	})
	if err != nil {
		t.Fatalf("AssignCard failed: %v", err)
	}

	if updated.CurrentOwner == nil || *updated.CurrentOwner != to {
		t.Errorf("CurrentOwner: got %v, want user-2", updated.CurrentOwner)
	}
	if len(updated.AssignmentHistory) != 1 {
		t.Fatalf("history: got %d entries, want 1", len(updated.AssignmentHistory))
	}
	last := updated.AssignmentHistory[len(updated.AssignmentHistory)-1]
	if last.AssignedTo == nil || *last.AssignedTo != to || last.AssignedBy != "user-1" {
		t.Errorf("history entry wrong: %+v", last)
	}
	if last.Note != "your turn this week" {
		t.Errorf("note: got %q", last.Note)
	}
	if updated.Version != card.Version+1 {
		t.Errorf("version: got %d, want %d", updated.Version, card.Version+1)
	}

	// A second assignment appends, never rewrites.
	updated2, err := store.AssignCard(ctx, card.ID, models.AssignCardDTO{AssignedBy: "user-2"})
	if err != nil {
		t.Fatalf("second AssignCard failed: %v", err)
	}
	if updated2.CurrentOwner != nil {
		t.Errorf("nil AssignedTo should unassign, got %v", *updated2.CurrentOwner)
	}
	if len(updated2.AssignmentHistory) != 2 {
		t.Fatalf("history: got %d entries, want 2", len(updated2.AssignmentHistory))
	}
	if first := updated2.AssignmentHistory[0]; first.AssignedTo == nil || *first.AssignedTo != to {
		t.Errorf("earlier history entry was rewritten: %+v", first)
	}
}

func TestStore_AssignCard_VersionGuard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := householdcardstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	card := fixtures.CreateHouseholdCard(ctx, "hh-1", "card-laundry", nil)

	to := models.UserID("user-2")
	updated, err := store.AssignCard(ctx, card.ID, models.AssignCardDTO{AssignedTo: &to, AssignedBy: "user-1"})
	if err != nil {
		t.Fatalf("AssignCard failed: %v", err)
	}
	if updated.Version != card.Version+1 {
		t.Fatalf("version: got %d, want %d", updated.Version, card.Version+1)
	}

	// A write guarded on the pre-assignment version must match nothing
	// now; this is exactly the filter a losing concurrent assignment
	// would issue.
	res, err := db.Collection("household_cards").UpdateOne(ctx,
		bson.M{"_id": card.ID, "version": card.Version},
		bson.M{"$inc": bson.M{"version": 1}},
	)
	if err != nil {
		t.Fatalf("guarded update: %v", err)
	}
	if res.MatchedCount != 0 {
		t.Fatal("stale version guard matched; concurrent assignments would race")
	}
}

func TestStore_AssignCard_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := householdcardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	to := models.UserID("user-2")
	_, err := store.AssignCard(ctx, "missing", models.AssignCardDTO{AssignedTo: &to, AssignedBy: "user-1"})
	if apperror.CodeOf(err) != apperror.CodeNotFound {
		t.Fatalf("AssignCard: got %v, want NOT_FOUND", err)
	}
}

func TestStore_GetByOwner_OnlyActiveOwnedCards(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := householdcardstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := models.UserID("user-1")
	mine := fixtures.CreateHouseholdCard(ctx, "hh-1", "card-a", &owner)
	fixtures.CreateHouseholdCard(ctx, "hh-1", "card-b", nil)
	other := models.UserID("user-2")
	fixtures.CreateHouseholdCard(ctx, "hh-1", "card-c", &other)

	inactive := fixtures.CreateHouseholdCard(ctx, "hh-1", "card-d", &owner)
	off := false
	if _, err := store.Update(ctx, inactive.ID, models.UpdateHouseholdCardDTO{IsActive: &off}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByOwner(ctx, "hh-1", owner)
	if err != nil {
		t.Fatalf("GetByOwner failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("got %v, want just %s", got, mine.ID)
	}
}

func TestStore_Update_UnassignClearsOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := householdcardstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := models.UserID("user-1")
	card := fixtures.CreateHouseholdCard(ctx, "hh-1", "card-a", &owner)

	updated, err := store.Update(ctx, card.ID, models.UpdateHouseholdCardDTO{Unassign: true})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.CurrentOwner != nil {
		t.Errorf("CurrentOwner: got %v, want nil", *updated.CurrentOwner)
	}
	if len(updated.AssignmentHistory) != 0 {
		t.Errorf("Update must not touch history, got %v", updated.AssignmentHistory)
	}
}
