// internal/app/features/deck/handler_test.go
package deck_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/tandemhq/tandem/internal/app/features/deck"
	cardstore "github.com/tandemhq/tandem/internal/app/store/cards"
	householdstore "github.com/tandemhq/tandem/internal/app/store/households"
	householdcardstore "github.com/tandemhq/tandem/internal/app/store/householdcards"
	"github.com/tandemhq/tandem/internal/app/system/apiauth"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/testutil"
)

func newHandler(t *testing.T) (*deck.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return deck.NewHandler(
		householdcardstore.New(db),
		householdstore.New(db),
		cardstore.New(db),
		zap.NewNop(),
	), testutil.NewFixtures(t, db)
}

func TestAdopt(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "user-1", "Ada", "ada@example.com")
	hh := fixtures.CreateHousehold(ctx, "Chez Nous", "user-1")
	fixtures.CreateTemplate(ctx, "card-laundry", "Laundry", models.CategoryHomeCare)

	body := map[string]any{"cardId": "card-laundry", "currentOwner": "user-1"}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/", body)
	req = testutil.WithChiURLParam(req, "id", string(hh.ID))
	req = apiauth.WithTestUser(req, "user-1")
	rec := httptest.NewRecorder()

	h.Adopt(rec, req)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	var card models.HouseholdCard
	testutil.DecodeJSON(t, rec, &card)
	if card.CardID != "card-laundry" {
		t.Errorf("CardID: got %q", card.CardID)
	}
	if card.CurrentOwner == nil || *card.CurrentOwner != "user-1" {
		t.Errorf("CurrentOwner: got %v, want user-1", card.CurrentOwner)
	}
	if len(card.AssignmentHistory) != 1 {
		t.Errorf("history: got %d entries, want 1", len(card.AssignmentHistory))
	}

	// The template id lands in the household's active set.
	got, err := householdstore.New(fixtures.DB()).GetByID(ctx, hh.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.ActiveCardIDs) != 1 || got.ActiveCardIDs[0] != "card-laundry" {
		t.Errorf("ActiveCardIDs: got %v, want [card-laundry]", got.ActiveCardIDs)
	}
}

func TestAdopt_DuplicateTemplateConflicts(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hh := fixtures.CreateHousehold(ctx, "Chez Nous", "user-1")
	fixtures.CreateTemplate(ctx, "card-laundry", "Laundry", models.CategoryHomeCare)
	fixtures.CreateHouseholdCard(ctx, hh.ID, "card-laundry", nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{"cardId": "card-laundry"})
	req = testutil.WithChiURLParam(req, "id", string(hh.ID))
	req = apiauth.WithTestUser(req, "user-1")
	rec := httptest.NewRecorder()

	h.Adopt(rec, req)
	testutil.AssertStatus(t, rec, http.StatusConflict)
}

func TestAdopt_UnknownTemplate(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hh := fixtures.CreateHousehold(ctx, "Chez Nous", "user-1")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{"cardId": "card-nope"})
	req = testutil.WithChiURLParam(req, "id", string(hh.ID))
	req = apiauth.WithTestUser(req, "user-1")
	rec := httptest.NewRecorder()

	h.Adopt(rec, req)
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestAdopt_NonMemberForbidden(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hh := fixtures.CreateHousehold(ctx, "Chez Nous", "user-1")
	fixtures.CreateTemplate(ctx, "card-laundry", "Laundry", models.CategoryHomeCare)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{"cardId": "card-laundry"})
	req = testutil.WithChiURLParam(req, "id", string(hh.ID))
	req = apiauth.WithTestUser(req, "user-2")
	rec := httptest.NewRecorder()

	h.Adopt(rec, req)
	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestAssign(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hh := fixtures.CreateHousehold(ctx, "Chez Nous", "user-1", "user-2")
	card := fixtures.CreateHouseholdCard(ctx, hh.ID, "card-laundry", nil)

	body := map[string]any{"assignedTo": "user-2", "note": "your week"}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/", body)
	req = testutil.WithChiURLParam(req, "cardID", string(card.ID))
	req = apiauth.WithTestUser(req, "user-1")
	rec := httptest.NewRecorder()

	h.Assign(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var updated models.HouseholdCard
	testutil.DecodeJSON(t, rec, &updated)
	if updated.CurrentOwner == nil || *updated.CurrentOwner != "user-2" {
		t.Errorf("CurrentOwner: got %v, want user-2", updated.CurrentOwner)
	}
	if len(updated.AssignmentHistory) != 1 {
		t.Fatalf("history: got %d entries, want 1", len(updated.AssignmentHistory))
	}
	if updated.AssignmentHistory[0].AssignedBy != "user-1" {
		t.Errorf("AssignedBy should be the acting user, got %q", updated.AssignmentHistory[0].AssignedBy)
	}
}

func TestAssign_NonMemberAssignee(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hh := fixtures.CreateHousehold(ctx, "Chez Nous", "user-1")
	card := fixtures.CreateHouseholdCard(ctx, hh.ID, "card-laundry", nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{"assignedTo": "user-9"})
	req = testutil.WithChiURLParam(req, "cardID", string(card.ID))
	req = apiauth.WithTestUser(req, "user-1")
	rec := httptest.NewRecorder()

	h.Assign(rec, req)
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestDelete_RemovesFromActiveSet(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hh := fixtures.CreateHousehold(ctx, "Chez Nous", "user-1")
	card := fixtures.CreateHouseholdCard(ctx, hh.ID, "card-laundry", nil)
	hhStore := householdstore.New(fixtures.DB())
	if err := hhStore.AddCard(ctx, hh.ID, card.CardID); err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}

	req := testutil.NewJSONRequest(t, http.MethodDelete, "/", nil)
	req = testutil.WithChiURLParam(req, "cardID", string(card.ID))
	req = apiauth.WithTestUser(req, "user-1")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)
	testutil.AssertStatus(t, rec, http.StatusNoContent)

	got, err := hhStore.GetByID(ctx, hh.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.ActiveCardIDs) != 0 {
		t.Errorf("ActiveCardIDs: got %v, want empty", got.ActiveCardIDs)
	}
}
