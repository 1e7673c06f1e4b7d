// internal/app/features/households/handler_test.go
package households_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/tandemhq/tandem/internal/app/balance"
	"github.com/tandemhq/tandem/internal/app/features/households"
	householdstore "github.com/tandemhq/tandem/internal/app/store/households"
	householdcardstore "github.com/tandemhq/tandem/internal/app/store/householdcards"
	userstore "github.com/tandemhq/tandem/internal/app/store/users"
	"github.com/tandemhq/tandem/internal/app/system/apiauth"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/testutil"
)

func newHandler(t *testing.T) (*households.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return households.NewHandler(
		householdstore.New(db),
		userstore.New(db),
		householdcardstore.New(db),
		zap.NewNop(),
	), testutil.NewFixtures(t, db)
}

func TestCreate(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "user-1", "Ada", "ada@example.com")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{"name": "Chez Nous"})
	req = apiauth.WithTestUser(req, "user-1")
	rec := httptest.NewRecorder()

	h.Create(rec, req)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	var hh models.Household
	testutil.DecodeJSON(t, rec, &hh)
	if hh.CreatedBy != "user-1" {
		t.Errorf("CreatedBy: got %q, want user-1", hh.CreatedBy)
	}
	if len(hh.MemberIDs) != 1 || hh.MemberIDs[0] != "user-1" {
		t.Errorf("MemberIDs: got %v, want [user-1]", hh.MemberIDs)
	}

	// The household id lands in the creator's household set.
	u, err := userstore.New(fixtures.DB()).GetByID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(u.HouseholdIDs) != 1 || u.HouseholdIDs[0] != hh.ID {
		t.Errorf("HouseholdIDs: got %v, want [%s]", u.HouseholdIDs, hh.ID)
	}
}

func TestCreate_BlankNameRejected(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{"name": "  <b></b>  "})
	req = apiauth.WithTestUser(req, "user-1")
	rec := httptest.NewRecorder()

	h.Create(rec, req)
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestDelete_NonCreatorForbidden(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hh := fixtures.CreateHousehold(ctx, "Chez Nous", "user-1", "user-2")

	req := testutil.NewJSONRequest(t, http.MethodDelete, "/", nil)
	req = testutil.WithChiURLParam(req, "id", string(hh.ID))
	req = apiauth.WithTestUser(req, "user-2")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)
	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestRemoveMember_OtherMemberForbidden(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hh := fixtures.CreateHousehold(ctx, "Chez Nous", "user-1", "user-2", "user-3")

	req := testutil.NewJSONRequest(t, http.MethodDelete, "/", nil)
	req = testutil.WithChiURLParam(req, "id", string(hh.ID))
	req = testutil.WithChiURLParam(req, "userID", "user-3")
	req = apiauth.WithTestUser(req, "user-2")
	rec := httptest.NewRecorder()

	h.RemoveMember(rec, req)
	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestBalance(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hh := fixtures.CreateHousehold(ctx, "Chez Nous", "user-1", "user-2")
	ada, ben := models.UserID("user-1"), models.UserID("user-2")
	for i := 0; i < 6; i++ {
		fixtures.CreateHouseholdCard(ctx, hh.ID, models.CardID(fmt.Sprintf("card-a%d", i)), &ada)
	}
	for i := 0; i < 8; i++ {
		fixtures.CreateHouseholdCard(ctx, hh.ID, models.CardID(fmt.Sprintf("card-b%d", i)), &ben)
	}
	fixtures.CreateHouseholdCard(ctx, hh.ID, "card-unassigned", nil)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/", nil)
	req = testutil.WithChiURLParam(req, "id", string(hh.ID))
	req = apiauth.WithTestUser(req, "user-1")
	rec := httptest.NewRecorder()

	h.Balance(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var report balance.Report
	testutil.DecodeJSON(t, rec, &report)
	if report.Status != balance.StatusFair {
		t.Errorf("Status: got %q, want fair", report.Status)
	}
	if len(report.Loads) != 2 {
		t.Fatalf("Loads: got %d entries, want 2", len(report.Loads))
	}
	if report.Unassigned != 1 {
		t.Errorf("Unassigned: got %d, want 1", report.Unassigned)
	}
}
