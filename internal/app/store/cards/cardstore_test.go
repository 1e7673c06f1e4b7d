// internal/app/store/cards/cardstore_test.go
package cardstore_test

import (
	"fmt"
	"testing"

	"go.uber.org/zap"

	cardstore "github.com/tandemhq/tandem/internal/app/store/cards"
	"github.com/tandemhq/tandem/internal/apperror"
	"github.com/tandemhq/tandem/internal/domain/models"
	"github.com/tandemhq/tandem/internal/testutil"
)

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, "missing")
	if apperror.CodeOf(err) != apperror.CodeNotFound {
		t.Fatalf("GetByID: got %v, want NOT_FOUND", err)
	}
}

func TestStore_GetByIDs_ChunksOverBatchSize(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Well past one batch, so the query must be split and reassembled.
	n := cardstore.BatchSize*2 + 3
	ids := make([]models.CardID, 0, n)
	for i := 0; i < n; i++ {
		id := models.CardID(fmt.Sprintf("card-%02d", i))
		fixtures.CreateTemplate(ctx, id, fmt.Sprintf("Card %02d", i), models.CategoryHomeCare)
		ids = append(ids, id)
	}
	// Unknown ids are silently dropped, not errors.
	ids = append(ids, "card-missing")

	got, err := store.GetByIDs(ctx, ids)
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(got) != n {
		t.Fatalf("got %d templates, want %d", len(got), n)
	}
	seen := map[models.CardID]bool{}
	for _, tpl := range got {
		seen[tpl.ID] = true
	}
	for _, id := range ids[:n] {
		if !seen[id] {
			t.Errorf("template %s missing from result", id)
		}
	}
}

func TestStore_GetByIDs_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.GetByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d templates, want 0", len(got))
	}
}

func TestStore_GetByCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateTemplate(ctx, "card-a", "A", models.CategoryHomeCare)
	fixtures.CreateTemplate(ctx, "card-b", "B", models.CategoryFoodMeals)

	got, err := store.GetByCategory(ctx, models.CategoryHomeCare)
	if err != nil {
		t.Fatalf("GetByCategory failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "card-a" {
		t.Fatalf("got %v, want just card-a", got)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := cardstore.Seed(ctx, db, zap.NewNop()); err != nil {
			t.Fatalf("Seed #%d failed: %v", i+1, err)
		}
	}

	got, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != len(cardstore.Catalog) {
		t.Fatalf("got %d templates, want %d", len(got), len(cardstore.Catalog))
	}
}

func TestSeed_CoversEveryCategory(t *testing.T) {
	covered := map[models.CardCategory]bool{}
	for _, tpl := range cardstore.Catalog {
		covered[tpl.Category] = true
	}
	for _, cat := range models.CardCategories {
		if !covered[cat] {
			t.Errorf("catalog has no template in category %s", cat)
		}
	}
}
