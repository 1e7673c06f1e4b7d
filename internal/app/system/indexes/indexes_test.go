// internal/app/system/indexes/indexes_test.go
package indexes_test

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/tandemhq/tandem/internal/app/system/indexes"
	"github.com/tandemhq/tandem/internal/testutil"
)

func indexNames(t *testing.T, ctx context.Context, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes on %s: %v", coll, err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("decode index: %v", err)
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
			t.Fatalf("EnsureAll #%d failed: %v", i+1, err)
		}
	}
}

func TestEnsureAll_CreatesExpectedIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	want := map[string][]string{
		"users":           {"idx_users_email_ci", "idx_users_household_ids"},
		"households":      {"idx_households_member_ids"},
		"card_templates":  {"idx_card_templates_category"},
		"household_cards": {"idx_household_cards_pair", "idx_household_cards_owner"},
		"invitations":     {"idx_invitations_code", "idx_invitations_household"},
	}
	for coll, idxs := range want {
		names := indexNames(t, ctx, db, coll)
		for _, idx := range idxs {
			if !names[idx] {
				t.Errorf("%s: index %s missing (have %v)", coll, idx, names)
			}
		}
	}
}
