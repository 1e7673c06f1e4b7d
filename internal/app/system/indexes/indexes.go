// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureHouseholds(ctx, db); err != nil {
		problems = append(problems, "households: "+err.Error())
	}
	if err := ensureCardTemplates(ctx, db); err != nil {
		problems = append(problems, "card_templates: "+err.Error())
	}
	if err := ensureHouseholdCards(ctx, db); err != nil {
		problems = append(problems, "household_cards: "+err.Error())
	}
	if err := ensureInvitations(ctx, db); err != nil {
		problems = append(problems, "invitations: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	logger.Info("indexes ensured")
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_users_email_ci"),
		},
		{
			Keys:    bson.D{{Key: "household_ids", Value: 1}},
			Options: options.Index().SetName("idx_users_household_ids"),
		},
	})
	return err
}

func ensureHouseholds(ctx context.Context, db *mongo.Database) error {
	// member_ids is a multikey index serving the households-of-user query.
	_, err := db.Collection("households").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "member_ids", Value: 1}},
			Options: options.Index().SetName("idx_households_member_ids"),
		},
	})
	return err
}

func ensureCardTemplates(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("card_templates").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_card_templates_category"),
		},
	})
	return err
}

func ensureHouseholdCards(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("household_cards").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// One instance per template per household. The repository contract
		// still requires the ExistsByCardID precheck; this backstops races.
		{
			Keys:    bson.D{{Key: "household_id", Value: 1}, {Key: "card_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_household_cards_pair"),
		},
		{
			Keys:    bson.D{{Key: "household_id", Value: 1}, {Key: "current_owner", Value: 1}, {Key: "is_active", Value: 1}},
			Options: options.Index().SetName("idx_household_cards_owner"),
		},
	})
	return err
}

func ensureInvitations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("invitations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Codes are redeemed by exact match and must be unique; the store's
		// create loop regenerates on a duplicate-key insert.
		{
			Keys:    bson.D{{Key: "invite_code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_invitations_code"),
		},
		{
			Keys:    bson.D{{Key: "household_id", Value: 1}},
			Options: options.Index().SetName("idx_invitations_household"),
		},
	})
	return err
}
