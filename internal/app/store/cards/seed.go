// internal/app/store/cards/seed.go
package cardstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/tandemhq/tandem/internal/domain/models"
)

// Seed upserts the built-in template catalog so a fresh deployment serves
// cards immediately. Upserting by id keeps the operation idempotent; edits
// to the catalog here propagate on the next startup without duplicating
// documents.
func Seed(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	c := db.Collection("card_templates")
	for _, tpl := range Catalog {
		filter := bson.M{"_id": tpl.ID}
		if _, err := c.ReplaceOne(ctx, filter, tpl, options.Replace().SetUpsert(true)); err != nil {
			return err
		}
	}
	logger.Info("card catalog seeded", zap.Int("templates", len(Catalog)))
	return nil
}

// Catalog is the built-in card-template set. Each description triple covers
// the three phases of owning a task: conception (noticing the need),
// planning (deciding how and when), execution (doing it).
var Catalog = []models.CardTemplate{
	{
		ID:                    "card-daily-tidying",
		Name:                  "Daily Tidying",
		Category:              models.CategoryHomeCare,
		Description:           "Keeping shared spaces picked up and livable day to day.",
		ConceptionDescription: "Noticing when shared spaces have drifted into clutter.",
		PlanningDescription:   "Deciding which rooms get attention and when the reset happens.",
		ExecutionDescription:  "Doing the pickup: surfaces cleared, things returned to their place.",
		Frequency:             models.FrequencyDaily,
		IconName:              "broom",
	},
	{
		ID:                    "card-laundry",
		Name:                  "Laundry",
		Category:              models.CategoryHomeCare,
		Description:           "The full laundry cycle for the household.",
		ConceptionDescription: "Tracking hamper levels and upcoming clothing needs.",
		PlanningDescription:   "Scheduling loads around the week and sorting what runs together.",
		ExecutionDescription:  "Washing, drying, folding, and putting everything away.",
		Frequency:             models.FrequencyWeekly,
		IconName:              "shirt",
	},
	{
		ID:                    "card-deep-cleaning",
		Name:                  "Deep Cleaning",
		Category:              models.CategoryHomeCare,
		Description:           "Periodic thorough cleaning beyond the daily reset.",
		ConceptionDescription: "Recognizing when bathrooms, floors, and appliances need real attention.",
		PlanningDescription:   "Choosing a rotation and gathering supplies before the day arrives.",
		ExecutionDescription:  "Scrubbing, vacuuming, and finishing the rotation end to end.",
		Frequency:             models.FrequencyMonthly,
		IconName:              "sparkles",
	},
	{
		ID:                    "card-meal-planning",
		Name:                  "Meal Planning",
		Category:              models.CategoryFoodMeals,
		Description:           "Deciding what the household eats each week.",
		ConceptionDescription: "Anticipating the week's schedule, tastes, and what's already in the fridge.",
		PlanningDescription:   "Building the week's menu and turning it into a shopping list.",
		ExecutionDescription:  "Publishing the plan where the household can see it.",
		Frequency:             models.FrequencyWeekly,
		IconName:              "calendar",
	},
	{
		ID:                    "card-grocery-shopping",
		Name:                  "Grocery Shopping",
		Category:              models.CategoryFoodMeals,
		Description:           "Keeping the kitchen stocked.",
		ConceptionDescription: "Noticing staples running low before they run out.",
		PlanningDescription:   "Consolidating the list and picking the store run that fits the week.",
		ExecutionDescription:  "Doing the shop and putting groceries away.",
		Frequency:             models.FrequencyWeekly,
		IconName:              "cart",
	},
	{
		ID:                    "card-weeknight-dinner",
		Name:                  "Weeknight Dinner",
		Category:              models.CategoryFoodMeals,
		Description:           "Getting dinner on the table on weeknights.",
		ConceptionDescription: "Knowing by mid-afternoon what tonight's dinner will be.",
		PlanningDescription:   "Defrosting, prepping, and timing the cook around everyone's evening.",
		ExecutionDescription:  "Cooking, serving, and handling the dishes handoff.",
		Frequency:             models.FrequencyDaily,
		IconName:              "utensils",
	},
	{
		ID:                    "card-school-logistics",
		Name:                  "School Logistics",
		Category:              models.CategoryChildcare,
		Description:           "Forms, schedules, and communication with school.",
		ConceptionDescription: "Catching permission slips, spirit days, and deadlines as they appear.",
		PlanningDescription:   "Putting dates on the calendar and preparing what each day needs.",
		ExecutionDescription:  "Signing, packing, and delivering on the day.",
		Frequency:             models.FrequencyWeekly,
		IconName:              "backpack",
	},
	{
		ID:                    "card-bedtime-routine",
		Name:                  "Bedtime Routine",
		Category:              models.CategoryChildcare,
		Description:           "The nightly wind-down for the kids.",
		ConceptionDescription: "Watching the clock and the energy level to start on time.",
		PlanningDescription:   "Keeping the sequence consistent: bath, teeth, books, lights.",
		ExecutionDescription:  "Running the routine through lights out.",
		Frequency:             models.FrequencyDaily,
		IconName:              "moon",
	},
	{
		ID:                    "card-bills-payments",
		Name:                  "Bills & Payments",
		Category:              models.CategoryFinancial,
		Description:           "Keeping household bills paid on time.",
		ConceptionDescription: "Tracking due dates and spotting unusual charges.",
		PlanningDescription:   "Setting up autopay where sensible and scheduling the rest.",
		ExecutionDescription:  "Paying, filing confirmations, and reconciling the account.",
		Frequency:             models.FrequencyMonthly,
		IconName:              "credit-card",
	},
	{
		ID:                    "card-budget-review",
		Name:                  "Budget Review",
		Category:              models.CategoryFinancial,
		Description:           "The household's recurring look at money in and out.",
		ConceptionDescription: "Sensing when spending has drifted from the plan.",
		PlanningDescription:   "Gathering statements and setting the conversation agenda.",
		ExecutionDescription:  "Holding the review and adjusting the plan together.",
		Frequency:             models.FrequencyMonthly,
		IconName:              "chart",
	},
	{
		ID:                    "card-gifts-occasions",
		Name:                  "Gifts & Occasions",
		Category:              models.CategorySocialFamily,
		Description:           "Birthdays, holidays, and the people the household shows up for.",
		ConceptionDescription: "Remembering whose occasion is coming before it's too late to act.",
		PlanningDescription:   "Choosing the gift or gesture and budgeting for it.",
		ExecutionDescription:  "Buying, wrapping, sending, or showing up.",
		Frequency:             models.FrequencyAsNeeded,
		IconName:              "gift",
	},
	{
		ID:                    "card-holiday-planning",
		Name:                  "Holiday Planning",
		Category:              models.CategorySocialFamily,
		Description:           "Seasonal gatherings and travel.",
		ConceptionDescription: "Anticipating the season's commitments and family expectations.",
		PlanningDescription:   "Booking travel, coordinating hosts, and dividing the cooking.",
		ExecutionDescription:  "Making the gathering happen.",
		Frequency:             models.FrequencySeasonal,
		IconName:              "tree",
	},
	{
		ID:                    "card-medical-appointments",
		Name:                  "Medical Appointments",
		Category:              models.CategoryPersonalCare,
		Description:           "Checkups, dentists, and prescriptions for the household.",
		ConceptionDescription: "Knowing when checkups are due and refills are running out.",
		PlanningDescription:   "Booking appointments that fit the calendar and arranging cover.",
		ExecutionDescription:  "Getting everyone there and following through on the advice.",
		Frequency:             models.FrequencyAsNeeded,
		IconName:              "stethoscope",
	},
}
