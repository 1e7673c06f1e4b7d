// internal/domain/models/cardtypes.go
package models

// Canonical card category identifiers.
//
// These values are stored in the database in the CardTemplate.Category field
// and are used throughout the application as stable keys. Human-facing labels
// come from CategoryLabels.
type CardCategory string

const (
	CategoryHomeCare     CardCategory = "home_care"
	CategoryFoodMeals    CardCategory = "food_meals"
	CategoryChildcare    CardCategory = "childcare"
	CategoryFinancial    CardCategory = "financial"
	CategorySocialFamily CardCategory = "social_family"
	CategoryPersonalCare CardCategory = "personal_care"
)

// CardCategories is the full set of allowed category identifiers and the
// single source of truth for validation.
var CardCategories = []CardCategory{
	CategoryHomeCare,
	CategoryFoodMeals,
	CategoryChildcare,
	CategoryFinancial,
	CategorySocialFamily,
	CategoryPersonalCare,
}

// CategoryLabels maps category identifiers to display labels.
var CategoryLabels = map[CardCategory]string{
	CategoryHomeCare:     "Home Care",
	CategoryFoodMeals:    "Food & Meals",
	CategoryChildcare:    "Childcare",
	CategoryFinancial:    "Financial",
	CategorySocialFamily: "Social & Family",
	CategoryPersonalCare: "Personal Care",
}

func (c CardCategory) Valid() bool {
	_, ok := CategoryLabels[c]
	return ok
}

func (c CardCategory) Label() string { return CategoryLabels[c] }

// TaskFrequency describes how often a card's task recurs.
type TaskFrequency string

const (
	FrequencyDaily    TaskFrequency = "daily"
	FrequencyWeekly   TaskFrequency = "weekly"
	FrequencyMonthly  TaskFrequency = "monthly"
	FrequencySeasonal TaskFrequency = "seasonal"
	FrequencyAsNeeded TaskFrequency = "as_needed"
)

var TaskFrequencies = []TaskFrequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencySeasonal,
	FrequencyAsNeeded,
}

// FrequencyLabels maps frequency identifiers to display labels.
var FrequencyLabels = map[TaskFrequency]string{
	FrequencyDaily:    "Daily",
	FrequencyWeekly:   "Weekly",
	FrequencyMonthly:  "Monthly",
	FrequencySeasonal: "Seasonal",
	FrequencyAsNeeded: "As Needed",
}

func (f TaskFrequency) Valid() bool {
	_, ok := FrequencyLabels[f]
	return ok
}

func (f TaskFrequency) Label() string { return FrequencyLabels[f] }
