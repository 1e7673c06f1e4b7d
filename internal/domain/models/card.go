// internal/domain/models/card.go
package models

// CardTemplate is an immutable catalog entry describing one recurring
// household task. Templates are seeded data; the application only reads them.
//
// The three phase descriptions explain what "owning" the card means:
// conception (noticing or anticipating the need), planning (deciding how and
// when), and execution (doing the task).
type CardTemplate struct {
	ID                    CardID        `bson:"_id" json:"id"`
	Name                  string        `bson:"name" json:"name"`
	Category              CardCategory  `bson:"category" json:"category"`
	Description           string        `bson:"description" json:"description"`
	ConceptionDescription string        `bson:"conception_description" json:"conceptionDescription"`
	PlanningDescription   string        `bson:"planning_description" json:"planningDescription"`
	ExecutionDescription  string        `bson:"execution_description" json:"executionDescription"`
	Frequency             TaskFrequency `bson:"frequency" json:"frequency"`
	IconName              string        `bson:"icon_name" json:"iconName"`
}
