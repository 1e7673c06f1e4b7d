// internal/domain/models/household.go
package models

import "time"

// Household is a group of users sharing a card deck.
//
// NOTE:
//   - The creator is always a member: Create seeds MemberIDs with CreatedBy.
//   - MemberIDs and ActiveCardIDs are sets maintained with $addToSet/$pull;
//     the repository contract forbids whole-array replacement to avoid lost
//     updates when two invitations are accepted concurrently.
type Household struct {
	ID            HouseholdID `bson:"_id" json:"id"`
	Name          string      `bson:"name" json:"name"`
	CreatedBy     UserID      `bson:"created_by" json:"createdBy"`
	MemberIDs     []UserID    `bson:"member_ids" json:"memberIds"`
	ActiveCardIDs []CardID    `bson:"active_card_ids" json:"activeCardIds"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// CreateHouseholdDTO carries the fields household creation supplies.
type CreateHouseholdDTO struct {
	Name string `json:"name" validate:"required,max=50"`
}

// UpdateHouseholdDTO carries household edits. Nil fields are left untouched.
// Member changes are not expressible here; see AddMember/RemoveMember.
type UpdateHouseholdDTO struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=50"`
}

// HouseholdMember is the resolved profile view of one member, produced by
// the GetMembers fan-out.
type HouseholdMember struct {
	UserID   UserID    `json:"userId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}
