// internal/domain/models/householdcard.go
package models

import "time"

// Assignment is one historical ownership-change record inside a household
// card. AssignedTo nil means the card was left unassigned. AssignedAt is set
// by the store at write time, never by the caller, so the audit order is
// trustworthy.
type Assignment struct {
	AssignedTo *UserID   `bson:"assigned_to" json:"assignedTo"`
	AssignedBy UserID    `bson:"assigned_by" json:"assignedBy"`
	AssignedAt time.Time `bson:"assigned_at" json:"assignedAt"`
	Note       string    `bson:"note,omitempty" json:"note,omitempty"`
}

// HouseholdCard is a household's live instance of a card template.
//
// Invariants the store enforces:
//   - at most one instance per (household_id, card_id) pair
//   - AssignmentHistory is append-only; every ownership change appends
//     exactly one entry and CurrentOwner always matches the latest entry
//   - Version counts ownership mutations; Assign is guarded on it so a lost
//     race surfaces as CONFLICT instead of a silently dropped history entry
type HouseholdCard struct {
	ID                HouseholdCardID `bson:"_id" json:"id"`
	HouseholdID       HouseholdID     `bson:"household_id" json:"householdId"`
	CardID            CardID          `bson:"card_id" json:"cardId"`
	CurrentOwner      *UserID         `bson:"current_owner" json:"currentOwner"`
	IsActive          bool            `bson:"is_active" json:"isActive"`
	AssignmentHistory []Assignment    `bson:"assignment_history" json:"assignmentHistory"`
	Notes             string          `bson:"notes,omitempty" json:"notes,omitempty"`
	Version           int64           `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// CreateHouseholdCardDTO carries the fields card adoption supplies. A non-nil
// CurrentOwner seeds the history with one self-assignment entry. The
// household id comes from the route, not the body.
type CreateHouseholdCardDTO struct {
	HouseholdID  HouseholdID `json:"-"`
	CardID       CardID      `json:"cardId" validate:"required"`
	CurrentOwner *UserID     `json:"currentOwner,omitempty"`
}

// UpdateHouseholdCardDTO carries field-level edits. Nil fields are left
// untouched. Unassign clears the owner; ownership changes that should be
// historized go through AssignCard instead.
type UpdateHouseholdCardDTO struct {
	CurrentOwner *UserID `json:"currentOwner,omitempty"`
	Unassign     bool    `json:"unassign,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// AssignCardDTO describes one ownership change. AssignedTo nil unassigns the
// card; the change is still historized. AssignedBy is filled in from the
// acting user, never from the body.
type AssignCardDTO struct {
	AssignedTo *UserID `json:"assignedTo"`
	AssignedBy UserID  `json:"-"`
	Note       string  `json:"note,omitempty" validate:"max=500"`
}
