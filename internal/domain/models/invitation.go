// internal/domain/models/invitation.go
package models

import "time"

// InvitationStatus is the invitation state machine value.
//
//	pending -> accepted  (code redeemed in time)
//	pending -> expired   (evaluated lazily against ExpiresAt)
//	pending -> declined
//
// accepted, expired, and declined are terminal.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
	InvitationDeclined InvitationStatus = "declined"
)

var InvitationStatuses = []InvitationStatus{
	InvitationPending,
	InvitationAccepted,
	InvitationExpired,
	InvitationDeclined,
}

func (s InvitationStatus) Valid() bool {
	for _, v := range InvitationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Invitation is a time-limited, code-based offer to join a household.
type Invitation struct {
	ID           InvitationID     `bson:"_id" json:"id"`
	HouseholdID  HouseholdID      `bson:"household_id" json:"householdId"`
	InvitedBy    UserID           `bson:"invited_by" json:"invitedBy"`
	InvitedEmail string           `bson:"invited_email" json:"invitedEmail"`
	InviteCode   string           `bson:"invite_code" json:"inviteCode"`
	Status       InvitationStatus `bson:"status" json:"status"`
	ExpiresAt    time.Time        `bson:"expires_at" json:"expiresAt"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// CreateInvitationDTO carries the fields invitation creation supplies.
// InvitedBy is filled in from the acting user, never from the body.
type CreateInvitationDTO struct {
	HouseholdID  HouseholdID `json:"householdId" validate:"required"`
	InvitedBy    UserID      `json:"-"`
	InvitedEmail string      `json:"invitedEmail" validate:"required,email"`
}
