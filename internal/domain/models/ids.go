// internal/domain/models/ids.go
package models

import "github.com/google/uuid"

// Each entity kind has its own id type so a HouseholdID can never be passed
// where a UserID is expected. Ids are opaque strings (UUIDs for documents
// created by this service; auth-provider subjects for users created at
// sign-up) distinguished only at the type level.

type UserID string

type HouseholdID string

type CardID string

type HouseholdCardID string

type InvitationID string

func NewHouseholdID() HouseholdID { return HouseholdID(uuid.NewString()) }

func NewHouseholdCardID() HouseholdCardID { return HouseholdCardID(uuid.NewString()) }

func NewInvitationID() InvitationID { return InvitationID(uuid.NewString()) }

func (id UserID) String() string { return string(id) }

func (id HouseholdID) String() string { return string(id) }

func (id CardID) String() string { return string(id) }

func (id HouseholdCardID) String() string { return string(id) }

func (id InvitationID) String() string { return string(id) }
