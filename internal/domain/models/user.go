// internal/domain/models/user.go
package models

import "time"

// AuthProvider identifies how a user signed up.
type AuthProvider string

const (
	ProviderEmail  AuthProvider = "email"
	ProviderGoogle AuthProvider = "google"
	ProviderApple  AuthProvider = "apple"
)

var AuthProviders = []AuthProvider{ProviderEmail, ProviderGoogle, ProviderApple}

func (p AuthProvider) Valid() bool {
	for _, v := range AuthProviders {
		if p == v {
			return true
		}
	}
	return false
}

// User represents an account in the system.
//
// NOTE:
//   - The id is the auth-provider subject, assigned at sign-up, not generated
//     here.
//   - HouseholdIDs is a set: membership changes go through AddHousehold /
//     RemoveHousehold on the repository, never whole-array replacement.
type User struct {
	ID                 UserID       `bson:"_id" json:"id"`
	Email              string       `bson:"email" json:"email"`
	EmailCI            string       `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	Name               string       `bson:"name" json:"name"`
	Avatar             string       `bson:"avatar,omitempty" json:"avatar,omitempty"`
	AuthProvider       AuthProvider `bson:"auth_provider" json:"authProvider"`
	CurrentHouseholdID *HouseholdID `bson:"current_household_id,omitempty" json:"currentHouseholdId,omitempty"`
	HouseholdIDs       []HouseholdID `bson:"household_ids" json:"householdIds"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// CreateUserDTO carries the fields a sign-up supplies.
type CreateUserDTO struct {
	Email        string       `json:"email" validate:"required,email"`
	Name         string       `json:"name" validate:"required,max=50"`
	AuthProvider AuthProvider `json:"authProvider" validate:"required"`
	Avatar       string       `json:"avatar,omitempty"`
}

// UpdateUserDTO carries profile edits. Nil fields are left untouched.
type UpdateUserDTO struct {
	Name               *string      `json:"name,omitempty" validate:"omitempty,max=50"`
	Avatar             *string      `json:"avatar,omitempty"`
	CurrentHouseholdID *HouseholdID `json:"currentHouseholdId,omitempty"`
}
