package domain

import "encoding/json"

type Role string

const (
	RoleStudent   Role = "student"
	RoleRegular   Role = "regular"
	RoleMessOwner Role = "mess_owner"
)

// Status tracks onboarding progress. It only ever moves forward;
// going back requires a full logout and re-registration.
type Status string

const (
	StatusUnverified           Status = "unverified"
	StatusRegistrationComplete Status = "registration_complete"
	StatusProfileComplete      Status = "profile_complete"
)

// Rank returns the position of the status in the onboarding order.
// Unknown values rank below unverified.
func (s Status) Rank() int {
	switch s {
	case StatusUnverified:
		return 1
	case StatusRegistrationComplete:
		return 2
	case StatusProfileComplete:
		return 3
	}
	return 0
}

// AtLeast reports whether s has progressed to other or beyond.
func (s Status) AtLeast(other Status) bool {
	return s.Rank() >= other.Rank()
}

// Identity is the authenticated principal as returned by the backend
// profile endpoint. The role-specific profile payloads are kept opaque;
// their shape is owned by the backend and varies with Role.
type Identity struct {
	ID                    int64           `json:"id"`
	Username              string          `json:"username"`
	Email                 string          `json:"email"`
	Phone                 string          `json:"phone"`
	Role                  Role            `json:"user_type"`
	IsTiffinUser          bool            `json:"is_tiffin_user"`
	IsMessUser            bool            `json:"is_mess_user"`
	Status                Status          `json:"status"`
	PreferredDeliveryTime string          `json:"preferred_delivery_time,omitempty"`
	StudentProfile        json.RawMessage `json:"student_profile,omitempty"`
	RegularProfile        json.RawMessage `json:"regular_profile,omitempty"`
	MessOwnerProfile      json.RawMessage `json:"mess_owner_profile,omitempty"`
}

// TokenPair is the credential pair issued by the login endpoint and the
// only durable client-side state.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
