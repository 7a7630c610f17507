package authapi

import (
	"time"

	"jobdeck/cmd/identity"
)

type signupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	ContactNumber   string `json:"contactNumber"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public projection of a user.
// Credential material (the password hash) is deliberately absent: nothing in
// this package ever serializes identity.UserAuth.
type userResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName,omitempty"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contactNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

type loginData struct {
	User      userResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func toUserResponse(u identity.User) userResponse {
	return userResponse{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		ContactNumber: u.ContactNumber,
		CreatedAt:     u.CreatedAt,
	}
}
