package model

import "time"

// User represents a user account owning zero or more places
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Hash      *string   `json:"-"` // Never expose password hash
	ImagePath string    `json:"image,omitempty"`
	Places    []string  `json:"places"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// OwnsPlace reports whether the user's back-references include the place
func (u *User) OwnsPlace(placeID string) bool {
	for _, id := range u.Places {
		if id == placeID {
			return true
		}
	}
	return false
}

// SignupRequest represents a signup request (multipart form fields)
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}
