package model

import (
	"strings"
	"time"
)

const (
	// Validation constraints for place fields
	MinDescriptionLength = 5
	MaxTitleLength       = 120
	MaxDescriptionLength = 2000
)

// Location is a latitude/longitude pair derived from a place's address
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place represents a point of interest owned by exactly one user.
//
// CreatorID is the authoritative ownership pointer; the owning user's
// Places sequence is a back-reference kept in lockstep with it. Only the
// place service may change either side.
type Place struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Location    Location  `json:"location"`
	ImagePath   string    `json:"image,omitempty"`
	CreatorID   string    `json:"creator"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// CreatePlaceRequest represents the fields of a place creation request.
// The image arrives separately as a multipart upload.
type CreatePlaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// Validate checks if the create request is valid
func (r *CreatePlaceRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > MaxTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title exceeds maximum length"})
	}

	if len(strings.TrimSpace(r.Description)) < MinDescriptionLength {
		errors = append(errors, FieldError{Field: "description", Message: "description must be at least 5 characters"})
	} else if len(r.Description) > MaxDescriptionLength {
		errors = append(errors, FieldError{Field: "description", Message: "description exceeds maximum length"})
	}

	if strings.TrimSpace(r.Address) == "" {
		errors = append(errors, FieldError{Field: "address", Message: "address is required"})
	}

	return errors
}

// UpdatePlaceRequest represents a place update. Only title and description
// may change; the ownership pointer is never touched by updates.
type UpdatePlaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks if the update request is valid
func (r *UpdatePlaceRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > MaxTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title exceeds maximum length"})
	}

	if len(strings.TrimSpace(r.Description)) < MinDescriptionLength {
		errors = append(errors, FieldError{Field: "description", Message: "description must be at least 5 characters"})
	} else if len(r.Description) > MaxDescriptionLength {
		errors = append(errors, FieldError{Field: "description", Message: "description exceeds maximum length"})
	}

	return errors
}
