package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here so the handler
// error mapper stays a single switch.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

// ===== Place Errors =====
var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrNotPlaceOwner = errors.New("not authorized to modify this place")
)

// ===== Upload Errors =====
var (
	ErrUploadTooLarge  = errors.New("uploaded file exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// ===== Geocoding Errors =====
var (
	ErrGeocodeFailed  = errors.New("could not resolve address to coordinates")
	ErrAddressUnknown = errors.New("no results for address")
)
