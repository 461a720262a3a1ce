// Package model defines domain entities and data structures for the
// Places API.
//
// Core entities:
//
//   - User: account with authentication credentials; its Places field is an
//     ordered back-reference to the places it owns
//   - Place: point of interest with geocoded location, an uploaded image,
//     and an authoritative creator pointer to its owning user
//
// The invariant linking them: a place's creator equals a user's id exactly
// when the place's id appears in that user's back-references. Both sides
// are written together inside one store transaction or not at all.
//
// Request types carry Validate methods returning field-level errors, and
// errors.go defines the RFC 9457 ProblemDetails envelope used for every
// error response.
package model
