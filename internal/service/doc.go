// Package service implements the business logic layer for the Places API.
//
// PlaceService is the sole authority over the ownership invariant: a
// place's creator pointer and the owning user's back-reference list only
// change through its Create, Update, and Delete operations, which hand
// the paired writes to the repository as atomic batches.
//
// Services define their own repository interfaces, so they can be unit
// tested with in-memory fakes and stay decoupled from SurrealDB.
//
// Errors are returned as sentinel values from errors.go; the handler
// layer maps them to problem-details responses in one place.
package service
