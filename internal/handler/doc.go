// Package handler provides HTTP request handlers for the Places API.
//
// Handlers decode requests, run field validation, and delegate to the
// service layer. Errors flow through MapServiceError so every failure
// leaves the API as an RFC 9457 Problem Details document.
//
// The multipart endpoints (place creation, signup) store the uploaded
// image before calling the service, and reap the stored file again when
// the service call fails, so a rejected request never leaves an orphan
// on disk.
package handler
