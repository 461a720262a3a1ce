// Package middleware provides HTTP middleware for the Places API.
//
// # Available Middleware
//
//   - Auth: bearer credential validation ahead of every mutation route
//   - RequestID: unique request identifier propagation
//   - Logger: structured request logging
//   - Recovery: panic recovery with a problem-details 500
//   - CORS: origin checks and preflight handling
//   - Compress: gzip response compression
//
// # Authentication
//
// Auth validates the Authorization header before any route logic runs.
// Every failure responds with the same 403 problem document; OPTIONS
// requests pass through for CORS preflight. After authentication,
// handlers read the caller from context:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): authenticated user ID
//   - GetUserEmail(ctx): authenticated user email
//   - GetRequestID(ctx): unique request identifier
package middleware
