// Package database provides the persistence layer for the Places API.
//
// The Database interface abstracts SurrealDB operations so repositories
// stay decoupled from the driver:
//
//   - Query: multiple results (SELECT returning lists)
//   - QueryOne: single result (SELECT by id)
//   - Execute: mutations with no return value
//   - BeginTx: transaction support
//
// # Transaction Support
//
// IMPORTANT: transactions here are BATCH-BASED, not connection-level.
// Statements accumulate in memory and are wrapped in BEGIN TRANSACTION /
// COMMIT TRANSACTION at commit time, executing atomically as one block.
// This means:
//   - No isolation between Add() calls until Commit()
//   - Rollback() simply discards the pending batch (nothing to undo)
//   - All statements succeed or fail together at commit time
//
// AtomicBatch is the form the repositories use for the paired
// place/back-reference writes; it is the only mechanism allowed to touch
// both sides of the ownership relationship.
//
// # Error Handling
//
// Standard errors cover the common failure cases (ErrNotFound,
// ErrDuplicate, ErrConnection, ErrQuery). Check them with errors.Is():
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database
