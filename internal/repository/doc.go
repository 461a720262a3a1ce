// Package repository implements data access for users and places on top
// of the database package.
//
// Record ids are minted client-side (table:uuid-hex), which lets the
// paired ownership writes go into a single atomic batch without reading
// the created record back. Repositories return (nil, nil) for reads that
// find nothing; callers decide whether absence is an error.
//
// Only PlaceRepository.CreateWithOwner and DeleteWithOwner write both a
// place's creator pointer and the owner's back-reference list, and both
// do so inside one transaction.
package repository
