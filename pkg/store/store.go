// Package store persists roadmap documents and the college/degree listing.
//
// Two backends are provided: MongoDB for deployments (each course type is
// its own collection, the listing lives in "colleges_degrees") and a
// JSON-file directory for local development and tests, with one file per
// collection. Both implement the same update semantics: an edit addresses
// the first course matching the title in document order, mirroring the
// traversal the web client assumes.
package store

import (
	"context"

	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

// ListingsCollection holds the college/degree catalog.
const ListingsCollection = "colleges_degrees"

// Store is the persistence interface served by the HTTP API.
type Store interface {
	// Roadmaps returns all documents of a roadmap collection in insertion
	// order. The first document is the department record.
	Roadmaps(ctx context.Context, collection string) ([]roadmap.Roadmap, error)

	// UpdateCourse sets one field of the first course with the given title
	// inside the collection's documents.
	UpdateCourse(ctx context.Context, collection, courseTitle, field, value string) error

	// InsertRoadmaps appends documents to a collection, creating it if needed.
	InsertRoadmaps(ctx context.Context, collection string, docs []roadmap.Roadmap) error

	// Listings returns the college/degree catalog.
	Listings(ctx context.Context) ([]roadmap.Listing, error)

	// ReplaceListings replaces the catalog wholesale (seed import).
	ReplaceListings(ctx context.Context, listings []roadmap.Listing) error

	// Collections lists the known roadmap collections.
	Collections(ctx context.Context) ([]string, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
