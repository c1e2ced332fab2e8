// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// PropertyBag defines the secondary port for property-bag persistence.
// Objects are grouped by source name; every attribute is stored as text.
type PropertyBag interface {
	// Find retrieves objects of a source. scope is "all", "first" or an
	// object ID. opts may be nil.
	Find(ctx context.Context, source, scope string, opts *FindOptions) ([]*ObjectRecord, error)

	// Create persists a new object and returns it with its assigned ID.
	Create(ctx context.Context, source string, attrs map[string]any) (*ObjectRecord, error)

	// New builds an unpersisted object.
	New(source string, attrs map[string]any) *ObjectRecord

	// Save persists rec, assigning an ID if it has none.
	Save(ctx context.Context, rec *ObjectRecord) error
}

// FindOptions contains the options of a property-bag query.
// Conditions is a map[string]any (equality on each attribute) or a string
// predicate evaluated against the source's attributes.
type FindOptions struct {
	Conditions any
	Order      string
	OrderDir   string
	PerPage    int
	Offset     int
	Select     []string
}

// ObjectRecord represents a property-bag object as stored in persistence.
type ObjectRecord struct {
	Source     string
	Object     string
	Attributes map[string]string
	Persisted  bool
}
