// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI drives model operations.
package primary

import "context"

// Scope selectors accepted by Model.Find. Any other value is an object ID.
const (
	ScopeAll   = "all"
	ScopeFirst = "first"
)

// Model is a storage-mapped model handle. Base models talk to storage
// directly; child models scope every call to their discriminator.
type Model interface {
	// Name returns the storage name used to route to physical storage.
	// For child models this is the base model's name.
	Name() string

	// DeclaredName returns the name the model was defined with.
	DeclaredName() string

	// IsChild reports whether the model shares another model's storage.
	IsChild() bool

	// Find returns objects matching scope and opts. opts may be nil.
	Find(ctx context.Context, scope string, opts *FindOptions) ([]*Object, error)

	// Create persists a new object built from attrs.
	Create(ctx context.Context, attrs Attributes) (*Object, error)

	// New builds an unpersisted object from attrs.
	New(attrs Attributes) (*Object, error)

	// Save persists an object returned by New.
	Save(ctx context.Context, obj *Object) error
}

// ModelRegistry defines and resolves models.
type ModelRegistry interface {
	// DefineBase defines a model that owns its storage.
	DefineBase(name string) (Model, error)

	// DefineChild defines a model that shares parent's storage.
	DefineChild(name, parent string) (Model, error)

	// Lookup returns a model by its declared name.
	Lookup(name string) (Model, error)

	// Discriminator returns the discriminator of a child model.
	Discriminator(name string) (string, bool)

	// ListModels returns every defined model in definition order.
	ListModels() []*ModelInfo
}

// FindOptions carries the options structure of a find call.
// Conditions is either a map[string]any or a textual predicate.
type FindOptions struct {
	Conditions any
	Order      string
	OrderDir   string // "ASC" or "DESC"
	PerPage    int
	Offset     int
	Select     []string
}

// Attributes is the payload for Create and New.
type Attributes map[string]any

// Object represents a stored (or not yet stored) property bag at the port boundary.
type Object struct {
	ID         string
	Source     string
	Attributes map[string]string
	Persisted  bool
}

// ModelInfo describes a defined model.
type ModelInfo struct {
	Name          string
	StorageName   string
	Parent        string
	Discriminator string
}
