package app

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/davesims/rhom-sti/internal/core/sti"
	"github.com/davesims/rhom-sti/internal/ports/primary"
	"github.com/davesims/rhom-sti/internal/ports/secondary"
)

// RegistryOptions controls how child models are registered and scoped.
type RegistryOptions struct {
	// LegacyConditions passes find conditions of an unsupported shape
	// through without a discriminator instead of failing.
	LegacyConditions bool

	// AllowNestedChildren permits declaring a child of a child. The nested
	// model is scoped by its own declared name against the base storage.
	AllowNestedChildren bool

	// Logger receives registration events. Defaults to log.Default().
	Logger *log.Logger
}

// modelEntry tracks a defined model and the base model owning its storage.
type modelEntry struct {
	model  primary.Model
	parent string
	base   primary.Model
}

// ModelRegistryImpl implements the ModelRegistry interface.
type ModelRegistryImpl struct {
	mu             sync.RWMutex
	bag            secondary.PropertyBag
	discriminators *sti.Registry
	entries        map[string]*modelEntry
	order          []string
	opts           RegistryOptions
}

// NewModelRegistry creates a new ModelRegistry storing objects in bag.
func NewModelRegistry(bag secondary.PropertyBag, opts RegistryOptions) *ModelRegistryImpl {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &ModelRegistryImpl{
		bag:            bag,
		discriminators: sti.NewRegistry(),
		entries:        make(map[string]*modelEntry),
		opts:           opts,
	}
}

// DefineBase defines a model that owns its storage.
func (r *ModelRegistryImpl) DefineBase(name string) (primary.Model, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.entries[name]
	guard := sti.CanRegisterBase(sti.RegisterBaseContext{Name: name, Exists: exists})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	model := NewBaseModel(name, r.bag)
	r.add(name, &modelEntry{model: model, base: model})
	r.opts.Logger.Printf("defined base model %s", name)
	return model, nil
}

// DefineChild defines name as a child of parent. The declared name becomes
// the discriminator before the child's storage name is resolved to the base.
func (r *ModelRegistryImpl) DefineChild(name, parent string) (primary.Model, error) {
	discriminator := name

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.entries[name]
	parentEntry, parentExists := r.entries[parent]
	guard := sti.CanRegisterChild(sti.RegisterChildContext{
		ChildName:     name,
		ChildExists:   exists,
		ParentName:    parent,
		ParentExists:  parentExists,
		ParentIsChild: parentExists && parentEntry.model.IsChild(),
		AllowNested:   r.opts.AllowNestedChildren,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	model := NewScopedModel(parentEntry.base, name, r.discriminators, !r.opts.LegacyConditions)
	r.discriminators.Set(name, discriminator)
	r.add(name, &modelEntry{model: model, parent: parent, base: parentEntry.base})

	r.opts.Logger.Printf("defined child model %s (storage %s, discriminator %q, %d child models)",
		name, model.Name(), discriminator, r.discriminators.Len())
	return model, nil
}

// Lookup returns a model by its declared name.
func (r *ModelRegistryImpl) Lookup(name string) (primary.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sti.ErrModelNotFound, name)
	}
	return entry.model, nil
}

// Discriminator returns the discriminator of a child model.
func (r *ModelRegistryImpl) Discriminator(name string) (string, bool) {
	return r.discriminators.Get(name)
}

// ListModels returns every defined model in definition order.
func (r *ModelRegistryImpl) ListModels() []*primary.ModelInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]*primary.ModelInfo, 0, len(r.order))
	for _, name := range r.order {
		entry := r.entries[name]
		discriminator, _ := r.discriminators.Get(name)
		infos = append(infos, &primary.ModelInfo{
			Name:          name,
			StorageName:   entry.model.Name(),
			Parent:        entry.parent,
			Discriminator: discriminator,
		})
	}
	return infos
}

func (r *ModelRegistryImpl) add(name string, entry *modelEntry) {
	r.entries[name] = entry
	r.order = append(r.order, name)
}

// DiscardLogger returns a logger that drops every message.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// Ensure ModelRegistryImpl implements the interface.
var _ primary.ModelRegistry = (*ModelRegistryImpl)(nil)
