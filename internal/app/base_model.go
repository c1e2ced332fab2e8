package app

import (
	"context"
	"fmt"

	"github.com/davesims/rhom-sti/internal/ports/primary"
	"github.com/davesims/rhom-sti/internal/ports/secondary"
)

// BaseModel implements primary.Model for a model that owns its storage.
// Every call goes straight to the property bag under the model's name.
type BaseModel struct {
	name string
	bag  secondary.PropertyBag
}

// NewBaseModel creates a BaseModel stored under name.
func NewBaseModel(name string, bag secondary.PropertyBag) *BaseModel {
	return &BaseModel{
		name: name,
		bag:  bag,
	}
}

// Name returns the storage name.
func (m *BaseModel) Name() string { return m.name }

// DeclaredName returns the storage name; base models are not renamed.
func (m *BaseModel) DeclaredName() string { return m.name }

// IsChild always returns false.
func (m *BaseModel) IsChild() bool { return false }

// Find retrieves objects from the property bag.
func (m *BaseModel) Find(ctx context.Context, scope string, opts *primary.FindOptions) ([]*primary.Object, error) {
	if scope == "" {
		scope = primary.ScopeAll
	}

	records, err := m.bag.Find(ctx, m.name, scope, toSecondaryOptions(opts))
	if err != nil {
		return nil, err
	}

	objects := make([]*primary.Object, len(records))
	for i, r := range records {
		objects[i] = recordToObject(r)
	}
	return objects, nil
}

// Create persists a new object.
func (m *BaseModel) Create(ctx context.Context, attrs primary.Attributes) (*primary.Object, error) {
	record, err := m.bag.Create(ctx, m.name, attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", m.name, err)
	}
	return recordToObject(record), nil
}

// New builds an unpersisted object.
func (m *BaseModel) New(attrs primary.Attributes) (*primary.Object, error) {
	return recordToObject(m.bag.New(m.name, attrs)), nil
}

// Save persists obj and copies the assigned ID back.
func (m *BaseModel) Save(ctx context.Context, obj *primary.Object) error {
	record := objectToRecord(obj)
	if record.Source == "" {
		record.Source = m.name
	}
	if err := m.bag.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save %s: %w", m.name, err)
	}

	obj.ID = record.Object
	obj.Source = record.Source
	obj.Persisted = record.Persisted
	return nil
}

// Helper methods

func toSecondaryOptions(opts *primary.FindOptions) *secondary.FindOptions {
	if opts == nil {
		return nil
	}
	return &secondary.FindOptions{
		Conditions: opts.Conditions,
		Order:      opts.Order,
		OrderDir:   opts.OrderDir,
		PerPage:    opts.PerPage,
		Offset:     opts.Offset,
		Select:     opts.Select,
	}
}

func recordToObject(r *secondary.ObjectRecord) *primary.Object {
	return &primary.Object{
		ID:         r.Object,
		Source:     r.Source,
		Attributes: r.Attributes,
		Persisted:  r.Persisted,
	}
}

func objectToRecord(o *primary.Object) *secondary.ObjectRecord {
	return &secondary.ObjectRecord{
		Source:     o.Source,
		Object:     o.ID,
		Attributes: o.Attributes,
		Persisted:  o.Persisted,
	}
}

// Ensure BaseModel implements the interface.
var _ primary.Model = (*BaseModel)(nil)
