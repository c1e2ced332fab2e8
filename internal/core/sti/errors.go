package sti

import "errors"

// ErrUnsupportedConditions is returned when find conditions are neither a
// field mapping nor a textual predicate.
var ErrUnsupportedConditions = errors.New("unsupported conditions")

// ErrMissingDiscriminator is returned when a scoped operation runs for a model
// that never went through child registration.
var ErrMissingDiscriminator = errors.New("missing discriminator")

// ErrMultiLevelInheritance is returned when a child model is declared as the
// parent of another model.
var ErrMultiLevelInheritance = errors.New("multi-level inheritance is not supported")

// ErrModelNotFound is returned when a model name is not registered.
var ErrModelNotFound = errors.New("model not found")

// ErrModelExists is returned when a model name is registered twice.
var ErrModelExists = errors.New("model already defined")
