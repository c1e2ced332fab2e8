package sti

import "fmt"

// Conditions is the filter handed to find. It is either Structured or
// Textual; no other implementations exist.
type Conditions interface {
	isConditions()

	// Value returns the shape the storage primitive accepts: map[string]any
	// for Structured, string for Textual.
	Value() any
}

// Structured conditions map field names to expected values.
type Structured map[string]any

func (Structured) isConditions() {}

// Value returns the conditions as a plain map.
func (c Structured) Value() any { return map[string]any(c) }

// Textual conditions are a raw predicate expression.
type Textual string

func (Textual) isConditions() {}

// Value returns the predicate text.
func (c Textual) Value() any { return string(c) }

// ParseConditions lifts a dynamically typed conditions value into the union.
func ParseConditions(v any) (Conditions, error) {
	switch c := v.(type) {
	case Structured:
		return c, nil
	case Textual:
		return c, nil
	case map[string]any:
		return Structured(c), nil
	case map[string]string:
		s := make(Structured, len(c))
		for k, val := range c {
			s[k] = val
		}
		return s, nil
	case string:
		return Textual(c), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedConditions, v)
	}
}

// TextualFragment is the literal text appended to textual conditions. It has
// no leading space and the value is not escaped; stored queries depend on
// this exact form.
func TextualFragment(discriminator string) string {
	return "and " + DiscriminatorField + "='" + discriminator + "'"
}

// MergeDiscriminator conjoins type = discriminator with c.
//
// Structured conditions are updated in place and the discriminator replaces
// any caller supplied type. Textual conditions get TextualFragment appended
// verbatim.
func MergeDiscriminator(c Conditions, discriminator string) (Conditions, error) {
	switch c := c.(type) {
	case Structured:
		if c == nil {
			c = Structured{}
		}
		c[DiscriminatorField] = discriminator
		return c, nil
	case Textual:
		return c + Textual(TextualFragment(discriminator)), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedConditions, c)
	}
}
