package sti

// ScopeConditions returns the conditions value a child model passes to the
// storage primitive in place of raw.
//
// A nil raw value becomes {type: discriminator}. Caller maps, of either
// map[string]any or map[string]string, are updated in place. When strict is
// false, raw values of an unsupported shape are returned unchanged with no
// error.
func ScopeConditions(raw any, discriminator string, strict bool) (any, error) {
	if raw == nil {
		return Structured{DiscriminatorField: discriminator}.Value(), nil
	}
	if m, ok := raw.(map[string]string); ok && m != nil {
		m[DiscriminatorField] = discriminator
	}

	c, err := ParseConditions(raw)
	if err != nil {
		if strict {
			return nil, err
		}
		return raw, nil
	}

	merged, err := MergeDiscriminator(c, discriminator)
	if err != nil {
		return nil, err
	}
	return merged.Value(), nil
}

// ScopeAttributes sets the discriminator on a create/new payload, replacing
// any caller supplied type. attrs is modified in place; a nil map is
// replaced by a new one.
func ScopeAttributes(attrs map[string]any, discriminator string) map[string]any {
	if attrs == nil {
		attrs = make(map[string]any, 1)
	}
	attrs[DiscriminatorField] = discriminator
	return attrs
}
