package domain

import (
	"fmt"
	"strings"
)

// AliasTable resolves user-supplied disease names to canonical names.
// It is built once and is safe for concurrent reads.
type AliasTable struct {
	index map[string]string
}

// NewAliasTable indexes the canonical names and the alias → canonical pairs.
// Every alias must point at a known canonical name, and no key may resolve
// to two different diseases.
func NewAliasTable(canonical []string, aliases map[string]string) (*AliasTable, error) {
	t := &AliasTable{index: make(map[string]string, len(canonical)+len(aliases))}

	for _, name := range canonical {
		if err := t.add(name, name); err != nil {
			return nil, err
		}
	}

	for alias, name := range aliases {
		if _, ok := t.index[normalizeDiseaseKey(name)]; !ok {
			return nil, fmt.Errorf("alias %q points at unknown disease %q", alias, name)
		}
		if err := t.add(alias, t.index[normalizeDiseaseKey(name)]); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *AliasTable) add(key, canonical string) error {
	k := normalizeDiseaseKey(key)
	if k == "" {
		return fmt.Errorf("empty disease key for %q", canonical)
	}
	if existing, ok := t.index[k]; ok && existing != canonical {
		return fmt.Errorf("disease key %q maps to both %q and %q", k, existing, canonical)
	}
	t.index[k] = canonical
	return nil
}

// Resolve returns the canonical disease name for name.
func (t *AliasTable) Resolve(name string) (string, bool) {
	c, ok := t.index[normalizeDiseaseKey(name)]
	return c, ok
}

// normalizeDiseaseKey lower-cases, trims, treats underscores as spaces and
// collapses repeated whitespace.
func normalizeDiseaseKey(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
