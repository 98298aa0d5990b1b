package migrate

import "fmt"

// IDMap is a bijective old-identifier to new-identifier mapping, scoped to a
// single migration run and discarded when the run ends. Both directions are
// kept so a duplicate on either side is caught instead of silently
// overwriting an earlier entry.
type IDMap struct {
	forward map[string]string
	reverse map[string]string
}

func NewIDMap() *IDMap {
	return &IDMap{
		forward: make(map[string]string),
		reverse: make(map[string]string),
	}
}

// Put records old -> new. It fails if either identifier is already mapped.
func (m *IDMap) Put(old, new string) error {
	if existing, ok := m.forward[old]; ok {
		return fmt.Errorf("id %q already mapped to %q", old, existing)
	}
	if existing, ok := m.reverse[new]; ok {
		return fmt.Errorf("id %q already assigned to %q", new, existing)
	}
	m.forward[old] = new
	m.reverse[new] = old
	return nil
}

// Get returns the new identifier for old, if mapped.
func (m *IDMap) Get(old string) (string, bool) {
	id, ok := m.forward[old]
	return id, ok
}

func (m *IDMap) Len() int {
	return len(m.forward)
}
