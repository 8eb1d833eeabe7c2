package links

// TagMap is a mapping keyed by raw tag string that iterates in insertion
// order. The zero value is ready to use.
type TagMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewTagMap returns an empty map with room for size entries.
func NewTagMap[V any](size int) *TagMap[V] {
	return &TagMap[V]{
		keys:   make([]string, 0, size),
		values: make(map[string]V, size),
	}
}

// Set stores value under raw. Replacing a key keeps its original position.
func (m *TagMap[V]) Set(raw string, value V) *TagMap[V] {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[raw]; !ok {
		m.keys = append(m.keys, raw)
	}
	m.values[raw] = value
	return m
}

// Get returns the value stored under raw.
func (m *TagMap[V]) Get(raw string) (V, bool) {
	if m == nil || m.values == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[raw]
	return v, ok
}

// Has reports whether raw is present.
func (m *TagMap[V]) Has(raw string) bool {
	_, ok := m.Get(raw)
	return ok
}

// Len returns the number of entries.
func (m *TagMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the raw tags in insertion order.
func (m *TagMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Each calls fn for every entry in insertion order.
func (m *TagMap[V]) Each(fn func(raw string, value V)) {
	if m == nil {
		return
	}
	for _, raw := range m.keys {
		fn(raw, m.values[raw])
	}
}

// Map returns an unordered copy.
func (m *TagMap[V]) Map() map[string]V {
	out := make(map[string]V, m.Len())
	m.Each(func(raw string, value V) {
		out[raw] = value
	})
	return out
}
