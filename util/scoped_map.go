package util

import "iter"

// ScopedMap is a map where each key may be bound several times, and where
// bindings are discarded by leaving the scope they were inserted in.
// Lookups see the most recent binding first.
//
// The zero value is not usable, use NewScopedMap.
type ScopedMap[K comparable, V any] struct {
	bindings map[K][]V
	// inserted holds the keys inserted in each open scope, innermost last
	inserted Stack[[]K]
}

func NewScopedMap[K comparable, V any]() *ScopedMap[K, V] {
	return &ScopedMap[K, V]{bindings: make(map[K][]V)}
}

// EnterScope opens a scope. Bindings inserted from now on are removed by the matching ExitScope.
func (m *ScopedMap[K, V]) EnterScope() {
	m.inserted.Push(nil)
}

// ExitScope removes every binding inserted since the matching EnterScope.
// Bindings inserted outside any scope are never removed.
func (m *ScopedMap[K, V]) ExitScope() {
	keys, ok := m.inserted.Pop()
	if !ok {
		return
	}
	for _, key := range Reversed(keys) {
		values := m.bindings[key]
		if len(values) <= 1 {
			delete(m.bindings, key)
			continue
		}
		m.bindings[key] = values[:len(values)-1]
	}
}

// Insert binds value to key, shadowing any previous binding of key.
func (m *ScopedMap[K, V]) Insert(key K, value V) {
	m.bindings[key] = append(m.bindings[key], value)
	if scope := m.inserted.Top(); scope != nil {
		*scope = append(*scope, key)
	}
}

// Get returns the most recent binding of key.
func (m *ScopedMap[K, V]) Get(key K) (ret V, ok bool) {
	values := m.bindings[key]
	if len(values) == 0 {
		return ret, false
	}
	return values[len(values)-1], true
}

// GetAll yields every visible binding of key, most recent first.
func (m *ScopedMap[K, V]) GetAll(key K) iter.Seq[V] {
	return Reverse(m.bindings[key])
}
