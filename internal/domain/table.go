package domain

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Table is a keyed database that iterates and serializes in first-insertion
// order, so two builds over identical inputs produce identical bytes.
type Table[V any] struct {
	m *orderedmap.OrderedMap[string, V]
}

// NewTable returns an empty Table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{m: orderedmap.New[string, V]()}
}

// Set stores v under key. Replacing an existing key keeps its position.
func (t *Table[V]) Set(key string, v V) {
	t.m.Set(key, v)
}

// Add stores v only if key is absent and reports whether it did.
func (t *Table[V]) Add(key string, v V) bool {
	if _, ok := t.m.Get(key); ok {
		return false
	}
	t.m.Set(key, v)
	return true
}

// Get returns the value stored under key.
func (t *Table[V]) Get(key string) (V, bool) {
	return t.m.Get(key)
}

// Len returns the number of entries.
func (t *Table[V]) Len() int {
	return t.m.Len()
}

// Keys returns the keys in insertion order.
func (t *Table[V]) Keys() []string {
	keys := make([]string, 0, t.m.Len())
	for p := t.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// All iterates entries in insertion order.
func (t *Table[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for p := t.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

func (t *Table[V]) MarshalJSON() ([]byte, error) {
	return t.m.MarshalJSON()
}

func (t *Table[V]) UnmarshalJSON(data []byte) error {
	if t.m == nil {
		t.m = orderedmap.New[string, V]()
	}
	return t.m.UnmarshalJSON(data)
}
