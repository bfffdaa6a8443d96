package gomap

// pairValue marks Entry so the classifier recognizes a slice of entries as
// an ordered mapping.
type pairValue interface {
	pairEntry()
}

// Entry is one (key, value) member of an ordered mapping.
type Entry[V any] struct {
	Key   string
	Value V
}

func (Entry[V]) pairEntry() {}

// Members is an ordered mapping: it serializes to an Object whose member
// order equals the slice order, duplicate keys included, and
// deserialization preserves order and duplicates. Go maps, by contrast,
// serialize with sorted keys and collapse duplicates on read.
type Members[V any] []Entry[V]

// Get returns the value of the first entry with the given key.
func (m Members[V]) Get(key string) (V, bool) {
	for i := range m {
		if m[i].Key == key {
			return m[i].Value, true
		}
	}
	var zero V
	return zero, false
}
