package gophys

import "fmt"

// TupleDictionary stores values keyed by an unordered pair of ids: the
// key for (a,b) is the same as for (b,a). Used by the contact material
// table (Narrowphase.ContactMaterialTable).
type TupleDictionary[T any] struct {
	entries map[string]T
}

func NewTupleDictionary[T any]() *TupleDictionary[T] {
	return &TupleDictionary[T]{entries: make(map[string]T)}
}

func tupleKey(i, j uint64) string {
	if i > j {
		i, j = j, i
	}
	return fmt.Sprintf("%d_%d", i, j)
}

func (d *TupleDictionary[T]) Get(i, j uint64) (T, bool) {
	v, ok := d.entries[tupleKey(i, j)]
	return v, ok
}

func (d *TupleDictionary[T]) Set(i, j uint64, value T) {
	d.entries[tupleKey(i, j)] = value
}

func (d *TupleDictionary[T]) Delete(i, j uint64) {
	delete(d.entries, tupleKey(i, j))
}

func (d *TupleDictionary[T]) Reset() {
	d.entries = make(map[string]T)
}

func (d *TupleDictionary[T]) Len() int { return len(d.entries) }
