package state

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// table is a copy-on-write collection indexed by id that remembers insertion order. Mutations
// return a new table so a failed write-back can simply keep the old one.
type table[T any] struct {
	order []uuid.UUID
	rows  map[uuid.UUID]T
}

func newTable[T any](items []T, id func(T) uuid.UUID) table[T] {
	t := table[T]{rows: make(map[uuid.UUID]T, len(items))}

	for _, it := range items {
		k := id(it)
		if _, dup := t.rows[k]; !dup {
			t.order = append(t.order, k)
		}

		t.rows[k] = it
	}

	return t
}

func (t table[T]) get(id uuid.UUID) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}

	return out
}

func (t table[T]) clone() table[T] {
	c := table[T]{
		order: slices.Clone(t.order),
		rows:  make(map[uuid.UUID]T, len(t.rows)+1),
	}

	maps.Copy(c.rows, t.rows)

	return c
}

// with inserts v or replaces the row with the same id in place.
func (t table[T]) with(id uuid.UUID, v T) table[T] {
	c := t.clone()
	if _, ok := c.rows[id]; !ok {
		c.order = append(c.order, id)
	}

	c.rows[id] = v

	return c
}

func (t table[T]) without(id uuid.UUID) table[T] {
	c := t.clone()
	delete(c.rows, id)

	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}

	return c
}
