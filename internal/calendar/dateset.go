package calendar

import (
	"encoding/json"
	"slices"
)

// DateSet is a sorted set of dates. Methods never modify the receiver; they return a new set,
// so a DateSet taken from a snapshot can be handed around freely.
type DateSet []Date

// NewDateSet builds a set from dates in any order, dropping duplicates.
func NewDateSet(dates ...Date) DateSet {
	if len(dates) == 0 {
		return nil
	}

	s := slices.Clone(dates)
	slices.SortFunc(s, Date.Compare)

	return DateSet(slices.Compact(s))
}

func (s DateSet) search(d Date) (int, bool) {
	return slices.BinarySearchFunc(s, d, Date.Compare)
}

// Has reports whether d is in the set.
func (s DateSet) Has(d Date) bool {
	_, ok := s.search(d)
	return ok
}

// With returns the set with d added.
func (s DateSet) With(d Date) DateSet {
	i, ok := s.search(d)
	if ok {
		return slices.Clone(s)
	}

	return slices.Insert(slices.Clone(s), i, d)
}

// Without returns the set with d removed. Removing the last element yields nil.
func (s DateSet) Without(d Date) DateSet {
	i, ok := s.search(d)
	if !ok {
		return slices.Clone(s)
	}

	out := slices.Delete(slices.Clone(s), i, i+1)
	if len(out) == 0 {
		return nil
	}

	return out
}

// Toggle adds d when absent and removes it when present.
func (s DateSet) Toggle(d Date) DateSet {
	if s.Has(d) {
		return s.Without(d)
	}

	return s.With(d)
}

// Between returns the members within [start, end].
func (s DateSet) Between(start, end Date) DateSet {
	var out DateSet

	for _, d := range s {
		if d.Between(start, end) {
			out = append(out, d)
		}
	}

	return out
}

// UnmarshalJSON accepts an array of ISO dates in any order.
func (s *DateSet) UnmarshalJSON(b []byte) error {
	var dates []Date
	if err := json.Unmarshal(b, &dates); err != nil {
		return err
	}

	*s = NewDateSet(dates...)

	return nil
}
