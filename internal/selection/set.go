package selection

import (
	"sort"

	"carta/internal/util"
)

// Set is a set of catalog item ids.
type Set map[int]struct{}

func NewSet(ids ...int) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// ParseSet decodes the comma-separated encoding, skipping malformed tokens.
func ParseSet(encoded string) Set {
	return NewSet(util.ParseIDs(encoded)...)
}

func (s Set) Has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Union returns a new set with the members of s and other.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Sorted lists the ids ascending.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// String is the persisted encoding: sorted, comma-separated.
func (s Set) String() string {
	return util.JoinIDs(s.Sorted())
}
