// Package align computes ordered intersections of identifier collections.
//
// Alignment is the operation every loader and filter relies on: given the
// sample IDs of two or more structures, it produces the common subset in a
// deterministic order so that all structures can be re-indexed consistently.
package align

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrEmpty is returned when the supplied collections have no identifier
// in common.
var ErrEmpty = errors.New("no common identifiers")

// DuplicateIDError indicates that a single collection contains the same
// identifier more than once, which makes positional alignment ambiguous.
type DuplicateIDError struct {
	ID         string
	Collection int // zero-based position of the offending collection
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate identifier %q in collection %d", e.ID, e.Collection)
}

// Order computes the intersection of first with all other collections and
// returns it ordered by first appearance in first. The order is stable, not
// sorted: it is the subsequence of first restricted to the intersection.
//
// Any collection containing a duplicate identifier yields a
// *DuplicateIDError. An empty intersection yields ErrEmpty.
func Order(first []string, others ...[]string) ([]string, error) {
	idx := make(map[string]uint32, len(first))
	for i, id := range first {
		if _, dup := idx[id]; dup {
			return nil, &DuplicateIDError{ID: id, Collection: 0}
		}
		idx[id] = uint32(i)
	}

	// Positions of first that survive every other collection. Roaring
	// iterates in ascending position order, which is exactly the
	// first-appearance order required.
	keep := roaring.New()
	keep.AddRange(0, uint64(len(first)))

	for k, other := range others {
		if id, dup := firstDuplicate(other); dup {
			return nil, &DuplicateIDError{ID: id, Collection: k + 1}
		}
		present := roaring.New()
		for _, id := range other {
			if pos, ok := idx[id]; ok {
				present.Add(pos)
			}
		}
		keep.And(present)
	}

	if keep.IsEmpty() {
		return nil, ErrEmpty
	}

	order := make([]string, 0, keep.GetCardinality())
	it := keep.Iterator()
	for it.HasNext() {
		order = append(order, first[it.Next()])
	}
	return order, nil
}

// Unique reports a *DuplicateIDError if ids contains any identifier twice.
func Unique(ids []string) error {
	if id, dup := firstDuplicate(ids); dup {
		return &DuplicateIDError{ID: id}
	}
	return nil
}

func firstDuplicate(ids []string) (string, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}

// Index returns a position lookup for ids. It assumes ids are unique;
// callers validate with Unique or Order first.
func Index(ids []string) map[string]int {
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	return idx
}

// Positions maps each id to its position using idx. Every id must be
// present in idx; alignment guarantees this for its own outputs.
func Positions(idx map[string]int, ids []string) []int {
	pos := make([]int, len(ids))
	for i, id := range ids {
		pos[i] = idx[id]
	}
	return pos
}
