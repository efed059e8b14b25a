// Package predicate provides metadata-driven inclusion/exclusion predicates
// over sample attribute tables.
package predicate

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/ecotab/table"
)

// Mode selects how a value set is interpreted.
type Mode uint8

const (
	// ModeKeep retains only rows whose attribute value is in the value set.
	ModeKeep Mode = iota + 1
	// ModeExclude removes rows whose attribute value is in the value set.
	ModeExclude
)

// ErrAmbiguous is returned when both keep and exclude value sets are
// supplied for a single invocation.
var ErrAmbiguous = errors.New("both keep and exclude value sets supplied")

// UnknownAttributeError indicates that the predicate references an
// attribute absent from the metadata table.
type UnknownAttributeError struct {
	Attribute string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("attribute %q not present in metadata", e.Attribute)
}

// Predicate is a (attribute, mode, value set) triple evaluated against a
// metadata Frame. The zero value is invalid; use Keep, Exclude or New.
type Predicate struct {
	attribute string
	mode      Mode
	values    map[string]struct{}
}

// Keep builds a predicate retaining rows whose attribute value is one of
// values.
func Keep(attribute string, values ...string) *Predicate {
	return newPredicate(attribute, ModeKeep, values)
}

// Exclude builds a predicate removing rows whose attribute value is one of
// values.
func Exclude(attribute string, values ...string) *Predicate {
	return newPredicate(attribute, ModeExclude, values)
}

// New builds a predicate from optional keep and exclude value sets.
// Supplying both is ErrAmbiguous. Supplying neither returns a nil
// predicate, which selects every row (no-op filter).
func New(attribute string, keep, exclude []string) (*Predicate, error) {
	switch {
	case len(keep) > 0 && len(exclude) > 0:
		return nil, ErrAmbiguous
	case len(keep) > 0:
		return Keep(attribute, keep...), nil
	case len(exclude) > 0:
		return Exclude(attribute, exclude...), nil
	default:
		return nil, nil
	}
}

func newPredicate(attribute string, mode Mode, values []string) *Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return &Predicate{attribute: attribute, mode: mode, values: set}
}

// Attribute returns the attribute name the predicate evaluates.
func (p *Predicate) Attribute() string {
	if p == nil {
		return ""
	}
	return p.attribute
}

// Matches reports whether a single attribute value passes the predicate.
func (p *Predicate) Matches(value string) bool {
	if p == nil {
		return true
	}
	_, member := p.values[value]
	if p.mode == ModeExclude {
		return !member
	}
	return member
}

// Select evaluates the predicate against metadata and returns the retained
// sample IDs in metadata row order. A nil predicate retains every row.
// Referencing an attribute absent from metadata yields a
// *UnknownAttributeError.
func (p *Predicate) Select(metadata *table.Frame) ([]string, error) {
	if p == nil {
		ids := make([]string, len(metadata.RowIDs))
		copy(ids, metadata.RowIDs)
		return ids, nil
	}

	values, ok := metadata.Col(p.attribute)
	if !ok {
		return nil, &UnknownAttributeError{Attribute: p.attribute}
	}

	kept := roaring.New()
	for i, v := range values {
		if p.Matches(v) {
			kept.Add(uint32(i))
		}
	}

	ids := make([]string, 0, kept.GetCardinality())
	it := kept.Iterator()
	for it.HasNext() {
		ids = append(ids, metadata.RowIDs[it.Next()])
	}
	return ids, nil
}
