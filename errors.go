package ecotab

import (
	"errors"
	"fmt"

	"github.com/hupe1980/ecotab/align"
	"github.com/hupe1980/ecotab/predicate"
)

var (
	// ErrUnsupportedFormat is returned when an input file's extension maps
	// to no known encoding.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrMalformedMatrix is returned when a dissimilarity matrix is not
	// square or its row labels differ from its column labels.
	ErrMalformedMatrix = errors.New("malformed dissimilarity matrix")

	// ErrAmbiguousFilter is returned when both keep and exclude value sets
	// are supplied for one filter invocation.
	ErrAmbiguousFilter = errors.New("ambiguous filter")

	// ErrUnknownAttribute is returned when a predicate references an
	// attribute absent from the metadata table.
	ErrUnknownAttribute = errors.New("unknown metadata attribute")

	// ErrEmptyAlignment is returned when structures share no sample IDs.
	ErrEmptyAlignment = errors.New("empty alignment")

	// ErrDuplicateIdentifier is returned when a single structure contains
	// the same identifier more than once.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)

// ParseError reports an unreadable or malformed cell in an input file.
//
// Line and Column are 1-based positions in the raw file, zero when the
// failure concerns the file as a whole (e.g. a malformed container).
// The underlying error can be accessed via errors.Unwrap.
type ParseError struct {
	Path   string
	Line   int
	Column int
	cause  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d, column %d: %v", e.Path, e.Line, e.Column, e.cause)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }

// translateError maps package-local errors onto the public taxonomy.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, align.ErrEmpty) {
		return fmt.Errorf("%w: %w", ErrEmptyAlignment, err)
	}
	var dup *align.DuplicateIDError
	if errors.As(err, &dup) {
		return fmt.Errorf("%w: %w", ErrDuplicateIdentifier, err)
	}

	if errors.Is(err, predicate.ErrAmbiguous) {
		return fmt.Errorf("%w: %w", ErrAmbiguousFilter, err)
	}
	var ua *predicate.UnknownAttributeError
	if errors.As(err, &ua) {
		return fmt.Errorf("%w: %w", ErrUnknownAttribute, err)
	}

	return err
}
