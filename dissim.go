package ecotab

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/ecotab/align"
	"github.com/hupe1980/ecotab/internal/fileio"
	"github.com/hupe1980/ecotab/internal/tsv"
	"github.com/hupe1980/ecotab/predicate"
	"github.com/hupe1980/ecotab/table"
)

// LoadDissimilarity reads a precomputed sample-by-sample dissimilarity
// matrix and sample metadata, aligned to their ordered common sample set.
// A predicate supplied via WithPredicate is applied to the metadata before
// alignment.
func LoadDissimilarity(ctx context.Context, dmPath, metadataPath string, optFns ...Option) (*DissimilarityMatrix, error) {
	o := applyOptions(optFns)

	var (
		m        *table.Matrix
		metadata *table.Frame
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		m, err = loadDissimMatrix(gctx, o, dmPath)
		return err
	})
	g.Go(func() error {
		var err error
		metadata, err = loadMetadata(gctx, o, metadataPath)
		return err
	})
	if err := g.Wait(); err != nil {
		err = translateError(err)
		o.logger.LogDissimilarity(ctx, dmPath, 0, err)
		return nil, err
	}

	dm, err := alignDissimilarity(m, metadata, o.predicate)
	if err != nil {
		o.logger.LogDissimilarity(ctx, dmPath, 0, err)
		return nil, err
	}

	o.logger.LogDissimilarity(ctx, dmPath, len(dm.matrix.RowIDs), nil)
	return dm, nil
}

// LoadDissimilarityPair reads two dissimilarity matrices plus one metadata
// table and aligns all three to a single common sample order, for
// correlation-style comparisons between two dissimilarity structures. The
// returned matrices share one aligned metadata table.
func LoadDissimilarityPair(ctx context.Context, dmPath1, dmPath2, metadataPath string, optFns ...Option) (*DissimilarityMatrix, *DissimilarityMatrix, error) {
	o := applyOptions(optFns)

	var (
		m1, m2   *table.Matrix
		metadata *table.Frame
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		m1, err = loadDissimMatrix(gctx, o, dmPath1)
		return err
	})
	g.Go(func() error {
		var err error
		m2, err = loadDissimMatrix(gctx, o, dmPath2)
		return err
	})
	g.Go(func() error {
		var err error
		metadata, err = loadMetadata(gctx, o, metadataPath)
		return err
	})
	if err := g.Wait(); err != nil {
		err = translateError(err)
		o.logger.LogDissimilarity(ctx, dmPath1, 0, err)
		return nil, nil, err
	}

	ids := metadata.RowIDs
	if o.predicate != nil {
		selected, err := o.predicate.Select(metadata)
		if err != nil {
			return nil, nil, translateError(err)
		}
		ids = selected
	}

	// Common order follows the first matrix, per the alignment contract.
	order, err := align.Order(m1.RowIDs, m2.RowIDs, ids)
	if err != nil {
		return nil, nil, translateError(err)
	}

	md := metadata.SelectRows(align.Positions(align.Index(metadata.RowIDs), order))

	dm1, err := reindexDissimilarity(m1, md, order)
	if err != nil {
		return nil, nil, err
	}
	dm2, err := reindexDissimilarity(m2, md, order)
	if err != nil {
		return nil, nil, err
	}

	o.logger.LogDissimilarity(ctx, dmPath1, len(order), nil)
	return dm1, dm2, nil
}

func alignDissimilarity(m *table.Matrix, metadata *table.Frame, p *predicate.Predicate) (*DissimilarityMatrix, error) {
	ids, err := p.Select(metadata)
	if err != nil {
		return nil, translateError(err)
	}

	order, err := align.Order(m.RowIDs, ids)
	if err != nil {
		return nil, translateError(err)
	}

	md := metadata.SelectRows(align.Positions(align.Index(metadata.RowIDs), order))
	return reindexDissimilarity(m, md, order)
}

func reindexDissimilarity(m *table.Matrix, metadata *table.Frame, order []string) (*DissimilarityMatrix, error) {
	rowIdx := align.Positions(align.Index(m.RowIDs), order)
	colIdx := align.Positions(align.Index(m.ColIDs), order)
	return NewDissimilarityMatrix(m.SelectRows(rowIdx).SelectCols(colIdx), metadata)
}

func loadDissimMatrix(ctx context.Context, o options, name string) (*table.Matrix, error) {
	rc, err := fileio.Open(ctx, o.store, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return parseDissimText(rc, name, o.delimiter)
}

// parseDissimText parses a square delimited matrix. The header carries the
// column sample IDs, optionally preceded by a corner cell for the row-label
// column; each data row starts with its sample ID. Row labels must equal
// column labels in content and order.
func parseDissimText(r io.Reader, name, delim string) (*table.Matrix, error) {
	records, err := tsv.Records(r, delim)
	if err != nil {
		return nil, &ParseError{Path: name, cause: err}
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s has no data rows", ErrMalformedMatrix, name)
	}

	header := records[0]
	rows := records[1:]

	colIDs := header
	switch len(header) {
	case len(rows) + 1:
		colIDs = header[1:] // corner cell for the row-label column
	case len(rows):
	default:
		return nil, fmt.Errorf("%w: %s has %d columns for %d rows", ErrMalformedMatrix, name, len(header), len(rows))
	}

	rowIDs := make([]string, len(rows))
	data := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(colIDs)+1 {
			return nil, fmt.Errorf("%w: %s row %d has %d cells, want %d", ErrMalformedMatrix, name, i+1, len(row), len(colIDs)+1)
		}
		rowIDs[i] = row[0]
		values := make([]float64, len(colIDs))
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &ParseError{Path: name, Line: i + 2, Column: j + 2, cause: fmt.Errorf("malformed numeric cell %q", cell)}
			}
			values[j] = v
		}
		data[i] = values
	}

	for i, id := range rowIDs {
		if colIDs[i] != id {
			return nil, fmt.Errorf("%w: %s row %d labeled %q, column labeled %q", ErrMalformedMatrix, name, i+1, id, colIDs[i])
		}
	}

	m, err := table.NewMatrix(rowIDs, colIDs, data)
	if err != nil {
		return nil, &ParseError{Path: name, cause: err}
	}
	return m, nil
}
