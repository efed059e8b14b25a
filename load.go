package ecotab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/ecotab/align"
	"github.com/hupe1980/ecotab/biom"
	"github.com/hupe1980/ecotab/codec"
	"github.com/hupe1980/ecotab/internal/fileio"
	"github.com/hupe1980/ecotab/internal/tsv"
	"github.com/hupe1980/ecotab/table"
	"github.com/hupe1980/ecotab/taxonomy"
)

// taxonomyColumn is the literal header name that marks a trailing taxonomy
// column in a delimited table.
const taxonomyColumn = "taxonomy"

type encoding uint8

const (
	encodingUnknown encoding = iota
	encodingText
	encodingBIOM
)

// detectEncoding resolves the input encoding once at load entry, from the
// file extension after stripping any compression suffix.
func detectEncoding(name string) encoding {
	switch strings.ToLower(path.Ext(fileio.Logical(name))) {
	case ".biom":
		return encodingBIOM
	case ".txt", ".tsv", ".tab":
		return encodingText
	default:
		return encodingUnknown
	}
}

// Load reads a feature abundance table and its sample metadata into a
// Dataset whose samples are the ordered intersection of both inputs.
//
// The table encoding is chosen by extension: .biom for the structured
// container, .txt/.tsv/.tab for delimited text. A predicate supplied via
// WithPredicate is applied to the metadata before alignment.
func Load(ctx context.Context, tablePath, metadataPath string, optFns ...Option) (*Dataset, error) {
	o := applyOptions(optFns)

	enc := detectEncoding(tablePath)
	if enc == encodingUnknown {
		err := fmt.Errorf("%w: %s", ErrUnsupportedFormat, tablePath)
		o.logger.LogLoad(ctx, tablePath, 0, 0, err)
		return nil, err
	}

	var (
		abundance  *table.Matrix
		taxStrings []string
		hasTax     bool
		metadata   *table.Frame
	)

	// The table and metadata files are independent; fetch and parse them
	// concurrently and join before alignment, which needs both ID sets.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		abundance, taxStrings, hasTax, err = loadAbundance(gctx, o, enc, tablePath)
		return err
	})
	g.Go(func() error {
		var err error
		metadata, err = loadMetadata(gctx, o, metadataPath)
		return err
	})
	if err := g.Wait(); err != nil {
		err = translateError(err)
		o.logger.LogLoad(ctx, tablePath, 0, 0, err)
		return nil, err
	}

	if err := align.Unique(abundance.RowIDs); err != nil {
		err = translateError(err)
		o.logger.LogLoad(ctx, tablePath, 0, 0, err)
		return nil, err
	}

	var tax *taxonomy.Table
	if hasTax {
		tax = taxonomy.Parse(abundance.RowIDs, taxStrings)
	}

	ids := metadata.RowIDs
	if o.predicate != nil {
		selected, err := o.predicate.Select(metadata)
		if err != nil {
			err = translateError(err)
			o.logger.LogLoad(ctx, tablePath, 0, 0, err)
			return nil, err
		}
		ids = selected
	}

	ds, err := alignDataset(abundance, metadata, tax, o.logger, ids)
	if err != nil {
		o.logger.LogLoad(ctx, tablePath, 0, 0, err)
		return nil, err
	}

	o.logger.LogLoad(ctx, tablePath, len(ds.abundance.RowIDs), len(ds.abundance.ColIDs), nil)
	return ds, nil
}

func loadAbundance(ctx context.Context, o options, enc encoding, name string) (*table.Matrix, []string, bool, error) {
	rc, err := fileio.Open(ctx, o.store, name)
	if err != nil {
		return nil, nil, false, err
	}
	defer func() { _ = rc.Close() }()

	switch enc {
	case encodingBIOM:
		return parseBIOM(rc, o.codec, name)
	default:
		return parseAbundanceText(rc, name, o.delimiter)
	}
}

func parseBIOM(r io.Reader, c codec.Codec, name string) (*table.Matrix, []string, bool, error) {
	doc, err := biom.Decode(r, c)
	if err != nil {
		return nil, nil, false, &ParseError{Path: name, cause: err}
	}
	m, err := doc.Matrix()
	if err != nil {
		return nil, nil, false, &ParseError{Path: name, cause: err}
	}
	taxStrings, hasTax := doc.TaxonomyStrings()
	return m, taxStrings, hasTax, nil
}

// parseAbundanceText parses a delimited abundance table.
//
// Two header conventions exist: a first line starting with "#OTU" is itself
// the header; otherwise exactly one leading line (a free-form comment) is
// skipped and the next line is the header. A trailing column literally
// named "taxonomy" is split off the numeric matrix.
func parseAbundanceText(r io.Reader, name, delim string) (*table.Matrix, []string, bool, error) {
	records, err := tsv.Records(r, delim)
	if err != nil {
		return nil, nil, false, &ParseError{Path: name, cause: err}
	}
	if len(records) == 0 {
		return nil, nil, false, &ParseError{Path: name, cause: errors.New("empty table")}
	}

	headerLine := 1
	if !strings.HasPrefix(records[0][0], "#OTU") {
		headerLine = 2
		if len(records) < 2 {
			return nil, nil, false, &ParseError{Path: name, cause: errors.New("missing header line")}
		}
	}
	header := records[headerLine-1]
	rows := records[headerLine:]

	if len(header) < 2 {
		return nil, nil, false, &ParseError{Path: name, Line: headerLine, Column: 1, cause: errors.New("header names no samples")}
	}

	hasTax := header[len(header)-1] == taxonomyColumn
	colIDs := header[1:]
	if hasTax {
		colIDs = header[1 : len(header)-1]
	}

	featureIDs := make([]string, len(rows))
	data := make([][]float64, len(rows))
	var taxStrings []string
	if hasTax {
		taxStrings = make([]string, len(rows))
	}

	for i, row := range rows {
		line := headerLine + 1 + i
		if len(row) != len(header) {
			return nil, nil, false, &ParseError{Path: name, Line: line, Column: len(row), cause: fmt.Errorf("row has %d cells, want %d", len(row), len(header))}
		}
		featureIDs[i] = row[0]
		if hasTax {
			taxStrings[i] = row[len(row)-1]
		}

		values := make([]float64, len(colIDs))
		for j := range colIDs {
			v, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, nil, false, &ParseError{Path: name, Line: line, Column: j + 2, cause: fmt.Errorf("malformed numeric cell %q", row[j+1])}
			}
			if v < 0 {
				return nil, nil, false, &ParseError{Path: name, Line: line, Column: j + 2, cause: fmt.Errorf("negative abundance %q", row[j+1])}
			}
			values[j] = v
		}
		data[i] = values
	}

	m, err := table.NewMatrix(featureIDs, colIDs, data)
	if err != nil {
		return nil, nil, false, &ParseError{Path: name, cause: err}
	}
	return m, taxStrings, hasTax, nil
}

func loadMetadata(ctx context.Context, o options, name string) (*table.Frame, error) {
	rc, err := fileio.Open(ctx, o.store, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	f, err := parseMetadataText(rc, name, o.delimiter)
	if err != nil {
		return nil, err
	}

	// Structurally valid but rarely what the caller meant; usually a sign
	// of a wrong delimiter.
	if len(f.Cols) == 1 {
		o.logger.Warn("metadata collapsed to a single attribute column",
			"path", name,
			"attribute", f.Cols[0],
		)
	}
	return f, nil
}

// parseMetadataText parses a delimited sample-by-attribute table. The first
// header cell names the sample-ID column; the remaining cells name
// attributes.
func parseMetadataText(r io.Reader, name, delim string) (*table.Frame, error) {
	records, err := tsv.Records(r, delim)
	if err != nil {
		return nil, &ParseError{Path: name, cause: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Path: name, cause: errors.New("empty metadata table")}
	}

	header := records[0]
	if len(header) < 2 {
		return nil, &ParseError{Path: name, Line: 1, Column: 1, cause: errors.New("metadata names no attributes")}
	}
	cols := header[1:]

	rows := records[1:]
	rowIDs := make([]string, len(rows))
	data := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, &ParseError{Path: name, Line: i + 2, Column: len(row), cause: fmt.Errorf("row has %d cells, want %d", len(row), len(header))}
		}
		rowIDs[i] = row[0]
		data[i] = row[1:]
	}

	return table.NewFrame(rowIDs, cols, data)
}
