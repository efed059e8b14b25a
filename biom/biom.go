// Package biom decodes the BIOM 1.0 structured container: a self-describing
// JSON document holding a sparse or dense observation-by-sample matrix plus
// per-observation metadata usable as the taxonomy source.
package biom

import (
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/ecotab/codec"
	"github.com/hupe1980/ecotab/table"
)

// Matrix encodings defined by the BIOM 1.0 format.
const (
	MatrixTypeSparse = "sparse"
	MatrixTypeDense  = "dense"
)

// Attr is one row or column entry: an identifier with optional metadata.
type Attr struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata"`
}

// Document is a decoded BIOM 1.0 container.
type Document struct {
	ID                string      `json:"id"`
	Format            string      `json:"format"`
	Type              string      `json:"type"`
	MatrixType        string      `json:"matrix_type"`
	MatrixElementType string      `json:"matrix_element_type"`
	Shape             []int       `json:"shape"`
	Rows              []Attr      `json:"rows"`
	Columns           []Attr      `json:"columns"`
	Data              [][]float64 `json:"data"`
}

// Decode reads and validates a container document. A nil codec falls back
// to codec.Default.
func Decode(r io.Reader, c codec.Codec) (*Document, error) {
	if c == nil {
		c = codec.Default
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := c.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode container: %w", err)
	}

	if doc.MatrixType != MatrixTypeSparse && doc.MatrixType != MatrixTypeDense {
		return nil, fmt.Errorf("unknown matrix_type %q", doc.MatrixType)
	}
	if len(doc.Shape) != 2 {
		return nil, fmt.Errorf("shape has %d entries, want 2", len(doc.Shape))
	}
	if len(doc.Rows) != doc.Shape[0] || len(doc.Columns) != doc.Shape[1] {
		return nil, fmt.Errorf("shape [%d %d] does not match %d rows, %d columns",
			doc.Shape[0], doc.Shape[1], len(doc.Rows), len(doc.Columns))
	}
	return &doc, nil
}

// Matrix materializes the container's data block as a dense table.Matrix
// with observation IDs as rows and sample IDs as columns.
func (d *Document) Matrix() (*table.Matrix, error) {
	rowIDs := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		rowIDs[i] = r.ID
	}
	colIDs := make([]string, len(d.Columns))
	for j, c := range d.Columns {
		colIDs[j] = c.ID
	}

	data := make([][]float64, len(rowIDs))
	for i := range data {
		data[i] = make([]float64, len(colIDs))
	}

	switch d.MatrixType {
	case MatrixTypeDense:
		if len(d.Data) != len(rowIDs) {
			return nil, fmt.Errorf("dense data has %d rows, want %d", len(d.Data), len(rowIDs))
		}
		for i, row := range d.Data {
			if len(row) != len(colIDs) {
				return nil, fmt.Errorf("dense data row %d has %d cells, want %d", i, len(row), len(colIDs))
			}
			copy(data[i], row)
		}
	case MatrixTypeSparse:
		for k, triplet := range d.Data {
			if len(triplet) != 3 {
				return nil, fmt.Errorf("sparse entry %d has %d values, want 3", k, len(triplet))
			}
			i, j := int(triplet[0]), int(triplet[1])
			if i < 0 || i >= len(rowIDs) || j < 0 || j >= len(colIDs) {
				return nil, fmt.Errorf("sparse entry %d addresses cell (%d,%d) outside shape [%d %d]",
					k, i, j, len(rowIDs), len(colIDs))
			}
			data[i][j] = triplet[2]
		}
	}

	return table.NewMatrix(rowIDs, colIDs, data)
}

// TaxonomyStrings extracts one raw taxonomy string per observation from row
// metadata, joining list-valued entries on ";". The second return value is
// false when no row carries a taxonomy entry.
func (d *Document) TaxonomyStrings() ([]string, bool) {
	out := make([]string, len(d.Rows))
	found := false
	for i, r := range d.Rows {
		v, ok := r.Metadata["taxonomy"]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			out[i] = t
			found = true
		case []any:
			parts := make([]string, 0, len(t))
			for _, p := range t {
				s, ok := p.(string)
				if !ok {
					// Advisory metadata; a bad level degrades to
					// unclassified downstream instead of failing.
					s = ""
				}
				parts = append(parts, s)
			}
			out[i] = strings.Join(parts, ";")
			found = true
		}
	}
	return out, found
}
