package ecotab

import (
	"fmt"

	"github.com/hupe1980/ecotab/align"
	"github.com/hupe1980/ecotab/table"
	"github.com/hupe1980/ecotab/taxonomy"
)

// Dataset is the canonical representation of a loaded community table:
// a feature-by-sample abundance matrix, the sample metadata aligned to its
// columns, and optional per-feature taxonomy aligned to its rows.
//
// Datasets are immutable: filters and alignment return new instances, so
// callers may keep references to pre-filter datasets without aliasing
// hazards.
type Dataset struct {
	abundance *table.Matrix
	metadata  *table.Frame
	taxonomy  *taxonomy.Table // nil when the source carries no taxonomy

	logger *Logger
}

// NewDataset validates the cross-structure invariants and builds a Dataset.
//
// Abundance column IDs must equal metadata row IDs in identical order.
// When taxonomy is non-nil its feature IDs must equal the abundance row
// IDs, aligned one to one.
func NewDataset(abundance *table.Matrix, metadata *table.Frame, tax *taxonomy.Table) (*Dataset, error) {
	if len(abundance.ColIDs) != len(metadata.RowIDs) {
		return nil, fmt.Errorf("abundance has %d samples, metadata has %d", len(abundance.ColIDs), len(metadata.RowIDs))
	}
	for i, id := range abundance.ColIDs {
		if metadata.RowIDs[i] != id {
			return nil, fmt.Errorf("sample %d: abundance column %q does not match metadata row %q", i, id, metadata.RowIDs[i])
		}
	}
	if tax != nil {
		if len(tax.FeatureIDs) != len(abundance.RowIDs) {
			return nil, fmt.Errorf("abundance has %d features, taxonomy has %d", len(abundance.RowIDs), len(tax.FeatureIDs))
		}
		for i, id := range abundance.RowIDs {
			if tax.FeatureIDs[i] != id {
				return nil, fmt.Errorf("feature %d: abundance row %q does not match taxonomy row %q", i, id, tax.FeatureIDs[i])
			}
		}
	}
	return &Dataset{abundance: abundance, metadata: metadata, taxonomy: tax, logger: NoopLogger()}, nil
}

// Abundance returns the feature-by-sample matrix.
// The returned structure is shared; treat it as read-only.
func (d *Dataset) Abundance() *table.Matrix { return d.abundance }

// Metadata returns the sample-by-attribute table aligned to the abundance
// columns. The returned structure is shared; treat it as read-only.
func (d *Dataset) Metadata() *table.Frame { return d.metadata }

// Taxonomy returns the per-feature taxonomy table and whether the dataset
// carries one.
func (d *Dataset) Taxonomy() (*taxonomy.Table, bool) {
	return d.taxonomy, d.taxonomy != nil
}

// SampleIDs returns the sample identifiers in canonical order.
func (d *Dataset) SampleIDs() []string {
	ids := make([]string, len(d.abundance.ColIDs))
	copy(ids, d.abundance.ColIDs)
	return ids
}

// FeatureIDs returns the feature identifiers in canonical order.
func (d *Dataset) FeatureIDs() []string {
	ids := make([]string, len(d.abundance.RowIDs))
	copy(ids, d.abundance.RowIDs)
	return ids
}

// DissimilarityMatrix is a precomputed sample-by-sample distance structure
// plus the metadata subset aligned to it. Matrix row order, column order and
// metadata row order are always identical.
type DissimilarityMatrix struct {
	matrix   *table.Matrix
	metadata *table.Frame
}

// NewDissimilarityMatrix validates the alignment invariants and builds a
// DissimilarityMatrix. The matrix must be square with row IDs equal to
// column IDs and to metadata row IDs, in identical order.
func NewDissimilarityMatrix(m *table.Matrix, metadata *table.Frame) (*DissimilarityMatrix, error) {
	if len(m.RowIDs) != len(m.ColIDs) {
		return nil, fmt.Errorf("%w: %d rows, %d columns", ErrMalformedMatrix, len(m.RowIDs), len(m.ColIDs))
	}
	for i, id := range m.RowIDs {
		if m.ColIDs[i] != id {
			return nil, fmt.Errorf("%w: row %d labeled %q, column labeled %q", ErrMalformedMatrix, i, id, m.ColIDs[i])
		}
	}
	if len(metadata.RowIDs) != len(m.RowIDs) {
		return nil, fmt.Errorf("matrix has %d samples, metadata has %d", len(m.RowIDs), len(metadata.RowIDs))
	}
	for i, id := range m.RowIDs {
		if metadata.RowIDs[i] != id {
			return nil, fmt.Errorf("sample %d: matrix row %q does not match metadata row %q", i, id, metadata.RowIDs[i])
		}
	}
	return &DissimilarityMatrix{matrix: m, metadata: metadata}, nil
}

// Matrix returns the square distance matrix.
// The returned structure is shared; treat it as read-only.
func (dm *DissimilarityMatrix) Matrix() *table.Matrix { return dm.matrix }

// Metadata returns the aligned metadata subset.
// The returned structure is shared; treat it as read-only.
func (dm *DissimilarityMatrix) Metadata() *table.Frame { return dm.metadata }

// SampleIDs returns the sample identifiers in matrix order.
func (dm *DissimilarityMatrix) SampleIDs() []string {
	ids := make([]string, len(dm.matrix.RowIDs))
	copy(ids, dm.matrix.RowIDs)
	return ids
}

// alignDataset reduces abundance, metadata and taxonomy to the ordered
// intersection of the abundance columns, metadata rows and any extra ID
// collections. The returned Dataset carries the given logger.
func alignDataset(abundance *table.Matrix, metadata *table.Frame, tax *taxonomy.Table, logger *Logger, extra ...[]string) (*Dataset, error) {
	collections := append([][]string{metadata.RowIDs}, extra...)
	order, err := align.Order(abundance.ColIDs, collections...)
	if err != nil {
		return nil, translateError(err)
	}

	colIdx := align.Positions(align.Index(abundance.ColIDs), order)
	rowIdx := align.Positions(align.Index(metadata.RowIDs), order)

	ds, err := NewDataset(abundance.SelectCols(colIdx), metadata.SelectRows(rowIdx), tax)
	if err != nil {
		return nil, err
	}
	ds.logger = logger
	return ds, nil
}
