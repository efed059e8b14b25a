package ecotab

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/ecotab/predicate"
)

// ErrNoTaxonomy is returned by taxonomy-based feature filters when the
// dataset carries no taxonomy annotations.
var ErrNoTaxonomy = errors.New("dataset has no taxonomy annotations")

// Filter applies a metadata predicate to an already loaded dataset and
// returns a new Dataset restricted to the retained samples. The feature
// axis is untouched. A nil predicate returns the receiver unchanged.
//
// Filtering is idempotent: reapplying the same predicate to its own result
// returns an equal dataset.
func (d *Dataset) Filter(p *predicate.Predicate) (*Dataset, error) {
	if p == nil {
		return d, nil
	}

	before := len(d.abundance.ColIDs)
	ids, err := p.Select(d.metadata)
	if err != nil {
		err = translateError(err)
		d.logger.LogFilter("sample", before, 0, err)
		return nil, err
	}

	nd, err := alignDataset(d.abundance, d.metadata, d.taxonomy, d.logger, ids)
	if err != nil {
		d.logger.LogFilter("sample", before, 0, err)
		return nil, err
	}

	d.logger.LogFilter("sample", before, len(nd.abundance.ColIDs), nil)
	return nd, nil
}

// FilterTaxonomy restricts the feature axis by taxonomy label. A feature
// matches when any of its rank labels contains any of the given substrings.
// ModeKeep retains matching features; ModeExclude removes them. Samples and
// metadata are untouched.
func (d *Dataset) FilterTaxonomy(mode predicate.Mode, labels ...string) (*Dataset, error) {
	if d.taxonomy == nil {
		return nil, ErrNoTaxonomy
	}

	keep := roaring.New()
	for i, row := range d.taxonomy.Labels {
		matched := false
		for _, label := range row {
			for _, want := range labels {
				if strings.Contains(label, want) {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if matched == (mode == predicate.ModeKeep) {
			keep.Add(uint32(i))
		}
	}

	return d.selectFeatures(keep)
}

// FilterMinCount restricts the feature axis to features whose total
// abundance across all samples is at least min.
func (d *Dataset) FilterMinCount(min float64) (*Dataset, error) {
	keep := roaring.New()
	for i, total := range d.abundance.RowTotals() {
		if total >= min {
			keep.Add(uint32(i))
		}
	}
	return d.selectFeatures(keep)
}

// FilterMinRelativeAbundance restricts the feature axis to features whose
// share of the grand total is at least minFrac (e.g. 0.001 for 0.1%).
func (d *Dataset) FilterMinRelativeAbundance(minFrac float64) (*Dataset, error) {
	grand := d.abundance.Total()
	keep := roaring.New()
	if grand > 0 {
		for i, total := range d.abundance.RowTotals() {
			if total/grand >= minFrac {
				keep.Add(uint32(i))
			}
		}
	}
	return d.selectFeatures(keep)
}

// selectFeatures re-indexes the abundance and taxonomy rows to the kept
// feature positions, applying the same intersection-and-reindex discipline
// as sample alignment on the feature axis.
func (d *Dataset) selectFeatures(keep *roaring.Bitmap) (*Dataset, error) {
	before := len(d.abundance.RowIDs)
	if keep.IsEmpty() {
		err := fmt.Errorf("%w: no features retained", ErrEmptyAlignment)
		d.logger.LogFilter("feature", before, 0, err)
		return nil, err
	}

	idx := make([]int, 0, keep.GetCardinality())
	it := keep.Iterator()
	for it.HasNext() {
		idx = append(idx, int(it.Next()))
	}

	var tax = d.taxonomy
	if tax != nil {
		tax = tax.Select(idx)
	}

	nd, err := NewDataset(d.abundance.SelectRows(idx), d.metadata, tax)
	if err != nil {
		d.logger.LogFilter("feature", before, 0, err)
		return nil, err
	}
	nd.logger = d.logger

	d.logger.LogFilter("feature", before, len(nd.abundance.RowIDs), nil)
	return nd, nil
}
