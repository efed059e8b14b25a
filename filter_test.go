package ecotab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ecotab/predicate"
)

func loadTestDataset(t *testing.T) *Dataset {
	t.Helper()
	store := newStore(t, map[string]string{
		"table.txt": testTable,
		"map.txt":   testMetadata,
	})
	ds, err := Load(context.Background(), "table.txt", "map.txt", WithStore(store))
	require.NoError(t, err)
	return ds
}

func TestFilter(t *testing.T) {
	t.Run("ExcludeBlankSamples", func(t *testing.T) {
		ds := loadTestDataset(t)

		filtered, err := ds.Filter(predicate.Exclude("type", "blank"))
		require.NoError(t, err)

		assert.Equal(t, []string{"S1", "S2"}, filtered.SampleIDs())
		assert.Equal(t, [][]float64{{1, 2}, {4, 5}}, filtered.Abundance().Data)

		// Feature axis untouched by a sample filter.
		tax, ok := filtered.Taxonomy()
		require.True(t, ok)
		assert.Equal(t, []string{"F1", "F2"}, tax.FeatureIDs)

		// Source dataset untouched.
		assert.Equal(t, []string{"S1", "S2", "S3"}, ds.SampleIDs())
	})

	t.Run("Idempotent", func(t *testing.T) {
		ds := loadTestDataset(t)
		p := predicate.Exclude("type", "blank")

		once, err := ds.Filter(p)
		require.NoError(t, err)
		twice, err := once.Filter(p)
		require.NoError(t, err)

		assert.Equal(t, once.SampleIDs(), twice.SampleIDs())
		assert.Equal(t, once.Abundance().Data, twice.Abundance().Data)
		assert.Equal(t, once.Metadata().Data, twice.Metadata().Data)
	})

	t.Run("NilPredicateIsNoop", func(t *testing.T) {
		ds := loadTestDataset(t)
		same, err := ds.Filter(nil)
		require.NoError(t, err)
		assert.Same(t, ds, same)
	})

	t.Run("InvariantHolds", func(t *testing.T) {
		ds := loadTestDataset(t)
		filtered, err := ds.Filter(predicate.Keep("site", "A"))
		require.NoError(t, err)
		assert.Equal(t, filtered.Abundance().ColIDs, filtered.Metadata().RowIDs)
	})

	t.Run("NothingLeft", func(t *testing.T) {
		ds := loadTestDataset(t)
		_, err := ds.Filter(predicate.Keep("type", "sediment"))
		require.ErrorIs(t, err, ErrEmptyAlignment)
	})

	t.Run("UnknownAttribute", func(t *testing.T) {
		ds := loadTestDataset(t)
		_, err := ds.Filter(predicate.Keep("depth", "10"))
		require.ErrorIs(t, err, ErrUnknownAttribute)
	})
}

func TestFilterTaxonomy(t *testing.T) {
	t.Run("Keep", func(t *testing.T) {
		ds := loadTestDataset(t)

		filtered, err := ds.FilterTaxonomy(predicate.ModeKeep, "Firmicutes")
		require.NoError(t, err)

		assert.Equal(t, []string{"F1"}, filtered.FeatureIDs())
		assert.Equal(t, [][]float64{{1, 2, 3}}, filtered.Abundance().Data)

		// Sample axis untouched by a feature filter.
		assert.Equal(t, []string{"S1", "S2", "S3"}, filtered.SampleIDs())

		tax, ok := filtered.Taxonomy()
		require.True(t, ok)
		assert.Equal(t, []string{"F1"}, tax.FeatureIDs)
	})

	t.Run("Exclude", func(t *testing.T) {
		ds := loadTestDataset(t)

		filtered, err := ds.FilterTaxonomy(predicate.ModeExclude, "Firmicutes")
		require.NoError(t, err)
		assert.Equal(t, []string{"F2"}, filtered.FeatureIDs())
	})

	t.Run("NoMatchIsEmpty", func(t *testing.T) {
		ds := loadTestDataset(t)
		_, err := ds.FilterTaxonomy(predicate.ModeKeep, "Archaea")
		require.ErrorIs(t, err, ErrEmptyAlignment)
	})

	t.Run("WithoutTaxonomy", func(t *testing.T) {
		store := newStore(t, map[string]string{
			"table.txt": "#OTU ID\tS1\tS2\tS3\nF1\t1\t2\t3\n",
			"map.txt":   testMetadata,
		})
		ds, err := Load(context.Background(), "table.txt", "map.txt", WithStore(store))
		require.NoError(t, err)

		_, err = ds.FilterTaxonomy(predicate.ModeKeep, "Firmicutes")
		require.ErrorIs(t, err, ErrNoTaxonomy)
	})
}

func TestFilterAbundance(t *testing.T) {
	t.Run("MinCount", func(t *testing.T) {
		ds := loadTestDataset(t)

		// F1 totals 6, F2 totals 15.
		filtered, err := ds.FilterMinCount(10)
		require.NoError(t, err)
		assert.Equal(t, []string{"F2"}, filtered.FeatureIDs())

		tax, ok := filtered.Taxonomy()
		require.True(t, ok)
		assert.Equal(t, []string{"F2"}, tax.FeatureIDs)
	})

	t.Run("MinCountKeepsAll", func(t *testing.T) {
		ds := loadTestDataset(t)
		filtered, err := ds.FilterMinCount(0)
		require.NoError(t, err)
		assert.Equal(t, ds.FeatureIDs(), filtered.FeatureIDs())
	})

	t.Run("MinRelativeAbundance", func(t *testing.T) {
		ds := loadTestDataset(t)

		// F1 is 6/21 ≈ 0.29, F2 is 15/21 ≈ 0.71.
		filtered, err := ds.FilterMinRelativeAbundance(0.5)
		require.NoError(t, err)
		assert.Equal(t, []string{"F2"}, filtered.FeatureIDs())
	})

	t.Run("ThresholdTooHigh", func(t *testing.T) {
		ds := loadTestDataset(t)
		_, err := ds.FilterMinCount(1000)
		require.ErrorIs(t, err, ErrEmptyAlignment)
	})
}
