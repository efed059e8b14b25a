package ecotab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ecotab/table"
	"github.com/hupe1980/ecotab/taxonomy"
)

func TestNewDataset(t *testing.T) {
	abundance, err := table.NewMatrix(
		[]string{"F1", "F2"},
		[]string{"S1", "S2"},
		[][]float64{{1, 2}, {3, 4}},
	)
	require.NoError(t, err)

	metadata, err := table.NewFrame(
		[]string{"S1", "S2"},
		[]string{"type"},
		[][]string{{"soil"}, {"blank"}},
	)
	require.NoError(t, err)

	t.Run("Valid", func(t *testing.T) {
		ds, err := NewDataset(abundance, metadata, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"S1", "S2"}, ds.SampleIDs())
		assert.Equal(t, []string{"F1", "F2"}, ds.FeatureIDs())
		_, ok := ds.Taxonomy()
		assert.False(t, ok)
	})

	t.Run("WithTaxonomy", func(t *testing.T) {
		tax := taxonomy.Parse([]string{"F1", "F2"}, []string{"k__A", "k__B"})
		ds, err := NewDataset(abundance, metadata, tax)
		require.NoError(t, err)
		got, ok := ds.Taxonomy()
		require.True(t, ok)
		assert.Equal(t, []string{"k__A", "k__B"}, got.Rank(0))
	})

	t.Run("SampleOrderMismatch", func(t *testing.T) {
		reversed, err := table.NewFrame(
			[]string{"S2", "S1"},
			[]string{"type"},
			[][]string{{"blank"}, {"soil"}},
		)
		require.NoError(t, err)

		_, err = NewDataset(abundance, reversed, nil)
		require.Error(t, err)
	})

	t.Run("SampleCountMismatch", func(t *testing.T) {
		short, err := table.NewFrame([]string{"S1"}, []string{"type"}, [][]string{{"soil"}})
		require.NoError(t, err)

		_, err = NewDataset(abundance, short, nil)
		require.Error(t, err)
	})

	t.Run("TaxonomyMismatch", func(t *testing.T) {
		tax := taxonomy.Parse([]string{"F1", "F9"}, []string{"k__A", "k__B"})
		_, err := NewDataset(abundance, metadata, tax)
		require.Error(t, err)
	})
}

func TestNewDissimilarityMatrix(t *testing.T) {
	metadata, err := table.NewFrame(
		[]string{"S1", "S2"},
		[]string{"type"},
		[][]string{{"soil"}, {"blank"}},
	)
	require.NoError(t, err)

	t.Run("Valid", func(t *testing.T) {
		m, err := table.NewMatrix(
			[]string{"S1", "S2"},
			[]string{"S1", "S2"},
			[][]float64{{0, 0.5}, {0.5, 0}},
		)
		require.NoError(t, err)

		dm, err := NewDissimilarityMatrix(m, metadata)
		require.NoError(t, err)
		assert.Equal(t, []string{"S1", "S2"}, dm.SampleIDs())
	})

	t.Run("LabelMismatch", func(t *testing.T) {
		m, err := table.NewMatrix(
			[]string{"S1", "S2"},
			[]string{"S2", "S1"},
			[][]float64{{0, 0.5}, {0.5, 0}},
		)
		require.NoError(t, err)

		_, err = NewDissimilarityMatrix(m, metadata)
		require.ErrorIs(t, err, ErrMalformedMatrix)
	})

	t.Run("MetadataMismatch", func(t *testing.T) {
		m, err := table.NewMatrix(
			[]string{"S1", "S9"},
			[]string{"S1", "S9"},
			[][]float64{{0, 0.5}, {0.5, 0}},
		)
		require.NoError(t, err)

		_, err = NewDissimilarityMatrix(m, metadata)
		require.Error(t, err)
	})
}
