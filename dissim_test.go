package ecotab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ecotab/predicate"
)

const testDM = "\tS1\tS2\tS3\n" +
	"S1\t0\t0.4\t0.7\n" +
	"S2\t0.4\t0\t0.5\n" +
	"S3\t0.7\t0.5\t0\n"

func TestLoadDissimilarity(t *testing.T) {
	ctx := context.Background()

	t.Run("Aligned", func(t *testing.T) {
		store := newStore(t, map[string]string{
			"dm.txt":  testDM,
			"map.txt": testMetadata,
		})

		dm, err := LoadDissimilarity(ctx, "dm.txt", "map.txt", WithStore(store))
		require.NoError(t, err)

		assert.Equal(t, []string{"S1", "S2", "S3"}, dm.SampleIDs())
		assert.Equal(t, dm.Matrix().RowIDs, dm.Matrix().ColIDs)
		assert.Equal(t, dm.Matrix().RowIDs, dm.Metadata().RowIDs)
		assert.Equal(t, 0.4, dm.Matrix().At(0, 1))
	})

	t.Run("HeaderWithoutCornerCell", func(t *testing.T) {
		store := newStore(t, map[string]string{
			"dm.txt": "S1\tS2\n" +
				"S1\t0\t0.3\n" +
				"S2\t0.3\t0\n",
			"map.txt": testMetadata,
		})

		dm, err := LoadDissimilarity(ctx, "dm.txt", "map.txt", WithStore(store))
		require.NoError(t, err)
		assert.Equal(t, []string{"S1", "S2"}, dm.SampleIDs())
	})

	t.Run("PredicateNarrowsSamples", func(t *testing.T) {
		store := newStore(t, map[string]string{
			"dm.txt":  testDM,
			"map.txt": testMetadata,
		})

		dm, err := LoadDissimilarity(ctx, "dm.txt", "map.txt",
			WithStore(store),
			WithPredicate(predicate.Exclude("type", "blank")),
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"S1", "S2"}, dm.SampleIDs())
		assert.Equal(t, [][]float64{{0, 0.4}, {0.4, 0}}, dm.Matrix().Data)
	})

	t.Run("NotSquare", func(t *testing.T) {
		store := newStore(t, map[string]string{
			"dm.txt": "\tS1\tS2\tS3\n" +
				"S1\t0\t0.4\t0.7\n" +
				"S2\t0.4\t0\t0.5\n",
			"map.txt": testMetadata,
		})

		_, err := LoadDissimilarity(ctx, "dm.txt", "map.txt", WithStore(store))
		require.ErrorIs(t, err, ErrMalformedMatrix)
	})

	t.Run("LabelMismatch", func(t *testing.T) {
		store := newStore(t, map[string]string{
			"dm.txt": "\tS1\tS2\n" +
				"S1\t0\t0.4\n" +
				"S9\t0.4\t0\n",
			"map.txt": testMetadata,
		})

		_, err := LoadDissimilarity(ctx, "dm.txt", "map.txt", WithStore(store))
		require.ErrorIs(t, err, ErrMalformedMatrix)
	})

	t.Run("MalformedCell", func(t *testing.T) {
		store := newStore(t, map[string]string{
			"dm.txt": "\tS1\tS2\n" +
				"S1\t0\tnope\n" +
				"S2\t0.4\t0\n",
			"map.txt": testMetadata,
		})

		_, err := LoadDissimilarity(ctx, "dm.txt", "map.txt", WithStore(store))
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 2, pe.Line)
		assert.Equal(t, 3, pe.Column)
	})

	t.Run("Disjoint", func(t *testing.T) {
		store := newStore(t, map[string]string{
			"dm.txt":  testDM,
			"map.txt": "#SampleID\ttype\nX1\tsoil\n",
		})

		_, err := LoadDissimilarity(ctx, "dm.txt", "map.txt", WithStore(store))
		require.ErrorIs(t, err, ErrEmptyAlignment)
	})
}

func TestLoadDissimilarityPair(t *testing.T) {
	ctx := context.Background()

	dm1 := "\tS1\tS2\tS3\tS4\n" +
		"S1\t0\t0.1\t0.2\t0.3\n" +
		"S2\t0.1\t0\t0.4\t0.5\n" +
		"S3\t0.2\t0.4\t0\t0.6\n" +
		"S4\t0.3\t0.5\t0.6\t0\n"

	dm2 := "\tS2\tS3\tS4\tS5\n" +
		"S2\t0\t0.7\t0.8\t0.9\n" +
		"S3\t0.7\t0\t0.1\t0.2\n" +
		"S4\t0.8\t0.1\t0\t0.3\n" +
		"S5\t0.9\t0.2\t0.3\t0\n"

	mapping := "#SampleID\ttype\n" +
		"S1\tsoil\n" +
		"S2\tsoil\n" +
		"S3\tsoil\n" +
		"S4\tsoil\n" +
		"S5\tsoil\n"

	store := newStore(t, map[string]string{
		"dm1.txt": dm1,
		"dm2.txt": dm2,
		"map.txt": mapping,
	})

	a, b, err := LoadDissimilarityPair(ctx, "dm1.txt", "dm2.txt", "map.txt", WithStore(store))
	require.NoError(t, err)

	// Intersection in first-matrix order.
	assert.Equal(t, []string{"S2", "S3", "S4"}, a.SampleIDs())
	assert.Equal(t, []string{"S2", "S3", "S4"}, b.SampleIDs())

	// Both share one aligned metadata table.
	assert.Same(t, a.Metadata(), b.Metadata())

	assert.Equal(t, [][]float64{
		{0, 0.4, 0.5},
		{0.4, 0, 0.6},
		{0.5, 0.6, 0},
	}, a.Matrix().Data)
	assert.Equal(t, [][]float64{
		{0, 0.7, 0.8},
		{0.7, 0, 0.1},
		{0.8, 0.1, 0},
	}, b.Matrix().Data)

	t.Run("Disjoint", func(t *testing.T) {
		disjoint := newStore(t, map[string]string{
			"dm1.txt": "\tS1\nS1\t0\n",
			"dm2.txt": "\tS9\nS9\t0\n",
			"map.txt": mapping,
		})

		_, _, err := LoadDissimilarityPair(ctx, "dm1.txt", "dm2.txt", "map.txt", WithStore(disjoint))
		require.ErrorIs(t, err, ErrEmptyAlignment)
	})
}
