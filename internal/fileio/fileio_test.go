package fileio

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ecotab/blobstore"
)

func TestLogical(t *testing.T) {
	assert.Equal(t, "table.txt", Logical("table.txt.gz"))
	assert.Equal(t, "table.biom", Logical("table.biom.zst"))
	assert.Equal(t, "table.tsv", Logical("table.tsv.lz4"))
	assert.Equal(t, "table.txt", Logical("table.txt"))
	// Only one suffix is stripped.
	assert.Equal(t, "table.txt.gz", Logical("table.txt.gz.gz"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	payload := []byte("#OTU ID\tS1\tS2\nF1\t1\t2\n")

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "plain.txt", payload))

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, store.Put(ctx, "table.txt.gz", gz.Bytes()))

	var zst bytes.Buffer
	enc, err := zstd.NewWriter(&zst)
	require.NoError(t, err)
	_, err = enc.Write(payload)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, store.Put(ctx, "table.txt.zst", zst.Bytes()))

	var l4 bytes.Buffer
	lw := lz4.NewWriter(&l4)
	_, err = lw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, lw.Close())
	require.NoError(t, store.Put(ctx, "table.txt.lz4", l4.Bytes()))

	for _, name := range []string{"plain.txt", "table.txt.gz", "table.txt.zst", "table.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			rc, err := Open(ctx, store, name)
			require.NoError(t, err)
			defer func() { _ = rc.Close() }()

			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, payload, data)
		})
	}

	t.Run("NotFound", func(t *testing.T) {
		_, err := Open(ctx, store, "missing.txt")
		require.Error(t, err)
	})

	t.Run("CorruptGzip", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "bad.txt.gz", []byte("not gzip")))
		_, err := Open(ctx, store, "bad.txt.gz")
		require.Error(t, err)
	})
}
