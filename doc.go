// Package ecotab aligns and filters heterogeneous tabular datasets used in
// community-composition analysis.
//
// The canonical structures are a feature-by-sample abundance table
// (optionally annotated with hierarchical taxonomy per feature), a
// sample-by-attribute metadata table, and precomputed sample-by-sample
// dissimilarity matrices. Loaders parse the common on-disk encodings into
// these structures; the aligner reduces them to a consistently ordered
// common sample set; filters narrow samples or features while preserving
// cross-structure consistency.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	ds, err := ecotab.Load(ctx, "otu_table.txt", "mapping.txt")
//	ds, err = ds.Filter(predicate.Exclude("type", "blank"))
//
//	dm, err := ecotab.LoadDissimilarity(ctx, "bray_curtis.txt", "mapping.txt")
//
//	err = ds.Export(ctx, "otu_table_filtered.txt")
//
// # Input Encodings
//
// Abundance tables are read either from tab-delimited text (QIIME-style,
// with or without a leading comment line, optional trailing taxonomy
// column) or from a BIOM 1.0 JSON container. Compressed inputs
// (.gz, .zst, .lz4) are decompressed transparently. All inputs are resolved
// through a blobstore.Store, so tables can live on the local filesystem, in
// memory, or in S3-compatible object storage.
//
// # Alignment Guarantees
//
// Every load and filter operation returns new structures whose sample IDs
// are the ordered intersection of all inputs, ordered by first appearance
// in the primary structure. Abundance column IDs always equal metadata row
// IDs, in identical order. Disjoint inputs fail with ErrEmptyAlignment and
// duplicated identifiers fail with ErrDuplicateIdentifier; a degenerate or
// ambiguous alignment is never returned silently.
package ecotab
