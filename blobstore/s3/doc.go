// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("studies/2024/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	ds, err := ecotab.Load(ctx, "otu_table.txt", "mapping.txt", ecotab.WithStore(store))
package s3
