// Package minio provides a blobstore.Store implementation using the MinIO
// client, for MinIO and other S3-compatible storage (Ceph, Garage, SeaweedFS).
//
// # Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "studies/")
//	ds, err := ecotab.Load(ctx, "otu_table.txt", "mapping.txt", ecotab.WithStore(store))
package minio
