package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ConnectMinio initializes the object storage client for receipt
// images and ensures the receipt bucket exists. Returns nil (no error)
// when object storage is disabled; receipts are then stored inline.
func ConnectMinio(cfg *Config) (*minio.Client, error) {
	if !cfg.Minio.Enabled {
		log.Println("ℹ️ Object storage disabled, receipts will be stored inline")
		return nil, nil
	}

	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Printf("Created bucket: %s", cfg.Minio.Bucket)
	}

	log.Printf("✅ MinIO connected successfully [%s/%s]", cfg.Minio.Endpoint, cfg.Minio.Bucket)
	return client, nil
}
