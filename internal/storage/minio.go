package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client is the global MinIO client for source documents. Nil when storage is
// not configured; uploads are then skipped.
var Client *minio.Client

// BucketName holds the configured source-document bucket.
var BucketName string

// Init connects to MinIO from the environment and verifies the bucket.
func Init() error {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "minio:9000"
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if accessKey == "" || secretKey == "" {
		return fmt.Errorf("no storage credentials configured")
	}

	BucketName = os.Getenv("MINIO_BUCKET")
	if BucketName == "" {
		BucketName = "invoices"
	}

	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	var err error
	Client, err = minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := Client.BucketExists(ctx, BucketName)
	if err != nil {
		Client = nil
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		Client = nil
		return fmt.Errorf("bucket %s does not exist", BucketName)
	}
	return nil
}

// UploadDocument stores a source PDF under objectName and returns its object
// path inside the bucket.
func UploadDocument(ctx context.Context, objectName string, r io.Reader, size int64) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("storage not initialized")
	}
	_, err := Client.PutObject(ctx, BucketName, objectName, r, size, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	return fmt.Sprintf("%s/%s", BucketName, objectName), nil
}

// PresignedURL returns a temporary download URL for a stored document.
func PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("storage not initialized")
	}
	u, err := Client.PresignedGetObject(ctx, BucketName, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
