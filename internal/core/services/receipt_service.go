package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ReceiptFile is an uploaded receipt image before storage
type ReceiptFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// ReceiptService stores receipt images and yields the opaque string
// persisted with the request: an object-storage URL when MinIO is
// configured, a data URI otherwise. Requests treat either form as an
// opaque reference.
type ReceiptService struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// NewReceiptService creates a new receipt service. A nil client
// selects inline data-URI storage.
func NewReceiptService(client *minio.Client, bucket, endpoint string, useSSL bool) *ReceiptService {
	return &ReceiptService{
		client:   client,
		bucket:   bucket,
		endpoint: endpoint,
		useSSL:   useSSL,
	}
}

// Store persists a receipt image under the request id and returns its
// opaque reference
func (s *ReceiptService) Store(ctx context.Context, requestID string, file *ReceiptFile) (string, error) {
	if s.client == nil {
		return dataURI(file), nil
	}

	objectName := fmt.Sprintf("receipts/%s%s", requestID, extensionFor(file))
	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(file.Data), file.Size,
		minio.PutObjectOptions{ContentType: file.ContentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt to storage: %w", err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName), nil
}

// dataURI encodes a receipt inline, the way the local-storage
// deployment of the original stored images
func dataURI(file *ReceiptFile) string {
	return fmt.Sprintf("data:%s;base64,%s",
		file.ContentType,
		base64.StdEncoding.EncodeToString(file.Data),
	)
}

// extensionFor picks an object name extension from the upload
func extensionFor(file *ReceiptFile) string {
	if ext := path.Ext(file.Filename); ext != "" {
		return strings.ToLower(ext)
	}
	switch file.ContentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
