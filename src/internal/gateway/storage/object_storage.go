package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"load-tracking-service/src/pkg/log"

	"github.com/minio/minio-go/v7"
)

// ObjectStorage is the QR image store. Upload returns the public URL the
// client can render.
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
}

type MinioStorage struct {
	Client        *minio.Client
	Bucket        string
	PublicBaseURL string
	Log           log.Log
}

func NewMinioStorage(client *minio.Client, bucket, publicBaseURL string, logger log.Log) *MinioStorage {
	return &MinioStorage{
		Client:        client,
		Bucket:        bucket,
		PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		Log:           logger,
	}
}

func (s *MinioStorage) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := s.Client.PutObject(ctx, s.Bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		s.Log.Error("object-storage", fmt.Sprintf("upload %s failed: %v", objectName, err), "Upload", "")
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", s.PublicBaseURL, s.Bucket, objectName), nil
}

func (s *MinioStorage) Remove(ctx context.Context, objectName string) error {
	err := s.Client.RemoveObject(ctx, s.Bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		s.Log.Error("object-storage", fmt.Sprintf("remove %s failed: %v", objectName, err), "Remove", "")
	}
	return err
}
