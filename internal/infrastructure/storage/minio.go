package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/foyer-app/foyer-voice/pkg/config"
)

// AudioStore keeps assembled audio blobs in MinIO. Objects are private; the
// pipeline streams them out itself when handing audio to the transcription
// provider.
type AudioStore struct {
	client *minio.Client
	bucket string
}

// NewAudioStore creates the client and ensures the bucket exists
func NewAudioStore(cfg *config.StorageConfig) (*AudioStore, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &AudioStore{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, store.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, store.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return store, nil
}

// ObjectName derives the canonical object key for an upload
func ObjectName(audioID uuid.UUID, format string) string {
	return fmt.Sprintf("audio/%s.%s", audioID, format)
}

// Put stores assembled audio bytes under objectName
func (s *AudioStore) Put(ctx context.Context, objectName string, audio []byte, contentType string) error {
	reader := bytes.NewReader(audio)
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, int64(len(audio)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload audio: %w", err)
	}
	return nil
}

// Get opens the stored audio for reading. The caller closes the reader.
func (s *AudioStore) Get(ctx context.Context, objectName string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open audio object: %w", err)
	}
	return obj, nil
}

// PresignedURL returns a time-limited download URL for an audio object
func (s *AudioStore) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// Delete removes an audio object. Missing objects are not an error.
func (s *AudioStore) Delete(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
