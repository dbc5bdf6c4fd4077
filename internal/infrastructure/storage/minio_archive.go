// Package storage archiva en MinIO/S3 una copia de los PDF generados.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	appquotation "github.com/luxymarbre/devis-api/internal/application/quotation"
	"github.com/luxymarbre/devis-api/pkg/config"
)

var _ appquotation.DocumentArchive = (*MinIOArchive)(nil)

// MinIOArchive implementa quotation.DocumentArchive sobre un bucket de MinIO.
type MinIOArchive struct {
	client *minio.Client
	bucket string
}

// NewMinIOArchive crea el cliente. No contacta al servidor; ver EnsureBucket.
func NewMinIOArchive(cfg config.StorageConfig) (*MinIOArchive, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("storage: MinIO no configurado")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: crear cliente MinIO: %w", err)
	}
	return &MinIOArchive{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket crea el bucket si no existe.
func (a *MinIOArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("storage: comprobar bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("storage: crear bucket %s: %w", a.bucket, err)
	}
	return nil
}

// Store sube data bajo key. Un mismo key se sobrescribe (el último PDF generado gana).
func (a *MinIOArchive) Store(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("storage: subir %s: %w", key, err)
	}
	return nil
}
