package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/erp/erpcore/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3DocumentStore_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr string
	}{
		{
			name:    "missing bucket",
			cfg:     config.StorageConfig{AccessKeyID: "k", SecretAccessKey: "s"},
			wantErr: "bucket is required",
		},
		{
			name:    "access key without secret",
			cfg:     config.StorageConfig{Bucket: "docs", AccessKeyID: "k"},
			wantErr: "must be set together",
		},
		{
			name:    "endpoint without scheme",
			cfg:     config.StorageConfig{Bucket: "docs", Endpoint: "localhost:9000"},
			wantErr: "invalid storage endpoint",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewS3DocumentStore(ctx, tt.cfg, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func newTestS3Store(t *testing.T) *S3DocumentStore {
	t.Helper()
	store, err := NewS3DocumentStore(context.Background(), config.StorageConfig{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		Bucket:          "erp-documents",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		UsePathStyle:    true,
		PresignExpiry:   5 * time.Minute,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return store
}

func TestS3DocumentStore_PresignGet(t *testing.T) {
	store := newTestS3Store(t)
	assert.Equal(t, "erp-documents", store.Bucket())

	before := time.Now()
	link, expiresAt, err := store.PresignGet(context.Background(), InvoicePDFKey("FAC-1-2"))
	require.NoError(t, err)

	// path-style addressing keeps the bucket in the path
	assert.True(t, strings.HasPrefix(link, "http://localhost:9000/erp-documents/invoices/FAC-1-2.pdf?"), link)
	assert.Contains(t, link, "X-Amz-Signature=")
	assert.Contains(t, link, "X-Amz-Expires=300")
	assert.WithinDuration(t, before.Add(5*time.Minute), expiresAt, 5*time.Second)
}

func TestS3DocumentStore_RejectsEmptyKeys(t *testing.T) {
	store := newTestS3Store(t)
	ctx := context.Background()

	assert.Error(t, store.Put(ctx, "", "application/pdf", []byte("x")))
	_, err := store.Get(ctx, "")
	assert.Error(t, err)
	_, err = store.Exists(ctx, "")
	assert.Error(t, err)
	_, _, err = store.PresignGet(ctx, "")
	assert.Error(t, err)
}

func TestMemoryDocumentStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore("http://localhost:8080/files")

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	data := []byte("%PDF-1.4")
	require.NoError(t, store.Put(ctx, InvoicePDFKey("FAC-9"), "application/pdf", data))
	data[0] = 'X' // the store keeps its own copy

	got, err := store.Get(ctx, "invoices/FAC-9.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), got)

	exists, err := store.Exists(ctx, "invoices/FAC-9.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 1, store.Len())

	link, _, err := store.PresignGet(ctx, "invoices/FAC-9.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/invoices/FAC-9.pdf", link)
}
