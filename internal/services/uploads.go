package services

import (
	"bytes"
	"context"
	"io"
	"mime"
	"path/filepath"

	"github.com/condoease/apiserver/internal/storage"
)

// Upload is a file received from a multipart form, held in memory.
type Upload struct {
	Filename string
	Data     []byte
}

// FileStore is the subset of object storage operations the services
// need. A nil FileStore disables uploads.
type FileStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// storeAdapter narrows *storage.Storage to FileStore.
type storeAdapter struct {
	storage *storage.Storage
}

// NewFileStore wraps the object storage for use by the services.
// Returns nil when s is nil so callers can pass the absence through.
func NewFileStore(s *storage.Storage) FileStore {
	if s == nil {
		return nil
	}
	return &storeAdapter{storage: s}
}

func (a *storeAdapter) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return a.storage.Put(ctx, key, r, size, contentType)
}

func (a *storeAdapter) Delete(ctx context.Context, key string) error {
	return a.storage.Delete(ctx, key)
}

// putUpload stores one upload under the given prefix and returns its key.
func putUpload(ctx context.Context, files FileStore, prefix string, upload Upload) (string, error) {
	key := storage.NewKey(prefix, upload.Filename)
	contentType := mime.TypeByExtension(filepath.Ext(upload.Filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	reader := bytes.NewReader(upload.Data)
	if err := files.Put(ctx, key, reader, int64(len(upload.Data)), contentType); err != nil {
		return "", err
	}
	return key, nil
}

// putUploads stores a batch of uploads and returns their keys.
func putUploads(ctx context.Context, files FileStore, prefix string, uploads []Upload) ([]string, error) {
	keys := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		key, err := putUpload(ctx, files, prefix, upload)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
