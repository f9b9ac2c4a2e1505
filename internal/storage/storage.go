package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

var (
	ErrBlobNotFound   = errors.New("blob not found")
	ErrInvalidBlobKey = errors.New("invalid blob key")
)

// BlobStore keeps photo bytes keyed by their generated filename.
type BlobStore interface {
	Save(ctx context.Context, name string, data io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete succeeds when the blob is already gone.
	Delete(ctx context.Context, name string) error
}

func validateKey(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidBlobKey
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return ErrInvalidBlobKey
	}
	return nil
}
