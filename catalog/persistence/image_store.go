package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dfryer1193/catalog/catalog/domain"
)

var _ domain.ImageStore = (*FileImageStore)(nil)

// FileImageStore implements domain.ImageStore on the local filesystem.
// Blobs live flat under one directory, named by the sha256 hex digest of
// their content plus the image extension, so identical uploads share one
// file.
type FileImageStore struct {
	dir string
}

// NewFileImageStore creates a FileImageStore rooted at dir. The directory is
// created on first write.
func NewFileImageStore(dir string) *FileImageStore {
	return &FileImageStore{
		dir: dir,
	}
}

// Put stores the image bytes under their content ref and returns the ref.
// Storing bytes that already exist is a no-op returning the same ref. The
// declared filename must carry the accepted extension.
//
// The whole payload is hashed up front: the content ref is not known until
// the final byte has been seen, so Put trades bounded memory for a simple
// atomic publish.
func (s *FileImageStore) Put(ctx context.Context, filename string, data []byte) (string, error) {
	if !strings.EqualFold(filepath.Ext(filename), domain.ImageExt) {
		return "", fmt.Errorf("image must be a %s file: %w", domain.ImageExt, domain.ErrInvalidInput)
	}

	sum := sha256.Sum256(data)
	ref := hex.EncodeToString(sum[:]) + domain.ImageExt
	path := filepath.Join(s.dir, ref)

	// Content-addressed: an existing blob with this name already holds
	// these exact bytes.
	if _, err := os.Stat(path); err == nil {
		return ref, nil
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	// Stage to a temp file and publish with an atomic rename so a partially
	// written blob is never observable under its final name. Concurrent
	// writers of the same content race harmlessly: both stage identical
	// bytes and the last rename wins.
	tmp, err := os.CreateTemp(s.dir, "upload-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to stage image: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close staged image: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to publish image: %w", err)
	}

	return ref, nil
}

// Get returns the bytes stored under ref, or domain.ErrNotFound when the
// ref is unknown. Refs that are not plain filenames (separators, "." or
// "..") are rejected as unknown rather than resolved outside the store
// directory.
func (s *FileImageStore) Get(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" || ref == "." || ref == ".." || filepath.Base(ref) != ref {
		return nil, fmt.Errorf("image %q: %w", ref, domain.ErrNotFound)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("image %q: %w", ref, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image %q: %w", ref, err)
	}

	return data, nil
}
