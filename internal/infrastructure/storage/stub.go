package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	fiscalapp "github.com/comunidad/backend/internal/application/fiscal"
)

var _ fiscalapp.ObjectStorageService = (*StubObjectStorage)(nil)

var errEmptyKey = errors.New("storage key is required")

// StubObjectStorage is an in-memory ObjectStorageService for
// development and tests. An object "exists" once MarkUploaded has been
// called for its key.
type StubObjectStorage struct {
	// BaseURL prefixes every generated upload/download URL.
	BaseURL string

	mu      sync.Mutex
	objects map[string]bool
}

func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string]bool),
	}
}

// MarkUploaded records an object as present, simulating a completed upload.
func (s *StubObjectStorage) MarkUploaded(storageKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = true
}

func (s *StubObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	return s.presign("/upload/", storageKey, expiresIn)
}

func (s *StubObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return s.presign("/download/", storageKey, expiresIn)
}

func (s *StubObjectStorage) presign(prefix, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errEmptyKey
	}
	return s.BaseURL + prefix + storageKey, time.Now().Add(expiresIn), nil
}

func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[storageKey], nil
}
