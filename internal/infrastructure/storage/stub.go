package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	statementapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/statement"
)

// MemoryObjectStorage is an in-memory ObjectStorageService for development
// and tests. Objects live for the process lifetime only, and download URLs
// are plain fakes — good enough to exercise the statement flow without a
// real S3-compatible backend.
type MemoryObjectStorage struct {
	// BaseURL is the base URL for generated download URLs.
	// Defaults to "https://storage.example.com" if not set.
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryObjectStorage creates a new MemoryObjectStorage
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure MemoryObjectStorage implements ObjectStorageService
var _ statementapp.ObjectStorageService = (*MemoryObjectStorage)(nil)

// Upload stores the object in memory
func (s *MemoryObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	if len(data) == 0 {
		return errors.New("object data is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[storageKey] = buf

	return nil
}

// GenerateDownloadURL generates a fake download URL for a stored object
func (s *MemoryObjectStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// ObjectExists reports whether the object was uploaded in this process
func (s *MemoryObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]

	return ok, nil
}

// Get returns a stored object's data, for tests
func (s *MemoryObjectStorage) Get(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}
