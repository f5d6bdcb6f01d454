package storage

import (
	"context"
	"errors"
	"path"
	"sync"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	"github.com/google/uuid"
)

// Ensure StubMediaStore implements MediaStore
var _ inventoryapp.MediaStore = (*StubMediaStore)(nil)

// StubMediaStore is an in-memory MediaStore for development and tests.
// Objects live in a map keyed exactly like the S3 implementation keys them.
type StubMediaStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// NewStubMediaStore creates a new in-memory media store
func NewStubMediaStore(baseURL string) *StubMediaStore {
	if baseURL == "" {
		baseURL = "https://media.local"
	}
	return &StubMediaStore{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

// Upload stores the payload in memory and returns its public URL
func (s *StubMediaStore) Upload(ctx context.Context, in inventoryapp.UploadInput) (inventoryapp.UploadResult, error) {
	if len(in.Data) == 0 {
		return inventoryapp.UploadResult{}, errors.New("upload payload is empty")
	}

	key := in.Key
	if key == "" {
		key = uuid.New().String()
	}
	objectKey := path.Join(in.Folder, key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[objectKey]; exists && !in.Overwrite {
		return inventoryapp.UploadResult{}, errors.New("object already exists: " + objectKey)
	}

	data := make([]byte, len(in.Data))
	copy(data, in.Data)
	s.objects[objectKey] = data

	return inventoryapp.UploadResult{
		PublicURL: s.baseURL + "/" + objectKey,
		Key:       objectKey,
	}, nil
}

// Object returns the stored payload for a key, if present
func (s *StubMediaStore) Object(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Len returns the number of stored objects
func (s *StubMediaStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
