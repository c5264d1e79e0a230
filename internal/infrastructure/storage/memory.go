package storage

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"
)

// MemoryDocumentStore keeps documents in process memory. It is used when no
// bucket is configured and in tests.
type MemoryDocumentStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
	expiry  time.Duration
}

type memoryObject struct {
	contentType string
	data        []byte
}

// NewMemoryDocumentStore creates an empty store. PresignGet links point
// at baseURL followed by the key.
func NewMemoryDocumentStore(baseURL string) *MemoryDocumentStore {
	return &MemoryDocumentStore{
		objects: make(map[string]memoryObject),
		baseURL: baseURL,
		expiry:  defaultPresignExpiry,
	}
}

// Put stores a copy of data
func (m *MemoryDocumentStore) Put(_ context.Context, key, contentType string, data []byte) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{contentType: contentType, data: append([]byte(nil), data...)}
	return nil
}

// Get returns a copy of the stored object
func (m *MemoryDocumentStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return append([]byte(nil), obj.data...), nil
}

// Exists reports whether key was stored
func (m *MemoryDocumentStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

// PresignGet returns a plain link; nothing is signed in memory
func (m *MemoryDocumentStore) PresignGet(_ context.Context, key string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	link, err := url.JoinPath(m.baseURL, key)
	if err != nil {
		return "", time.Time{}, err
	}
	return link, time.Now().Add(m.expiry), nil
}

// Len returns the number of stored objects
func (m *MemoryDocumentStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

var _ DocumentStore = (*MemoryDocumentStore)(nil)
