package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DiskStore writes receipts under a local directory served at baseURL.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) *DiskStore {
	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *DiskStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	err := os.MkdirAll(s.dir, 0o755)
	if err != nil {
		return "", fmt.Errorf("failed to create receipts directory: %w", err)
	}

	path := filepath.Join(s.dir, name)

	err = os.WriteFile(path, content, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

// MockStore records saves in memory for tests.
type MockStore struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func NewMockStore() *MockStore {
	return &MockStore{
		saved: make(map[string][]byte),
	}
}

func (s *MockStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saved[name] = content

	return "https://receipts.test/" + name, nil
}

func (s *MockStore) Saved(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saved[name]
}
