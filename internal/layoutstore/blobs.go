package layoutstore

import (
	"errors"
	"sort"
	"sync"
)

// Blobs is the key-value store the layout store persists into. Each home
// name maps to one opaque encoded layout.
type Blobs interface {
	// Get returns the blob for home. ok is false when none is stored.
	Get(home string) (blob []byte, ok bool, err error)

	// Put stores blob for home, replacing any previous value.
	Put(home string, blob []byte) error

	// Delete removes the blob for home. Deleting a missing home is not an error.
	Delete(home string) error

	// Homes lists every home with a stored blob, sorted by name.
	Homes() ([]string, error)
}

// ErrUnavailable is returned by MemoryBlobs when failure injection is on.
var ErrUnavailable = errors.New("layoutstore: blob store unavailable")

// MemoryBlobs is an in-memory Blobs for tests. Setting FailPuts or
// FailGets makes the corresponding calls return ErrUnavailable.
type MemoryBlobs struct {
	mu       sync.Mutex
	data     map[string][]byte
	puts     int
	FailPuts bool
	FailGets bool
}

// NewMemoryBlobs returns an empty MemoryBlobs.
func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{data: make(map[string][]byte)}
}

func (m *MemoryBlobs) Get(home string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGets {
		return nil, false, ErrUnavailable
	}
	b, ok := m.data[home]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *MemoryBlobs) Put(home string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPuts {
		return ErrUnavailable
	}
	m.data[home] = append([]byte(nil), blob...)
	m.puts++
	return nil
}

func (m *MemoryBlobs) Delete(home string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, home)
	return nil
}

func (m *MemoryBlobs) Homes() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	homes := make([]string, 0, len(m.data))
	for h := range m.data {
		homes = append(homes, h)
	}
	sort.Strings(homes)
	return homes, nil
}

// Puts returns how many successful Put calls have been made.
func (m *MemoryBlobs) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}
