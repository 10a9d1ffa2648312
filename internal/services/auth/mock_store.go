package auth

import "sync"

// MockStore is an in-memory auth store for testing. It is safe for
// concurrent use so refresh tests can share one.
type MockStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{tokens: make(map[string]string)}
}

func (m *MockStore) SetToken(serviceID string, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[NormalizeServiceID(serviceID)] = token
	return nil
}

func (m *MockStore) GetToken(serviceID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[NormalizeServiceID(serviceID)]
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (m *MockStore) DeleteToken(serviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := NormalizeServiceID(serviceID)
	if _, ok := m.tokens[key]; !ok {
		return ErrTokenNotFound
	}
	delete(m.tokens, key)
	return nil
}
