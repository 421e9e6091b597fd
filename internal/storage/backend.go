package storage

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by a Backend when a key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a durable string key-value namespace.
type Backend interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
	Close() error
}

// Batcher is implemented by backends that can write several keys at once.
type Batcher interface {
	SetMany(values map[string]string) error
}

// Memory is an in-process Backend. Failures can be injected for tests.
type Memory struct {
	mu   sync.Mutex
	data map[string]string

	// GetErr and SetErr, when non-nil, are returned by every Get and Set.
	GetErr error
	SetErr error

	writes  int
	batches int
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = value
	m.writes++
	return nil
}

func (m *Memory) SetMany(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	for k, v := range values {
		m.data[k] = v
		m.writes++
	}
	m.batches++
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Writes returns how many successful key writes have happened.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Batches returns how many SetMany calls have succeeded.
func (m *Memory) Batches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batches
}
