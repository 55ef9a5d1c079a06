package kv

import "sync"

// Memory is an in-process backend used by tests and dry runs
type Memory struct {
	mu   sync.Mutex
	data map[string]string

	// Fail, when set, makes every data operation return it
	Fail error
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Init() error  { return nil }
func (m *Memory) Load() error  { return nil }
func (m *Memory) Close() error { return nil }

func (m *Memory) Location() string { return "memory" }

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return "", false, m.Fail
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	delete(m.data, key)
	return nil
}
