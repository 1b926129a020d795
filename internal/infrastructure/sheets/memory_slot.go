package sheets

import (
	"context"
	"sync"
)

// MemorySlot is an in-process Slot implementation. It backs tests and
// ephemeral deployments where durability across restarts is not needed.
type MemorySlot struct {
	mu    sync.Mutex
	data  []byte
	found bool

	// FailNextSave makes the next Save return this error, for testing
	// the store's rollback discipline.
	FailNextSave error
}

// NewMemorySlot creates an empty in-memory slot
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Load implements Slot
func (m *MemorySlot) Load(ctx context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.found {
		return nil, false, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, true, nil
}

// Save implements Slot
func (m *MemorySlot) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNextSave != nil {
		err := m.FailNextSave
		m.FailNextSave = nil
		return err
	}
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.found = true
	return nil
}

// Delete implements Slot
func (m *MemorySlot) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.found = false
	return nil
}
