package cart

import (
	"context"
	"sync"
)

// MemoryStorage is an in-process Storage, used by tests and single-binary
// dev runs where no redis is available.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.data[key] = cp
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MemoryNotifier fans cart-change signals out to in-process subscribers.
type MemoryNotifier struct {
	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{subs: make(map[string]map[int]chan struct{})}
}

func (n *MemoryNotifier) Publish(_ context.Context, cartID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[cartID] {
		select {
		case ch <- struct{}{}:
		default:
			// A pending signal already covers this change.
		}
	}
	return nil
}

func (n *MemoryNotifier) Subscribe(_ context.Context, cartID string) (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	if n.subs[cartID] == nil {
		n.subs[cartID] = make(map[int]chan struct{})
	}
	n.subs[cartID][id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if set, ok := n.subs[cartID]; ok {
			if _, ok := set[id]; ok {
				delete(set, id)
				close(ch)
			}
			if len(set) == 0 {
				delete(n.subs, cartID)
			}
		}
	}
	return ch, cancel
}
