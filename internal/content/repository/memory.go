package repository

import (
	"context"
	"sync"

	"github.com/knst/site-services/internal/content"
)

// MemoryRepo keeps the content document in memory. Used for unit tests and
// as the fallback store when MongoDB is unreachable in local development.
type MemoryRepo struct {
	mu       sync.RWMutex
	doc      content.Document
	watchers map[int]func(content.Document)
	nextID   int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{watchers: map[int]func(content.Document){}}
}

func (m *MemoryRepo) Load(ctx context.Context) (content.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return nil, ErrNotFound
	}
	return m.doc.Clone(), nil
}

func (m *MemoryRepo) WritePath(ctx context.Context, p content.Path, value any) error {
	m.mu.Lock()
	if m.doc == nil {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.doc.Set(p, value)
	snap := m.doc.Clone()
	fns := m.watcherList()
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snap.Clone())
	}
	return nil
}

func (m *MemoryRepo) WriteFull(ctx context.Context, doc content.Document) error {
	m.mu.Lock()
	m.doc = doc.Clone()
	snap := m.doc.Clone()
	fns := m.watcherList()
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snap.Clone())
	}
	return nil
}

func (m *MemoryRepo) Watch(ctx context.Context, fn func(content.Document)) (func(), error) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.watchers[id] = fn
	var initial content.Document
	if m.doc != nil {
		initial = m.doc.Clone()
	}
	m.mu.Unlock()

	// fire once immediately with current state, matching the live store
	if initial != nil {
		fn(initial)
	}

	// stop is idempotent and also releases the context-watching goroutine,
	// so a stop() under a long-lived context doesn't leak it
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.watchers, id)
			m.mu.Unlock()
			close(done)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-done:
		}
	}()
	return stop, nil
}

// watcherList snapshots registered callbacks; caller holds the lock.
func (m *MemoryRepo) watcherList() []func(content.Document) {
	fns := make([]func(content.Document), 0, len(m.watchers))
	for _, fn := range m.watchers {
		fns = append(fns, fn)
	}
	return fns
}
