// Package cache memoizes role-scoped notification lists between writes.
package cache

import (
	"context"
	"sync"

	"campus-portal-api/internal/model"
)

// Notifications stores filtered notification lists by key. Flush drops
// every entry; it is called after any notification write.
type Notifications interface {
	Get(ctx context.Context, key string) ([]model.Notification, bool, error)
	Set(ctx context.Context, key string, list []model.Notification) error
	Flush(ctx context.Context) error
}

// Memory is a process-local cache with no expiry.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]model.Notification
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]model.Notification)}
}

func (m *Memory) Get(_ context.Context, key string) ([]model.Notification, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return cloneList(list), true, nil
}

func (m *Memory) Set(_ context.Context, key string, list []model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = cloneList(list)
	return nil
}

func (m *Memory) Flush(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}

func cloneList(list []model.Notification) []model.Notification {
	out := make([]model.Notification, len(list))
	for i, n := range list {
		n.TargetRoles = append([]model.Role(nil), n.TargetRoles...)
		out[i] = n
	}
	return out
}
