// Package memstore keeps the entity stores in process memory. It is the
// default backend and the one the workflow tests run against.
package memstore

import (
	"context"
	"sync"

	"campus-portal-api/internal/apperr"
	"campus-portal-api/internal/model"
	"campus-portal-api/internal/workflow"
)

var _ workflow.Repository = (*Store)(nil)

// table is a keyed collection that remembers first-insert order.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) delete(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

type Store struct {
	mu            sync.RWMutex
	appointments  table[model.Appointment]
	issues        table[model.Issue]
	notifications table[model.Notification]
}

func New() *Store {
	return &Store{
		appointments:  newTable[model.Appointment](),
		issues:        newTable[model.Issue](),
		notifications: newTable[model.Notification](),
	}
}

func (s *Store) GetAppointment(_ context.Context, id string) (model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appointments.get(id)
	if !ok {
		return model.Appointment{}, apperr.NotFound("appointment", id)
	}
	return a, nil
}

func (s *Store) PutAppointment(_ context.Context, a model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments.put(a.ID, a)
	return nil
}

func (s *Store) DeleteAppointment(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appointments.delete(id), nil
}

func (s *Store) ListAppointments(context.Context) ([]model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointments.list(), nil
}

func (s *Store) GetIssue(_ context.Context, id string) (model.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	is, ok := s.issues.get(id)
	if !ok {
		return model.Issue{}, apperr.NotFound("issue", id)
	}
	return is, nil
}

func (s *Store) PutIssue(_ context.Context, is model.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues.put(is.ID, is)
	return nil
}

func (s *Store) DeleteIssue(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issues.delete(id), nil
}

func (s *Store) ListIssues(context.Context) ([]model.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issues.list(), nil
}

// Notification target roles are copied in and out so callers never share
// the stored slice.

func (s *Store) GetNotification(_ context.Context, id string) (model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications.get(id)
	if !ok {
		return model.Notification{}, apperr.NotFound("notification", id)
	}
	return cloneNotification(n), nil
}

func (s *Store) PutNotification(_ context.Context, n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications.put(n.ID, cloneNotification(n))
	return nil
}

func (s *Store) DeleteNotification(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifications.delete(id), nil
}

func (s *Store) ListNotifications(context.Context) ([]model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.notifications.list()
	for i := range out {
		out[i] = cloneNotification(out[i])
	}
	return out, nil
}

func cloneNotification(n model.Notification) model.Notification {
	n.TargetRoles = append([]model.Role(nil), n.TargetRoles...)
	return n
}
