// Package query serves role-scoped read views over the entity stores.
package query

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"campus-portal-api/internal/apperr"
	"campus-portal-api/internal/cache"
	"campus-portal-api/internal/model"
	"campus-portal-api/internal/notify"
	"campus-portal-api/internal/policy"
)

// Reader is the read side of the entity stores.
type Reader interface {
	GetAppointment(ctx context.Context, id string) (model.Appointment, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	GetIssue(ctx context.Context, id string) (model.Issue, error)
	ListIssues(ctx context.Context) ([]model.Issue, error)
	ListNotifications(ctx context.Context) ([]model.Notification, error)
}

type Service struct {
	repo   Reader
	cache  cache.Notifications
	// writes counts NotificationsChanged calls; a list computed across a
	// write is not cached. mu orders cache fills against flushes.
	mu     sync.Mutex
	writes atomic.Uint64
}

// New builds the query service. A nil cache recomputes every list.
func New(repo Reader, c cache.Notifications) *Service {
	return &Service{repo: repo, cache: c}
}

func (s *Service) ListAppointments(ctx context.Context, actor model.Actor) ([]model.Appointment, error) {
	all, err := s.repo.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(a *model.Appointment) bool { return policy.CanViewAppointment(actor, a) }), nil
}

// GetAppointment hides records the actor may not see behind not found.
func (s *Service) GetAppointment(ctx context.Context, actor model.Actor, id string) (model.Appointment, error) {
	a, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}
	if !policy.CanViewAppointment(actor, &a) {
		return model.Appointment{}, apperr.NotFound("appointment", id)
	}
	return a, nil
}

func (s *Service) ListIssues(ctx context.Context, actor model.Actor) ([]model.Issue, error) {
	all, err := s.repo.ListIssues(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(is *model.Issue) bool { return policy.CanViewIssue(actor, is) }), nil
}

func (s *Service) GetIssue(ctx context.Context, actor model.Actor, id string) (model.Issue, error) {
	is, err := s.repo.GetIssue(ctx, id)
	if err != nil {
		return model.Issue{}, err
	}
	if !policy.CanViewIssue(actor, &is) {
		return model.Issue{}, apperr.NotFound("issue", id)
	}
	return is, nil
}

// ListNotifications returns the notifications targeted at the actor's role.
// Cache errors fall back to recomputing.
func (s *Service) ListNotifications(ctx context.Context, actor model.Actor) ([]model.Notification, error) {
	if actor == nil {
		return []model.Notification{}, nil
	}
	key := string(actor.Role()) + ":" + actor.ActorID()
	if s.cache != nil {
		list, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Printf("notification cache get: %v", err)
		} else if ok {
			return list, nil
		}
	}

	seen := s.writes.Load()
	all, err := s.repo.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}
	out := filter(all, func(n *model.Notification) bool { return policy.CanViewNotification(actor, n) })
	if s.cache != nil {
		s.mu.Lock()
		if s.writes.Load() == seen {
			if err := s.cache.Set(ctx, key, out); err != nil {
				log.Printf("notification cache set: %v", err)
			}
		}
		s.mu.Unlock()
	}
	return out, nil
}

func (s *Service) UnreadCount(ctx context.Context, actor model.Actor) (int, error) {
	list, err := s.ListNotifications(ctx, actor)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, x := range list {
		if x.Status == model.NotificationUnread {
			n++
		}
	}
	return n, nil
}

// The service observes the workflow engine so cached lists are dropped
// after every notification write.

func (s *Service) NotificationsChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.Flush(context.Background()); err != nil {
		log.Printf("notification cache flush: %v", err)
	}
}

func (s *Service) Transitioned(string, string, string) {}

func (s *Service) FanoutFailed(notify.Kind, error) {}

func filter[T any](all []T, keep func(*T) bool) []T {
	out := make([]T, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out
}
