// Package workflow applies the appointment and issue state machines and
// emits the notifications their transitions imply.
package workflow

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"campus-portal-api/internal/model"
	"campus-portal-api/internal/notify"
)

// AppointmentRepo is the keyed appointment collection. Get returns an
// apperr not-found error for unknown ids; List keeps insertion order.
type AppointmentRepo interface {
	GetAppointment(ctx context.Context, id string) (model.Appointment, error)
	PutAppointment(ctx context.Context, a model.Appointment) error
	DeleteAppointment(ctx context.Context, id string) (bool, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
}

// IssueRepo is the keyed issue collection.
type IssueRepo interface {
	GetIssue(ctx context.Context, id string) (model.Issue, error)
	PutIssue(ctx context.Context, i model.Issue) error
	DeleteIssue(ctx context.Context, id string) (bool, error)
	ListIssues(ctx context.Context) ([]model.Issue, error)
}

// NotificationRepo is the keyed notification collection.
type NotificationRepo interface {
	GetNotification(ctx context.Context, id string) (model.Notification, error)
	PutNotification(ctx context.Context, n model.Notification) error
	DeleteNotification(ctx context.Context, id string) (bool, error)
	ListNotifications(ctx context.Context) ([]model.Notification, error)
}

// Repository bundles the three entity stores.
type Repository interface {
	AppointmentRepo
	IssueRepo
	NotificationRepo
}

// Observer receives engine events synchronously, after the store write
// they describe has committed.
type Observer interface {
	// Transitioned reports an entity status change. from is empty on
	// creation; to is "deleted" on removal.
	Transitioned(entity, from, to string)
	NotificationsChanged()
	FanoutFailed(kind notify.Kind, err error)
}

const (
	entityAppointment = "appointment"
	entityIssue       = "issue"
	statusDeleted     = "deleted"
)

// Engine serializes every mutation so the authorize-then-write sequence is
// atomic with respect to other callers.
type Engine struct {
	mu        sync.Mutex
	repo      Repository
	clock     func() time.Time
	newID     func() string
	observers []Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithIDGenerator replaces uuid.NewString for new record ids.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// WithObserver registers o for engine events.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// New returns an engine writing to repo.
func New(repo Repository, opts ...Option) *Engine {
	e := &Engine{
		repo:  repo,
		clock: time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// now is truncated to microseconds so timestamps survive a postgres round trip.
func (e *Engine) now() time.Time {
	return e.clock().UTC().Truncate(time.Microsecond)
}

// emit runs the fan-out for ev. Failures are logged and reported to
// observers but never returned: the entity write has already committed.
func (e *Engine) emit(ctx context.Context, ev notify.Event) {
	n, err := notify.Derive(ev)
	if err != nil {
		e.fanoutFailed(ev.Kind, err)
		return
	}
	n.ID = e.newID()
	n.CreatedAt = e.now()
	if err := e.repo.PutNotification(ctx, n); err != nil {
		e.fanoutFailed(ev.Kind, err)
		return
	}
	e.notificationsChanged()
}

func (e *Engine) fanoutFailed(kind notify.Kind, err error) {
	log.Printf("fan-out %s: %v", kind, err)
	for _, o := range e.observers {
		o.FanoutFailed(kind, err)
	}
}

func (e *Engine) notificationsChanged() {
	for _, o := range e.observers {
		o.NotificationsChanged()
	}
}

func (e *Engine) transitioned(entity, from, to string) {
	for _, o := range e.observers {
		o.Transitioned(entity, from, to)
	}
}
