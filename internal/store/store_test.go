package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"campus-portal-api/internal/apperr"
	"campus-portal-api/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := pool.Ping(ctx); err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	s := New(pool)
	if err := s.Migrate(ctx, "../../db/migrations/001_init.sql"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestAppointmentRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	a := model.Appointment{
		ID: uuid.NewString(), StudentID: "s1", StudentName: "John Doe",
		LecturerID: "l1", LecturerName: "Dr. Smith", Title: "Project",
		Date: "2025-05-06", StartTime: "14:00", EndTime: "14:30",
		Status: model.AppointmentPending, CreatedAt: now,
	}
	t.Cleanup(func() { s.DeleteAppointment(ctx, a.ID) })

	if err := s.PutAppointment(ctx, a); err != nil {
		t.Fatalf("put: %v", err)
	}
	a.Status = model.AppointmentAccepted
	if err := s.PutAppointment(ctx, a); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := s.GetAppointment(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("createdAt: %v != %v", got.CreatedAt, a.CreatedAt)
	}
	got.CreatedAt = a.CreatedAt
	if got != a {
		t.Fatalf("got %+v, want %+v", got, a)
	}

	ok, err := s.DeleteAppointment(ctx, a.ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if ok, _ := s.DeleteAppointment(ctx, a.ID); ok {
		t.Fatal("second delete reported a removal")
	}
	if _, err := s.GetAppointment(ctx, a.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestIssueListOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	ids := []string{uuid.NewString(), uuid.NewString()}
	for i, id := range ids {
		is := model.Issue{
			ID: id, Title: "t", Description: "d", Category: "Security", Location: "Gate",
			StudentID: "s1", Status: model.IssueSubmitted,
			CreatedAt: now, UpdatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := s.PutIssue(ctx, is); err != nil {
			t.Fatalf("put: %v", err)
		}
		t.Cleanup(func() { s.DeleteIssue(ctx, id) })
	}
	// rewriting the first keeps its position
	first, _ := s.GetIssue(ctx, ids[0])
	first.Status = model.IssueAddressed
	if err := s.PutIssue(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	list, err := s.ListIssues(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	pos := map[string]int{}
	for i, is := range list {
		pos[is.ID] = i
	}
	if pos[ids[0]] > pos[ids[1]] {
		t.Fatal("upsert moved the issue to the end")
	}
}

func TestNotificationRoles(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	n := model.Notification{
		ID: uuid.NewString(), Title: "Exams", Content: "Schedule out",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond), CreatedBy: "Admin",
		Type: model.NotificationAnnouncement, Status: model.NotificationUnread,
		TargetRoles: []model.Role{model.RoleStudent, model.RoleLecturer},
	}
	t.Cleanup(func() { s.DeleteNotification(ctx, n.ID) })
	if err := s.PutNotification(ctx, n); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.GetNotification(ctx, n.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.TargetRoles) != 2 || !got.Targets(model.RoleLecturer) || got.Targets(model.RoleAdmin) {
		t.Fatalf("roles: %v", got.TargetRoles)
	}
	if !got.CreatedAt.Equal(n.CreatedAt) {
		t.Fatalf("createdAt: %v != %v", got.CreatedAt, n.CreatedAt)
	}
}
