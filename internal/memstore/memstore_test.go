package memstore

import (
	"context"
	"errors"
	"testing"

	"campus-portal-api/internal/apperr"
	"campus-portal-api/internal/model"
)

func TestAppointmentCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.GetAppointment(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	for _, id := range []string{"b", "a", "c"} {
		if err := s.PutAppointment(ctx, model.Appointment{ID: id, Title: "t-" + id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	// replace keeps position
	s.PutAppointment(ctx, model.Appointment{ID: "a", Title: "renamed"})

	list, _ := s.ListAppointments(ctx)
	if len(list) != 3 {
		t.Fatalf("expected 3, got %d", len(list))
	}
	if list[0].ID != "b" || list[1].ID != "a" || list[2].ID != "c" {
		t.Errorf("insertion order lost: %v %v %v", list[0].ID, list[1].ID, list[2].ID)
	}
	if list[1].Title != "renamed" {
		t.Errorf("replace not applied: %s", list[1].Title)
	}

	ok, _ := s.DeleteAppointment(ctx, "a")
	if !ok {
		t.Fatal("delete existing returned false")
	}
	ok, _ = s.DeleteAppointment(ctx, "a")
	if ok {
		t.Fatal("second delete returned true")
	}
	list, _ = s.ListAppointments(ctx)
	if len(list) != 2 || list[0].ID != "b" || list[1].ID != "c" {
		t.Errorf("unexpected list after delete: %+v", list)
	}

	// re-inserting a deleted id goes to the back
	s.PutAppointment(ctx, model.Appointment{ID: "a"})
	list, _ = s.ListAppointments(ctx)
	if list[2].ID != "a" {
		t.Errorf("expected re-inserted id last, got %s", list[2].ID)
	}
}

func TestIssueCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.PutIssue(ctx, model.Issue{ID: "1", Title: "Projector"})

	got, err := s.GetIssue(ctx, "1")
	if err != nil || got.Title != "Projector" {
		t.Fatalf("get: %+v %v", got, err)
	}
	if _, err := s.GetIssue(ctx, "2"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if ok, _ := s.DeleteIssue(ctx, "1"); !ok {
		t.Fatal("delete failed")
	}
	if list, _ := s.ListIssues(ctx); len(list) != 0 {
		t.Fatalf("expected empty, got %d", len(list))
	}
}

func TestNotificationsAreCopied(t *testing.T) {
	ctx := context.Background()
	s := New()
	roles := []model.Role{model.RoleStudent}
	s.PutNotification(ctx, model.Notification{ID: "1", TargetRoles: roles})
	roles[0] = model.RoleAdmin

	got, _ := s.GetNotification(ctx, "1")
	if got.TargetRoles[0] != model.RoleStudent {
		t.Fatal("stored roles aliased the caller's slice")
	}
	got.TargetRoles[0] = model.RoleLecturer

	list, _ := s.ListNotifications(ctx)
	if list[0].TargetRoles[0] != model.RoleStudent {
		t.Fatal("returned roles aliased the stored slice")
	}
}
