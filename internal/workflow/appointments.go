package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"campus-portal-api/internal/apperr"
	"campus-portal-api/internal/model"
	"campus-portal-api/internal/notify"
	"campus-portal-api/internal/policy"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// AppointmentInput carries the fields of a new appointment request.
// StudentID and StudentName default to the requesting actor.
type AppointmentInput struct {
	StudentID    string
	StudentName  string
	LecturerID   string
	LecturerName string
	Title        string
	Description  string
	Date         string
	StartTime    string
	EndTime      string
}

// AppointmentPatch holds the editable fields; nil leaves a field unchanged.
type AppointmentPatch struct {
	LecturerID   *string
	LecturerName *string
	Title        *string
	Description  *string
	Date         *string
	StartTime    *string
	EndTime      *string
}

func (e *Engine) CreateAppointment(ctx context.Context, actor model.Actor, in AppointmentInput) (model.Appointment, error) {
	if actor == nil {
		return model.Appointment{}, apperr.PermissionDenied(string(policy.ActionCreate), entityAppointment)
	}
	a := model.Appointment{
		StudentID:    strings.TrimSpace(in.StudentID),
		StudentName:  strings.TrimSpace(in.StudentName),
		LecturerID:   strings.TrimSpace(in.LecturerID),
		LecturerName: strings.TrimSpace(in.LecturerName),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Date:         strings.TrimSpace(in.Date),
		StartTime:    strings.TrimSpace(in.StartTime),
		EndTime:      strings.TrimSpace(in.EndTime),
		Status:       model.AppointmentPending,
	}
	if a.StudentID == "" {
		a.StudentID = actor.ActorID()
	}
	if a.StudentName == "" {
		a.StudentName = actor.ActorName()
	}
	if !policy.CanMutateAppointment(actor, &a, policy.ActionCreate) {
		return model.Appointment{}, apperr.PermissionDenied(string(policy.ActionCreate), entityAppointment)
	}
	if err := validateAppointment(&a); err != nil {
		return model.Appointment{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	a.ID = e.newID()
	a.CreatedAt = e.now()
	if err := e.repo.PutAppointment(ctx, a); err != nil {
		return model.Appointment{}, err
	}
	e.transitioned(entityAppointment, "", string(a.Status))
	e.emit(ctx, notify.Event{Kind: notify.AppointmentCreated, Appointment: &a})
	return a, nil
}

func (e *Engine) UpdateAppointment(ctx context.Context, actor model.Actor, id string, p AppointmentPatch) (model.Appointment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.repo.GetAppointment(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}
	if err := appointmentDenied(actor, cur, policy.ActionEdit); err != nil {
		return model.Appointment{}, err
	}

	next := cur
	setTrimmed(&next.LecturerID, p.LecturerID)
	setTrimmed(&next.LecturerName, p.LecturerName)
	setTrimmed(&next.Title, p.Title)
	setTrimmed(&next.Description, p.Description)
	setTrimmed(&next.Date, p.Date)
	setTrimmed(&next.StartTime, p.StartTime)
	setTrimmed(&next.EndTime, p.EndTime)
	if err := validateAppointment(&next); err != nil {
		return model.Appointment{}, err
	}
	if err := e.repo.PutAppointment(ctx, next); err != nil {
		return model.Appointment{}, err
	}
	return next, nil
}

// SetAppointmentStatus accepts or declines a pending request on behalf of
// its lecturer.
func (e *Engine) SetAppointmentStatus(ctx context.Context, actor model.Actor, id string, status model.AppointmentStatus) (model.Appointment, error) {
	var action policy.Action
	switch status {
	case model.AppointmentAccepted:
		action = policy.ActionAccept
	case model.AppointmentDeclined:
		action = policy.ActionDecline
	default:
		return model.Appointment{}, apperr.Validation("status must be accepted or declined, got %q", status)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.repo.GetAppointment(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}
	if err := appointmentDenied(actor, cur, action); err != nil {
		if errors.Is(err, apperr.ErrInvalidTransition) {
			return model.Appointment{}, apperr.InvalidTransition(entityAppointment, string(cur.Status), string(status))
		}
		return model.Appointment{}, err
	}

	next := cur
	next.Status = status
	if err := e.repo.PutAppointment(ctx, next); err != nil {
		return model.Appointment{}, err
	}
	e.transitioned(entityAppointment, string(cur.Status), string(status))
	e.emit(ctx, notify.Event{Kind: notify.AppointmentStatusChanged, Appointment: &next})
	return next, nil
}

// DeleteAppointment withdraws a pending request. The lecturer is told the
// request was canceled.
func (e *Engine) DeleteAppointment(ctx context.Context, actor model.Actor, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.repo.GetAppointment(ctx, id)
	if err != nil {
		return false, err
	}
	if err := appointmentDenied(actor, cur, policy.ActionDelete); err != nil {
		return false, err
	}
	ok, err := e.repo.DeleteAppointment(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.NotFound(entityAppointment, id)
	}
	e.transitioned(entityAppointment, string(cur.Status), statusDeleted)
	if cur.Status == model.AppointmentPending {
		e.emit(ctx, notify.Event{Kind: notify.AppointmentCanceled, Appointment: &cur})
	}
	return true, nil
}

// appointmentDenied returns nil when the action is allowed. When the actor
// would be allowed on a pending record, the status is what blocks it and the
// error is an invalid transition.
func appointmentDenied(actor model.Actor, a model.Appointment, action policy.Action) error {
	if policy.CanMutateAppointment(actor, &a, action) {
		return nil
	}
	probe := a
	probe.Status = model.AppointmentPending
	if policy.CanMutateAppointment(actor, &probe, action) {
		return apperr.InvalidTransition(entityAppointment, string(a.Status), string(action))
	}
	return apperr.PermissionDenied(string(action), entityAppointment)
}

func validateAppointment(a *model.Appointment) error {
	required := []struct{ name, value string }{
		{"studentId", a.StudentID},
		{"lecturerId", a.LecturerID},
		{"title", a.Title},
		{"date", a.Date},
		{"startTime", a.StartTime},
		{"endTime", a.EndTime},
	}
	for _, f := range required {
		if f.value == "" {
			return apperr.Validation("%s required", f.name)
		}
	}
	if _, err := time.Parse(dateLayout, a.Date); err != nil {
		return apperr.Validation("date must be YYYY-MM-DD, got %q", a.Date)
	}
	start, err := time.Parse(timeLayout, a.StartTime)
	if err != nil {
		return apperr.Validation("startTime must be HH:MM, got %q", a.StartTime)
	}
	end, err := time.Parse(timeLayout, a.EndTime)
	if err != nil {
		return apperr.Validation("endTime must be HH:MM, got %q", a.EndTime)
	}
	if !end.After(start) {
		return apperr.Validation("endTime must be after startTime")
	}
	return nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
