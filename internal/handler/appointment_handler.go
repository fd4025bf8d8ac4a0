package handler

import (
	"context"

	"campus-portal-api/internal/apperr"
	"campus-portal-api/internal/directory"
	"campus-portal-api/internal/workflow"
)

// lecturerName resolves the display name stored with an appointment.
// Bookings may only name lecturers from the directory.
func lecturerName(id string) (string, error) {
	if id == "" {
		return "", nil
	}
	l, ok := directory.LecturerByID(id)
	if !ok {
		return "", apperr.Validation("unknown lecturer %q", id)
	}
	return l.Name, nil
}

func (h *Handler) CreateAppointment(ctx context.Context, req *CreateAppointmentRequest) (*AppointmentResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	name, err := lecturerName(req.LecturerID)
	if err != nil {
		return nil, fail("CreateAppointment", err)
	}
	apt, err := h.engine.CreateAppointment(ctx, a, workflow.AppointmentInput{
		LecturerID:   req.LecturerID,
		LecturerName: name,
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	})
	if err != nil {
		return nil, fail("CreateAppointment", err)
	}
	return &AppointmentResponse{Appointment: apt}, nil
}

func (h *Handler) GetAppointment(ctx context.Context, req *IDRequest) (*AppointmentResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	apt, err := h.query.GetAppointment(ctx, a, req.ID)
	if err != nil {
		return nil, fail("GetAppointment", err)
	}
	return &AppointmentResponse{Appointment: apt}, nil
}

func (h *Handler) UpdateAppointment(ctx context.Context, req *UpdateAppointmentRequest) (*AppointmentResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	p := workflow.AppointmentPatch{
		LecturerID:  req.LecturerID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if req.LecturerID != nil {
		name, err := lecturerName(*req.LecturerID)
		if err != nil {
			return nil, fail("UpdateAppointment", err)
		}
		p.LecturerName = &name
	}
	apt, err := h.engine.UpdateAppointment(ctx, a, req.ID, p)
	if err != nil {
		return nil, fail("UpdateAppointment", err)
	}
	return &AppointmentResponse{Appointment: apt}, nil
}

func (h *Handler) DeleteAppointment(ctx context.Context, req *IDRequest) (*DeleteResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	ok, err := h.engine.DeleteAppointment(ctx, a, req.ID)
	if err != nil {
		return nil, fail("DeleteAppointment", err)
	}
	return &DeleteResponse{Deleted: ok}, nil
}

func (h *Handler) SetAppointmentStatus(ctx context.Context, req *SetAppointmentStatusRequest) (*AppointmentResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	apt, err := h.engine.SetAppointmentStatus(ctx, a, req.ID, req.Status)
	if err != nil {
		return nil, fail("SetAppointmentStatus", err)
	}
	return &AppointmentResponse{Appointment: apt}, nil
}

func (h *Handler) ListAppointments(ctx context.Context, _ *Empty) (*ListAppointmentsResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	list, err := h.query.ListAppointments(ctx, a)
	if err != nil {
		return nil, fail("ListAppointments", err)
	}
	return &ListAppointmentsResponse{Appointments: list}, nil
}
