package handler

import (
	"context"

	"campus-portal-api/internal/directory"
)

func (h *Handler) ListLecturers(ctx context.Context, _ *Empty) (*ListLecturersResponse, error) {
	if _, err := actor(ctx); err != nil {
		return nil, err
	}
	return &ListLecturersResponse{Lecturers: directory.Lecturers()}, nil
}

func (h *Handler) GetTimetable(ctx context.Context, req *GetTimetableRequest) (*GetTimetableResponse, error) {
	if _, err := actor(ctx); err != nil {
		return nil, err
	}
	return &GetTimetableResponse{
		Faculty:   req.Faculty,
		TimeSlots: directory.Timetable(req.Faculty),
		Faculties: directory.Faculties(),
	}, nil
}
