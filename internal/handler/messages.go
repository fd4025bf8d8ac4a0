package handler

import (
	"campus-portal-api/internal/directory"
	"campus-portal-api/internal/model"
)

type Empty struct{}

type IDRequest struct {
	ID string `json:"id"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// CreateAppointmentRequest names the lecturer by directory id; the stored
// lecturer name comes from the directory.
type CreateAppointmentRequest struct {
	LecturerID  string `json:"lecturerId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// UpdateAppointmentRequest carries the fields to change; absent fields
// are left alone.
type UpdateAppointmentRequest struct {
	ID          string  `json:"id"`
	LecturerID  *string `json:"lecturerId,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
}

type SetAppointmentStatusRequest struct {
	ID     string                  `json:"id"`
	Status model.AppointmentStatus `json:"status"`
}

type AppointmentResponse struct {
	Appointment model.Appointment `json:"appointment"`
}

type ListAppointmentsResponse struct {
	Appointments []model.Appointment `json:"appointments"`
}

type CreateIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
}

type UpdateIssueRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Location    *string `json:"location,omitempty"`
}

type UpdateIssueStatusRequest struct {
	ID       string            `json:"id"`
	Status   model.IssueStatus `json:"status"`
	Comments *string           `json:"comments,omitempty"`
}

type IssueResponse struct {
	Issue model.Issue `json:"issue"`
}

type ListIssuesResponse struct {
	Issues []model.Issue `json:"issues"`
}

type ListIssueCategoriesResponse struct {
	Categories []string `json:"categories"`
}

type CreateNotificationRequest struct {
	Title       string                 `json:"title"`
	Content     string                 `json:"content"`
	Type        model.NotificationType `json:"type,omitempty"`
	TargetRoles []model.Role           `json:"targetRoles"`
	Faculty     string                 `json:"faculty,omitempty"`
}

type UpdateNotificationRequest struct {
	ID          string                    `json:"id"`
	Title       *string                   `json:"title,omitempty"`
	Content     *string                   `json:"content,omitempty"`
	Type        *model.NotificationType   `json:"type,omitempty"`
	TargetRoles []model.Role              `json:"targetRoles,omitempty"`
	Faculty     *string                   `json:"faculty,omitempty"`
	Status      *model.NotificationStatus `json:"status,omitempty"`
}

type NotificationResponse struct {
	Notification model.Notification `json:"notification"`
}

type MarkAllNotificationsReadResponse struct {
	Updated int `json:"updated"`
}

type ListNotificationsResponse struct {
	Notifications []model.Notification `json:"notifications"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type ListLecturersResponse struct {
	Lecturers []directory.Lecturer `json:"lecturers"`
}

// GetTimetableRequest with an empty faculty lists the faculties only.
type GetTimetableRequest struct {
	Faculty string `json:"faculty"`
}

type GetTimetableResponse struct {
	Faculty   string               `json:"faculty"`
	TimeSlots []directory.TimeSlot `json:"timeSlots"`
	Faculties []string             `json:"faculties"`
}
