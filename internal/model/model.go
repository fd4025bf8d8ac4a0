package model

import "time"

type AppointmentStatus string

const (
	AppointmentPending  AppointmentStatus = "pending"
	AppointmentAccepted AppointmentStatus = "accepted"
	AppointmentDeclined AppointmentStatus = "declined"
)

type IssueStatus string

const (
	IssueSubmitted      IssueStatus = "submitted"
	IssueWillAddress    IssueStatus = "will-address"
	IssueAddressed      IssueStatus = "addressed"
	IssueWillNotAddress IssueStatus = "will-not-address"
)

// Valid reports whether s is one of the four known issue statuses.
func (s IssueStatus) Valid() bool {
	switch s {
	case IssueSubmitted, IssueWillAddress, IssueAddressed, IssueWillNotAddress:
		return true
	}
	return false
}

// Label is the human-readable form used in notifications.
func (s IssueStatus) Label() string {
	switch s {
	case IssueSubmitted:
		return "Submitted"
	case IssueWillAddress:
		return "Will be addressed"
	case IssueAddressed:
		return "Has been addressed"
	case IssueWillNotAddress:
		return "Will not be addressed"
	default:
		return string(s)
	}
}

type NotificationType string

const (
	NotificationAnnouncement NotificationType = "announcement"
	NotificationAppointment  NotificationType = "appointment"
	NotificationIssue        NotificationType = "issue"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationAnnouncement, NotificationAppointment, NotificationIssue:
		return true
	}
	return false
}

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

func (s NotificationStatus) Valid() bool {
	return s == NotificationUnread || s == NotificationRead
}

// SystemAuthor is the createdBy value of fan-out notifications.
const SystemAuthor = "System"

// Appointment is a student's meeting request with a lecturer. Date is a
// calendar date (2006-01-02); StartTime and EndTime are times of day (15:04).
type Appointment struct {
	ID           string            `json:"id"`
	StudentID    string            `json:"studentId"`
	StudentName  string            `json:"studentName"`
	LecturerID   string            `json:"lecturerId"`
	LecturerName string            `json:"lecturerName"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Date         string            `json:"date"`
	StartTime    string            `json:"startTime"`
	EndTime      string            `json:"endTime"`
	Status       AppointmentStatus `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// Issue is a student-reported campus problem.
type Issue struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Location    string      `json:"location"`
	StudentID   string      `json:"studentId"`
	StudentName string      `json:"studentName"`
	Status      IssueStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Comments    string      `json:"comments,omitempty"`
}

// Notification is an in-app notice addressed to one or more roles.
// Faculty is stored but never used to filter visibility.
type Notification struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
	Type        NotificationType   `json:"type"`
	Status      NotificationStatus `json:"status"`
	Faculty     string             `json:"faculty,omitempty"`
	TargetRoles []Role             `json:"targetRoles"`
}

// Targets reports whether r is among the notification's target roles.
func (n *Notification) Targets(r Role) bool {
	for _, t := range n.TargetRoles {
		if t == r {
			return true
		}
	}
	return false
}

// IssueCategories is the fixed catalog an issue category must come from.
var IssueCategories = []string{
	"Campus Facilities",
	"Campus WiFi",
	"Lecture Halls",
	"Student Residences",
	"Security",
	"Software Issues",
	"Other",
}

// ValidIssueCategory reports whether c is in the catalog.
func ValidIssueCategory(c string) bool {
	for _, v := range IssueCategories {
		if v == c {
			return true
		}
	}
	return false
}
