// Package seed loads the demo records the portal ships with. Records are
// written straight to the stores so no notifications are derived.
package seed

import (
	"context"
	"fmt"
	"time"

	"campus-portal-api/internal/model"
	"campus-portal-api/internal/workflow"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func Appointments() []model.Appointment {
	return []model.Appointment{
		{
			ID: "1", StudentID: "s1", StudentName: "John Doe", LecturerID: "l1", LecturerName: "Dr. Thabo Mokoena",
			Title: "Project Discussion", Description: "Discuss progress on final year project",
			Date: "2025-05-05", StartTime: "10:00", EndTime: "10:30",
			Status: model.AppointmentPending, CreatedAt: at("2025-04-25T10:00:00Z"),
		},
		{
			ID: "2", StudentID: "s1", StudentName: "John Doe", LecturerID: "l2", LecturerName: "Dr. Priya Naidoo",
			Title: "Course Clarification", Description: "Need help understanding advanced topics in AI",
			Date: "2025-05-06", StartTime: "14:00", EndTime: "14:30",
			Status: model.AppointmentAccepted, CreatedAt: at("2025-04-24T08:30:00Z"),
		},
		{
			ID: "3", StudentID: "s2", StudentName: "Jane Smith", LecturerID: "l1", LecturerName: "Dr. Thabo Mokoena",
			Title: "Assignment Extension Request", Description: "Request for assignment deadline extension due to medical reasons",
			Date: "2025-05-03", StartTime: "11:00", EndTime: "11:15",
			Status: model.AppointmentDeclined, CreatedAt: at("2025-04-23T15:45:00Z"),
		},
	}
}

func Issues() []model.Issue {
	return []model.Issue{
		{
			ID: "1", Title: "Computer Lab Access Issue",
			Description: "Unable to access the computer lab in the CS building after 7pm.",
			Category:    "Campus Facilities", Location: "CS Building, 3rd Floor",
			StudentID: "s1", StudentName: "Siyabonga Dlamini", Status: model.IssueSubmitted,
			CreatedAt: at("2025-04-20T10:30:00Z"), UpdatedAt: at("2025-04-20T10:30:00Z"),
		},
		{
			ID: "2", Title: "Library WiFi Not Working",
			Description: "The WiFi in the main library isn't connecting properly during peak hours.",
			Category:    "Campus WiFi", Location: "Library, 2nd Floor",
			StudentID: "s1", StudentName: "Siyabonga Dlamini", Status: model.IssueWillAddress,
			CreatedAt: at("2025-04-18T14:15:00Z"), UpdatedAt: at("2025-04-19T09:22:00Z"),
			Comments: "IT department has been notified and will check the router capacity.",
		},
		{
			ID: "3", Title: "Classroom Projector Malfunction",
			Description: "The projector in room 301 keeps shutting off during presentations.",
			Category:    "Lecture Halls", Location: "Engineering Building, Room 301",
			StudentID: "s2", StudentName: "Ayesha Patel", Status: model.IssueAddressed,
			CreatedAt: at("2025-04-15T11:30:00Z"), UpdatedAt: at("2025-04-17T16:45:00Z"),
			Comments: "Projector has been replaced with a new one.",
		},
	}
}

func Notifications() []model.Notification {
	all := []model.Role{model.RoleStudent, model.RoleLecturer, model.RoleAdmin}
	return []model.Notification{
		{
			ID: "1", Title: "System Maintenance",
			Content:   "The system will be under maintenance on Saturday from 10 PM to 2 AM.",
			CreatedAt: at("2025-04-20T10:30:00Z"), CreatedBy: "Admin",
			Type: model.NotificationAnnouncement, Status: model.NotificationUnread, TargetRoles: all,
		},
		{
			ID: "2", Title: "New Course Registration",
			Content:   "Registration for 2025 courses is now open.",
			CreatedAt: at("2025-04-18T14:15:00Z"), CreatedBy: "Registrar Office",
			Type: model.NotificationAnnouncement, Status: model.NotificationUnread,
			TargetRoles: []model.Role{model.RoleStudent},
		},
		{
			ID: "3", Title: "Faculty Meeting",
			Content:   "There will be a faculty meeting on Friday at 3 PM in Room 302.",
			CreatedAt: at("2025-04-17T09:45:00Z"), CreatedBy: "Dean's Office",
			Type: model.NotificationAnnouncement, Status: model.NotificationRead,
			TargetRoles: []model.Role{model.RoleLecturer}, Faculty: "Computer Science",
		},
		{
			ID: "4", Title: "Appointment Request Accepted",
			Content:   "Your appointment request with Dr. Naidoo on April 25th has been accepted.",
			CreatedAt: at("2025-04-16T16:20:00Z"), CreatedBy: "Appointment System",
			Type: model.NotificationAppointment, Status: model.NotificationUnread,
			TargetRoles: []model.Role{model.RoleStudent},
		},
		{
			ID: "5", Title: "Your Issue Report Status Update",
			Content:   "Your reported issue about the computer lab has been marked as 'Will be addressed'.",
			CreatedAt: at("2025-04-15T11:00:00Z"), CreatedBy: "IT Support",
			Type: model.NotificationIssue, Status: model.NotificationRead,
			TargetRoles: []model.Role{model.RoleStudent},
		},
	}
}

// Load writes every demo record. Existing records with the same ids are
// replaced.
func Load(ctx context.Context, repo workflow.Repository) error {
	for _, a := range Appointments() {
		if err := repo.PutAppointment(ctx, a); err != nil {
			return fmt.Errorf("seed appointment %s: %w", a.ID, err)
		}
	}
	for _, is := range Issues() {
		if err := repo.PutIssue(ctx, is); err != nil {
			return fmt.Errorf("seed issue %s: %w", is.ID, err)
		}
	}
	for _, n := range Notifications() {
		if err := repo.PutNotification(ctx, n); err != nil {
			return fmt.Errorf("seed notification %s: %w", n.ID, err)
		}
	}
	return nil
}
