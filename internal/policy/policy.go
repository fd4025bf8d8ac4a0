// Package policy decides which records an actor may see and which
// mutations it may perform on them. All functions are pure.
package policy

import "campus-portal-api/internal/model"

type Action string

const (
	ActionCreate        Action = "create"
	ActionEdit          Action = "edit"
	ActionDelete        Action = "delete"
	ActionAccept        Action = "accept"
	ActionDecline       Action = "decline"
	ActionAdvanceStatus Action = "advance-status"
	ActionMarkRead      Action = "mark-read"
)

// CanView dispatches on the entity type. Unknown entities are never visible.
func CanView(a model.Actor, entity any) bool {
	switch e := entity.(type) {
	case *model.Appointment:
		return CanViewAppointment(a, e)
	case *model.Issue:
		return CanViewIssue(a, e)
	case *model.Notification:
		return CanViewNotification(a, e)
	}
	return false
}

// CanMutate dispatches on the entity type. Unknown entities are never mutable.
func CanMutate(a model.Actor, entity any, action Action) bool {
	switch e := entity.(type) {
	case *model.Appointment:
		return CanMutateAppointment(a, e, action)
	case *model.Issue:
		return CanMutateIssue(a, e, action)
	case *model.Notification:
		return CanMutateNotification(a, e, action)
	}
	return false
}

func CanViewAppointment(a model.Actor, appt *model.Appointment) bool {
	if a == nil || appt == nil {
		return false
	}
	switch a.Role() {
	case model.RoleStudent:
		return appt.StudentID == a.ActorID()
	case model.RoleLecturer:
		return appt.LecturerID == a.ActorID()
	case model.RoleAdmin:
		return true
	}
	return false
}

// CanMutateAppointment covers create (by the student the request is for),
// edit/delete (owning student, pending only) and accept/decline (owning
// lecturer, pending only).
func CanMutateAppointment(a model.Actor, appt *model.Appointment, action Action) bool {
	if a == nil || appt == nil {
		return false
	}
	switch action {
	case ActionCreate:
		return a.Role() == model.RoleStudent && appt.StudentID == a.ActorID()
	case ActionEdit, ActionDelete:
		return a.Role() == model.RoleStudent &&
			appt.StudentID == a.ActorID() &&
			appt.Status == model.AppointmentPending
	case ActionAccept, ActionDecline:
		return a.Role() == model.RoleLecturer &&
			appt.LecturerID == a.ActorID() &&
			appt.Status == model.AppointmentPending
	}
	return false
}

func CanViewIssue(a model.Actor, issue *model.Issue) bool {
	if a == nil || issue == nil {
		return false
	}
	if a.Role() == model.RoleStudent {
		return issue.StudentID == a.ActorID()
	}
	return a.Role().Staff()
}

// CanMutateIssue lets staff advance status from any state; students only
// touch their own reports while still submitted.
func CanMutateIssue(a model.Actor, issue *model.Issue, action Action) bool {
	if a == nil || issue == nil {
		return false
	}
	switch action {
	case ActionCreate:
		return a.Role() == model.RoleStudent && issue.StudentID == a.ActorID()
	case ActionEdit, ActionDelete:
		return a.Role() == model.RoleStudent &&
			issue.StudentID == a.ActorID() &&
			issue.Status == model.IssueSubmitted
	case ActionAdvanceStatus:
		return a.Role().Staff()
	}
	return false
}

func CanViewNotification(a model.Actor, n *model.Notification) bool {
	if a == nil || n == nil {
		return false
	}
	return n.Targets(a.Role())
}

// CanMutateNotification governs directly authored notifications. System
// fan-out does not pass through here.
func CanMutateNotification(a model.Actor, n *model.Notification, action Action) bool {
	if a == nil || n == nil {
		return false
	}
	switch action {
	case ActionCreate, ActionEdit, ActionDelete:
		return a.Role().Staff()
	case ActionMarkRead:
		return CanViewNotification(a, n)
	}
	return false
}
