// Package notify derives notification records from workflow events.
package notify

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"campus-portal-api/internal/model"
)

type Kind string

const (
	AppointmentCreated       Kind = "appointment-created"
	AppointmentStatusChanged Kind = "appointment-status-changed"
	AppointmentCanceled      Kind = "appointment-canceled"
	IssueCreated             Kind = "issue-created"
	IssueStatusChanged       Kind = "issue-status-changed"
)

// Event is a workflow state change. Exactly one of Appointment or Issue is
// set, matching the kind.
type Event struct {
	Kind        Kind
	Appointment *model.Appointment
	Issue       *model.Issue
}

var (
	ErrUnknownKind   = errors.New("notify: unknown event kind")
	ErrMissingSource = errors.New("notify: event has no source entity")
)

type rule struct {
	typ     model.NotificationType
	targets []model.Role
	title   *template.Template
	content *template.Template
}

var funcs = template.FuncMap{
	"label": func(s model.IssueStatus) string { return s.Label() },
}

func tmpl(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Option("missingkey=error").Parse(text))
}

var rules = map[Kind]rule{
	AppointmentCreated: {
		typ:     model.NotificationAppointment,
		targets: []model.Role{model.RoleLecturer},
		title:   tmpl("appointment-created.title", "New Appointment Request"),
		content: tmpl("appointment-created.content",
			"{{.StudentName}} has requested an appointment on {{.Date}} from {{.StartTime}} to {{.EndTime}}.\n\nTopic: {{.Title}}"),
	},
	AppointmentStatusChanged: {
		typ:     model.NotificationAppointment,
		targets: []model.Role{model.RoleStudent},
		title: tmpl("appointment-status.title",
			`Appointment {{if eq .Status "accepted"}}Accepted{{else}}Declined{{end}}`),
		content: tmpl("appointment-status.content",
			"Your appointment request with {{.LecturerName}} on {{.Date}} from {{.StartTime}} to {{.EndTime}} has been {{.Status}}."),
	},
	AppointmentCanceled: {
		typ:     model.NotificationAppointment,
		targets: []model.Role{model.RoleLecturer},
		title:   tmpl("appointment-canceled.title", "Appointment Canceled"),
		content: tmpl("appointment-canceled.content",
			"{{.StudentName}} has canceled the appointment request scheduled for {{.Date}} from {{.StartTime}} to {{.EndTime}}."),
	},
	IssueCreated: {
		typ:     model.NotificationIssue,
		targets: []model.Role{model.RoleLecturer, model.RoleAdmin},
		title:   tmpl("issue-created.title", "New Issue Report"),
		content: tmpl("issue-created.content",
			"A new issue has been reported by {{.StudentName}}:\n\n{{.Title}}\n\nCategory: {{.Category}}\nLocation: {{.Location}}"),
	},
	IssueStatusChanged: {
		typ:     model.NotificationIssue,
		targets: []model.Role{model.RoleStudent},
		title:   tmpl("issue-status.title", "Issue Status Update: {{label .Status}}"),
		content: tmpl("issue-status.content",
			"Your issue report \"{{.Title}}\" has been updated to: {{label .Status}}{{if .Comments}}\n\nComments: {{.Comments}}{{end}}"),
	},
}

// Derive renders the notification for ev. The result is system-authored and
// unread; the caller assigns ID and CreatedAt.
func Derive(ev Event) (model.Notification, error) {
	r, ok := rules[ev.Kind]
	if !ok {
		return model.Notification{}, fmt.Errorf("%w: %q", ErrUnknownKind, ev.Kind)
	}
	var src any
	switch {
	case ev.Appointment != nil && strings.HasPrefix(string(ev.Kind), "appointment-"):
		src = ev.Appointment
	case ev.Issue != nil && strings.HasPrefix(string(ev.Kind), "issue-"):
		src = ev.Issue
	default:
		return model.Notification{}, fmt.Errorf("%w: %s", ErrMissingSource, ev.Kind)
	}

	title, err := render(r.title, src)
	if err != nil {
		return model.Notification{}, err
	}
	content, err := render(r.content, src)
	if err != nil {
		return model.Notification{}, err
	}
	return model.Notification{
		Title:       title,
		Content:     content,
		CreatedBy:   model.SystemAuthor,
		Type:        r.typ,
		Status:      model.NotificationUnread,
		TargetRoles: append([]model.Role(nil), r.targets...),
	}, nil
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("notify: render %s: %w", t.Name(), err)
	}
	return b.String(), nil
}
