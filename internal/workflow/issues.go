package workflow

import (
	"context"
	"strings"
	"time"

	"campus-portal-api/internal/apperr"
	"campus-portal-api/internal/model"
	"campus-portal-api/internal/notify"
	"campus-portal-api/internal/policy"
)

// IssueInput carries the fields of a new issue report. StudentID and
// StudentName default to the reporting actor.
type IssueInput struct {
	StudentID   string
	StudentName string
	Title       string
	Description string
	Category    string
	Location    string
}

type IssuePatch struct {
	Title       *string
	Description *string
	Category    *string
	Location    *string
}

func (e *Engine) CreateIssue(ctx context.Context, actor model.Actor, in IssueInput) (model.Issue, error) {
	if actor == nil {
		return model.Issue{}, apperr.PermissionDenied(string(policy.ActionCreate), entityIssue)
	}
	is := model.Issue{
		StudentID:   strings.TrimSpace(in.StudentID),
		StudentName: strings.TrimSpace(in.StudentName),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Location:    strings.TrimSpace(in.Location),
		Status:      model.IssueSubmitted,
	}
	if is.StudentID == "" {
		is.StudentID = actor.ActorID()
	}
	if is.StudentName == "" {
		is.StudentName = actor.ActorName()
	}
	if !policy.CanMutateIssue(actor, &is, policy.ActionCreate) {
		return model.Issue{}, apperr.PermissionDenied(string(policy.ActionCreate), entityIssue)
	}
	if err := validateIssue(&is); err != nil {
		return model.Issue{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	is.ID = e.newID()
	is.CreatedAt = e.now()
	is.UpdatedAt = is.CreatedAt
	if err := e.repo.PutIssue(ctx, is); err != nil {
		return model.Issue{}, err
	}
	e.transitioned(entityIssue, "", string(is.Status))
	e.emit(ctx, notify.Event{Kind: notify.IssueCreated, Issue: &is})
	return is, nil
}

func (e *Engine) UpdateIssue(ctx context.Context, actor model.Actor, id string, p IssuePatch) (model.Issue, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.repo.GetIssue(ctx, id)
	if err != nil {
		return model.Issue{}, err
	}
	if err := issueDenied(actor, cur, policy.ActionEdit); err != nil {
		return model.Issue{}, err
	}

	next := cur
	setTrimmed(&next.Title, p.Title)
	setTrimmed(&next.Description, p.Description)
	setTrimmed(&next.Category, p.Category)
	setTrimmed(&next.Location, p.Location)
	if err := validateIssue(&next); err != nil {
		return model.Issue{}, err
	}
	next.UpdatedAt = e.touch(cur.UpdatedAt)
	if err := e.repo.PutIssue(ctx, next); err != nil {
		return model.Issue{}, err
	}
	return next, nil
}

func (e *Engine) DeleteIssue(ctx context.Context, actor model.Actor, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.repo.GetIssue(ctx, id)
	if err != nil {
		return false, err
	}
	if err := issueDenied(actor, cur, policy.ActionDelete); err != nil {
		return false, err
	}
	ok, err := e.repo.DeleteIssue(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.NotFound(entityIssue, id)
	}
	e.transitioned(entityIssue, string(cur.Status), statusDeleted)
	return true, nil
}

// UpdateIssueStatus moves an issue to any status, including back out of
// addressed or will-not-address. Every call notifies the reporting student,
// even when the status is unchanged. A nil comments keeps the existing text.
func (e *Engine) UpdateIssueStatus(ctx context.Context, actor model.Actor, id string, status model.IssueStatus, comments *string) (model.Issue, error) {
	if !status.Valid() {
		return model.Issue{}, apperr.Validation("unknown issue status %q", status)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.repo.GetIssue(ctx, id)
	if err != nil {
		return model.Issue{}, err
	}
	if !policy.CanMutateIssue(actor, &cur, policy.ActionAdvanceStatus) {
		return model.Issue{}, apperr.PermissionDenied(string(policy.ActionAdvanceStatus), entityIssue)
	}

	next := cur
	next.Status = status
	setTrimmed(&next.Comments, comments)
	next.UpdatedAt = e.touch(cur.UpdatedAt)
	if err := e.repo.PutIssue(ctx, next); err != nil {
		return model.Issue{}, err
	}
	e.transitioned(entityIssue, string(cur.Status), string(status))
	e.emit(ctx, notify.Event{Kind: notify.IssueStatusChanged, Issue: &next})
	return next, nil
}

// touch returns a timestamp strictly after prev.
func (e *Engine) touch(prev time.Time) time.Time {
	now := e.now()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func issueDenied(actor model.Actor, is model.Issue, action policy.Action) error {
	if policy.CanMutateIssue(actor, &is, action) {
		return nil
	}
	probe := is
	probe.Status = model.IssueSubmitted
	if policy.CanMutateIssue(actor, &probe, action) {
		return apperr.InvalidTransition(entityIssue, string(is.Status), string(action))
	}
	return apperr.PermissionDenied(string(action), entityIssue)
}

func validateIssue(is *model.Issue) error {
	required := []struct{ name, value string }{
		{"studentId", is.StudentID},
		{"title", is.Title},
		{"description", is.Description},
		{"category", is.Category},
		{"location", is.Location},
	}
	for _, f := range required {
		if f.value == "" {
			return apperr.Validation("%s required", f.name)
		}
	}
	if !model.ValidIssueCategory(is.Category) {
		return apperr.Validation("unknown issue category %q", is.Category)
	}
	return nil
}
