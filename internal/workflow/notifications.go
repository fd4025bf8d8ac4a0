package workflow

import (
	"context"
	"strings"

	"campus-portal-api/internal/apperr"
	"campus-portal-api/internal/model"
	"campus-portal-api/internal/policy"
)

const entityNotification = "notification"

// NotificationInput is a directly authored notification. Type defaults to
// announcement.
type NotificationInput struct {
	Title       string
	Content     string
	Type        model.NotificationType
	TargetRoles []model.Role
	Faculty     string
}

type NotificationPatch struct {
	Title       *string
	Content     *string
	Type        *model.NotificationType
	TargetRoles []model.Role // nil keeps the current roles
	Faculty     *string
	Status      *model.NotificationStatus
}

func (e *Engine) CreateNotification(ctx context.Context, actor model.Actor, in NotificationInput) (model.Notification, error) {
	n := model.Notification{
		Title:       strings.TrimSpace(in.Title),
		Content:     strings.TrimSpace(in.Content),
		Type:        in.Type,
		Status:      model.NotificationUnread,
		Faculty:     strings.TrimSpace(in.Faculty),
		TargetRoles: dedupeRoles(in.TargetRoles),
	}
	if n.Type == "" {
		n.Type = model.NotificationAnnouncement
	}
	if !policy.CanMutateNotification(actor, &n, policy.ActionCreate) {
		return model.Notification{}, apperr.PermissionDenied(string(policy.ActionCreate), entityNotification)
	}
	n.CreatedBy = actor.ActorName()
	if n.CreatedBy == "" {
		n.CreatedBy = string(actor.Role())
	}
	if err := validateNotification(&n); err != nil {
		return model.Notification{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	n.ID = e.newID()
	n.CreatedAt = e.now()
	if err := e.repo.PutNotification(ctx, n); err != nil {
		return model.Notification{}, err
	}
	e.notificationsChanged()
	return n, nil
}

func (e *Engine) UpdateNotification(ctx context.Context, actor model.Actor, id string, p NotificationPatch) (model.Notification, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.repo.GetNotification(ctx, id)
	if err != nil {
		return model.Notification{}, err
	}
	if !policy.CanMutateNotification(actor, &cur, policy.ActionEdit) {
		return model.Notification{}, apperr.PermissionDenied(string(policy.ActionEdit), entityNotification)
	}

	next := cur
	setTrimmed(&next.Title, p.Title)
	setTrimmed(&next.Content, p.Content)
	setTrimmed(&next.Faculty, p.Faculty)
	if p.Type != nil {
		next.Type = *p.Type
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	if p.TargetRoles != nil {
		next.TargetRoles = dedupeRoles(p.TargetRoles)
	}
	if err := validateNotification(&next); err != nil {
		return model.Notification{}, err
	}
	if err := e.repo.PutNotification(ctx, next); err != nil {
		return model.Notification{}, err
	}
	e.notificationsChanged()
	return next, nil
}

func (e *Engine) DeleteNotification(ctx context.Context, actor model.Actor, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.repo.GetNotification(ctx, id)
	if err != nil {
		return false, err
	}
	if !policy.CanMutateNotification(actor, &cur, policy.ActionDelete) {
		return false, apperr.PermissionDenied(string(policy.ActionDelete), entityNotification)
	}
	ok, err := e.repo.DeleteNotification(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.NotFound(entityNotification, id)
	}
	e.notificationsChanged()
	return true, nil
}

// MarkNotificationRead marks one visible notification read. Notifications
// the actor cannot see are reported as not found.
func (e *Engine) MarkNotificationRead(ctx context.Context, actor model.Actor, id string) (model.Notification, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.repo.GetNotification(ctx, id)
	if err != nil {
		return model.Notification{}, err
	}
	if !policy.CanMutateNotification(actor, &cur, policy.ActionMarkRead) {
		return model.Notification{}, apperr.NotFound(entityNotification, id)
	}
	if cur.Status == model.NotificationRead {
		return cur, nil
	}
	cur.Status = model.NotificationRead
	if err := e.repo.PutNotification(ctx, cur); err != nil {
		return model.Notification{}, err
	}
	e.notificationsChanged()
	return cur, nil
}

// MarkAllNotificationsRead marks every unread notification visible to actor
// and returns how many changed.
func (e *Engine) MarkAllNotificationsRead(ctx context.Context, actor model.Actor) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	all, err := e.repo.ListNotifications(ctx)
	if err != nil {
		return 0, err
	}
	changed := 0
	defer func() {
		if changed > 0 {
			e.notificationsChanged()
		}
	}()
	for _, n := range all {
		if n.Status != model.NotificationUnread || !policy.CanMutateNotification(actor, &n, policy.ActionMarkRead) {
			continue
		}
		n.Status = model.NotificationRead
		if err := e.repo.PutNotification(ctx, n); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func validateNotification(n *model.Notification) error {
	if n.Title == "" {
		return apperr.Validation("title required")
	}
	if n.Content == "" {
		return apperr.Validation("content required")
	}
	if !n.Type.Valid() {
		return apperr.Validation("unknown notification type %q", n.Type)
	}
	if !n.Status.Valid() {
		return apperr.Validation("unknown notification status %q", n.Status)
	}
	if len(n.TargetRoles) == 0 {
		return apperr.Validation("targetRoles must not be empty")
	}
	for _, r := range n.TargetRoles {
		if !r.Valid() {
			return apperr.Validation("unknown target role %q", r)
		}
	}
	return nil
}

func dedupeRoles(roles []model.Role) []model.Role {
	out := make([]model.Role, 0, len(roles))
	seen := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		r = model.Role(strings.TrimSpace(string(r)))
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
