package handler

import (
	"context"

	"campus-portal-api/internal/workflow"
)

func (h *Handler) CreateNotification(ctx context.Context, req *CreateNotificationRequest) (*NotificationResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	n, err := h.engine.CreateNotification(ctx, a, workflow.NotificationInput{
		Title:       req.Title,
		Content:     req.Content,
		Type:        req.Type,
		TargetRoles: req.TargetRoles,
		Faculty:     req.Faculty,
	})
	if err != nil {
		return nil, fail("CreateNotification", err)
	}
	return &NotificationResponse{Notification: n}, nil
}

func (h *Handler) UpdateNotification(ctx context.Context, req *UpdateNotificationRequest) (*NotificationResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	n, err := h.engine.UpdateNotification(ctx, a, req.ID, workflow.NotificationPatch{
		Title:       req.Title,
		Content:     req.Content,
		Type:        req.Type,
		TargetRoles: req.TargetRoles,
		Faculty:     req.Faculty,
		Status:      req.Status,
	})
	if err != nil {
		return nil, fail("UpdateNotification", err)
	}
	return &NotificationResponse{Notification: n}, nil
}

func (h *Handler) DeleteNotification(ctx context.Context, req *IDRequest) (*DeleteResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	ok, err := h.engine.DeleteNotification(ctx, a, req.ID)
	if err != nil {
		return nil, fail("DeleteNotification", err)
	}
	return &DeleteResponse{Deleted: ok}, nil
}

func (h *Handler) MarkNotificationRead(ctx context.Context, req *IDRequest) (*NotificationResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	n, err := h.engine.MarkNotificationRead(ctx, a, req.ID)
	if err != nil {
		return nil, fail("MarkNotificationRead", err)
	}
	return &NotificationResponse{Notification: n}, nil
}

func (h *Handler) MarkAllNotificationsRead(ctx context.Context, _ *Empty) (*MarkAllNotificationsReadResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	n, err := h.engine.MarkAllNotificationsRead(ctx, a)
	if err != nil {
		return nil, fail("MarkAllNotificationsRead", err)
	}
	return &MarkAllNotificationsReadResponse{Updated: n}, nil
}

func (h *Handler) ListNotifications(ctx context.Context, _ *Empty) (*ListNotificationsResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	list, err := h.query.ListNotifications(ctx, a)
	if err != nil {
		return nil, fail("ListNotifications", err)
	}
	return &ListNotificationsResponse{Notifications: list}, nil
}

func (h *Handler) UnreadCount(ctx context.Context, _ *Empty) (*UnreadCountResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	n, err := h.query.UnreadCount(ctx, a)
	if err != nil {
		return nil, fail("UnreadCount", err)
	}
	return &UnreadCountResponse{Count: n}, nil
}
