package handler

import (
	"context"

	"campus-portal-api/internal/model"
	"campus-portal-api/internal/workflow"
)

func (h *Handler) CreateIssue(ctx context.Context, req *CreateIssueRequest) (*IssueResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	is, err := h.engine.CreateIssue(ctx, a, workflow.IssueInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
	})
	if err != nil {
		return nil, fail("CreateIssue", err)
	}
	return &IssueResponse{Issue: is}, nil
}

func (h *Handler) GetIssue(ctx context.Context, req *IDRequest) (*IssueResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	is, err := h.query.GetIssue(ctx, a, req.ID)
	if err != nil {
		return nil, fail("GetIssue", err)
	}
	return &IssueResponse{Issue: is}, nil
}

func (h *Handler) UpdateIssue(ctx context.Context, req *UpdateIssueRequest) (*IssueResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	is, err := h.engine.UpdateIssue(ctx, a, req.ID, workflow.IssuePatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
	})
	if err != nil {
		return nil, fail("UpdateIssue", err)
	}
	return &IssueResponse{Issue: is}, nil
}

func (h *Handler) DeleteIssue(ctx context.Context, req *IDRequest) (*DeleteResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	ok, err := h.engine.DeleteIssue(ctx, a, req.ID)
	if err != nil {
		return nil, fail("DeleteIssue", err)
	}
	return &DeleteResponse{Deleted: ok}, nil
}

func (h *Handler) UpdateIssueStatus(ctx context.Context, req *UpdateIssueStatusRequest) (*IssueResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	is, err := h.engine.UpdateIssueStatus(ctx, a, req.ID, req.Status, req.Comments)
	if err != nil {
		return nil, fail("UpdateIssueStatus", err)
	}
	return &IssueResponse{Issue: is}, nil
}

func (h *Handler) ListIssues(ctx context.Context, _ *Empty) (*ListIssuesResponse, error) {
	a, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	list, err := h.query.ListIssues(ctx, a)
	if err != nil {
		return nil, fail("ListIssues", err)
	}
	return &ListIssuesResponse{Issues: list}, nil
}

func (h *Handler) ListIssueCategories(ctx context.Context, _ *Empty) (*ListIssueCategoriesResponse, error) {
	if _, err := actor(ctx); err != nil {
		return nil, err
	}
	return &ListIssueCategoriesResponse{Categories: append([]string(nil), model.IssueCategories...)}, nil
}
