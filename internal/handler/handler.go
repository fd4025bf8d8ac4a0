package handler

import (
	"context"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campus-portal-api/internal/apperr"
	"campus-portal-api/internal/middleware"
	"campus-portal-api/internal/model"
	"campus-portal-api/internal/query"
	"campus-portal-api/internal/workflow"
)

// Handler implements PortalServer on top of the workflow engine and the
// query service.
type Handler struct {
	engine *workflow.Engine
	query  *query.Service
}

var _ PortalServer = (*Handler)(nil)

func New(engine *workflow.Engine, q *query.Service) *Handler {
	return &Handler{engine: engine, query: q}
}

func actor(ctx context.Context) (model.Actor, error) {
	a := middleware.ActorFromContext(ctx)
	if a == nil {
		return nil, status.Error(codes.Unauthenticated, "no actor")
	}
	return a, nil
}

// fail converts a domain error to a status. Anything unclassified is
// logged here and reaches the caller as a bare internal error.
func fail(method string, err error) error {
	if _, ok := apperr.KindOf(err); !ok {
		if _, isStatus := status.FromError(err); !isStatus {
			log.Printf("%s: %v", method, err)
		}
	}
	return apperr.ToStatus(err)
}
