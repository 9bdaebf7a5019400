// Package httperror maps the core error taxonomy onto huma error responses.
package httperror

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/identity"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

// Owner returns the authenticated owner id or a 401 error.
func Owner(ctx context.Context) (string, error) {
	ownerID, ok := identity.OwnerFromContext(ctx)
	if !ok {
		return "", huma.Error401Unauthorized("authentication required")
	}
	return ownerID, nil
}

// FromError converts err into a huma status error. Unexpected errors are
// recorded on the request's LogData and reported as a bare 500 that
// names the failed operation.
func FromError(ctx context.Context, err error, operation string) error {
	var verr *apperrors.ValidationError
	var conflict *apperrors.ConflictError
	switch {
	case errors.As(err, &verr):
		details := make([]error, len(verr.Fields))
		for i, f := range verr.Fields {
			details[i] = &huma.ErrorDetail{
				Message:  f.Message,
				Location: "body." + f.Field,
			}
		}
		return huma.Error422UnprocessableEntity("validation failed", details...)
	case errors.Is(err, apperrors.ErrNotFound):
		return huma.Error404NotFound("not found")
	case errors.As(err, &conflict):
		return huma.Error409Conflict(conflict.Msg)
	case errors.Is(err, apperrors.ErrPreconditionFailed):
		return huma.Error412PreconditionFailed(apperrors.ErrPreconditionFailed.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		return huma.Error400BadRequest(err.Error())
	}

	logging.AddData(ctx, "error", err.Error())
	return huma.NewError(http.StatusInternalServerError, "failed to "+operation)
}

// InvalidPath builds a 422 for a path parameter the handler could not parse.
func InvalidPath(param, message string) error {
	return huma.Error422UnprocessableEntity("validation failed", &huma.ErrorDetail{
		Message:  message,
		Location: "path." + param,
	})
}
