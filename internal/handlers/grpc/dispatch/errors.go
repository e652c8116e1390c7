package dispatch

import (
	"context"
	"errors"

	"dispatch/internal/entities"
	"dispatch/internal/service/assignment"
	"dispatch/internal/service/delivery"
	"dispatch/internal/service/rider"
	"dispatch/pkg/keylock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errInternal текст внутренних ошибок клиенту не отдается, он пишется в лог интерсептором.
type errInternal struct {
	cause error
}

func (e *errInternal) Error() string {
	return e.cause.Error()
}

func (e *errInternal) Unwrap() error {
	return e.cause
}

func (e *errInternal) GRPCStatus() *status.Status {
	return status.New(codes.Internal, "internal error")
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, assignment.ErrInvalidOrderID),
		errors.Is(err, assignment.ErrInvalidRiderID),
		errors.Is(err, delivery.ErrInvalidOrderID),
		errors.Is(err, delivery.ErrInvalidRiderID),
		errors.Is(err, delivery.ErrInvalidTargetStatus),
		errors.Is(err, rider.ErrInvalidRiderID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, entities.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, entities.ErrAlreadyAccepted),
		errors.Is(err, entities.ErrConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, entities.ErrOrderNotPending),
		errors.Is(err, entities.ErrAlreadyTerminal),
		errors.Is(err, entities.ErrIllegalTransition),
		errors.Is(err, entities.ErrInvalidState),
		errors.Is(err, entities.ErrRiderIneligible):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, entities.ErrNotAssignedRider):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, keylock.ErrNotAcquired):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return &errInternal{cause: err}
	}
}
