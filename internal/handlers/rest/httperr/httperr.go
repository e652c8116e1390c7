package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/pkg/keylock"
	"dispatch/pkg/logger"
)

const (
	CodeInvalidArgument   = "invalid_argument"
	CodeNotFound          = "not_found"
	CodeInvalidState      = "invalid_state"
	CodeIllegalTransition = "illegal_transition"
	CodeAlreadyAccepted   = "already_accepted"
	CodeOrderNotPending   = "order_not_pending"
	CodeAlreadyTerminal   = "already_terminal"
	CodeRiderIneligible   = "rider_ineligible"
	CodeNotAssignedRider  = "not_assigned_rider"
	CodeConflict          = "conflict"
	CodeNoEligibleRiders  = "no_eligible_riders"
	CodeLockTimeout       = "lock_timeout"
	CodeInternal          = "internal"
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

type Response struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Write тело ошибки {"error": code, "message": ...}.
func Write(w http.ResponseWriter, log errorLogger, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Error: code, Message: message})
	if err != nil {
		log.Error("encode JSON error response", logger.NewField("error", err))
	}
}

func BadRequest(w http.ResponseWriter, log errorLogger, err error) {
	Write(w, log, http.StatusBadRequest, CodeInvalidArgument, err.Error())
}

// FromDomain переводит доменную ошибку в HTTP статус. Текст внутренних ошибок наружу не отдается.
func FromDomain(w http.ResponseWriter, log errorLogger, err error) {
	status, code := Classify(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", logger.NewField("error", err))
		Write(w, log, status, code, "internal error")
		return
	}
	Write(w, log, status, code, err.Error())
}

func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, entities.ErrAlreadyAccepted):
		return http.StatusConflict, CodeAlreadyAccepted
	case errors.Is(err, entities.ErrOrderNotPending):
		return http.StatusConflict, CodeOrderNotPending
	case errors.Is(err, entities.ErrAlreadyTerminal):
		return http.StatusConflict, CodeAlreadyTerminal
	case errors.Is(err, entities.ErrIllegalTransition):
		return http.StatusConflict, CodeIllegalTransition
	case errors.Is(err, entities.ErrInvalidState):
		return http.StatusConflict, CodeInvalidState
	case errors.Is(err, entities.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, entities.ErrRiderIneligible):
		return http.StatusUnprocessableEntity, CodeRiderIneligible
	case errors.Is(err, entities.ErrNotAssignedRider):
		return http.StatusForbidden, CodeNotAssignedRider
	case errors.Is(err, keylock.ErrNotAcquired):
		return http.StatusServiceUnavailable, CodeLockTimeout
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
