package order_cancel_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/httperr"
	"dispatch/internal/service/delivery"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log.With(logger.NewField("handler", "order_cancel_post")),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httperr.BadRequest(w, h.log, delivery.ErrInvalidOrderID)
		return
	}

	cancelled, err := h.service.CancelOrder(r.Context(), orderID, entities.ActorDispatcher)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidOrderID):
			httperr.BadRequest(w, h.log, err)
		default:
			httperr.FromDomain(w, h.log, err)
		}
		return
	}

	h.log.With(
		logger.NewField("order", orderID),
	).Info("order cancelled by dispatcher")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromOrder(cancelled))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
