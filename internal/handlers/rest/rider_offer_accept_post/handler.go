package rider_offer_accept_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/httperr"
	"dispatch/internal/service/assignment"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log.With(logger.NewField("handler", "rider_offer_accept_post")),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	riderID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		httperr.BadRequest(w, h.log, assignment.ErrInvalidRiderID)
		return
	}
	orderID, err := strconv.ParseInt(vars["order_id"], 10, 64)
	if err != nil {
		httperr.BadRequest(w, h.log, assignment.ErrInvalidOrderID)
		return
	}

	accepted, err := h.service.AcceptOffer(r.Context(), riderID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, assignment.ErrInvalidRiderID),
			errors.Is(err, assignment.ErrInvalidOrderID):
			httperr.BadRequest(w, h.log, err)
		default:
			httperr.FromDomain(w, h.log, err)
		}
		return
	}

	h.log.With(
		logger.NewField("rider", riderID),
		logger.NewField("order", orderID),
	).Info("offer accepted")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromOrder(accepted))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
