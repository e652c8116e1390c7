package rider_delivery_advance_post

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
		log:     log.With(logger.NewField("handler", "rider_delivery_advance_post")),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	riderID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		httperr.BadRequest(w, h.log, delivery.ErrInvalidRiderID)
		return
	}
	orderID, err := strconv.ParseInt(vars["order_id"], 10, 64)
	if err != nil {
		httperr.BadRequest(w, h.log, delivery.ErrInvalidOrderID)
		return
	}

	var advanceDTO dto.DeliveryAdvance
	err = json.NewDecoder(r.Body).Decode(&advanceDTO)
	if err != nil {
		httperr.BadRequest(w, h.log, errors.New("malformed JSON body"))
		return
	}

	advanced, err := h.service.AdvanceDelivery(
		r.Context(),
		riderID,
		orderID,
		entities.OrderStatusType(advanceDTO.Status),
	)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidRiderID),
			errors.Is(err, delivery.ErrInvalidOrderID),
			errors.Is(err, delivery.ErrInvalidTargetStatus):
			httperr.BadRequest(w, h.log, err)
		default:
			httperr.FromDomain(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromOrder(advanced))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
