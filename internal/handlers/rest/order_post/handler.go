package order_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/httperr"
	"dispatch/internal/service/order"
	"dispatch/pkg/logger"
)

// Handler прием заказа от ресторана в обход kafka. Предложение курьерам
// сделает фоновая задача рассылки.
type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log.With(logger.NewField("handler", "order_post")),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var orderDTO dto.OrderCreate
	err := json.NewDecoder(r.Body).Decode(&orderDTO)
	if err != nil {
		httperr.BadRequest(w, h.log, errors.New("malformed JSON body"))
		return
	}

	created, err := h.service.CreateOrder(r.Context(), entities.OrderModify{
		ID:              orderDTO.ID,
		Restaurant:      orderDTO.Restaurant,
		PickupAddress:   orderDTO.PickupAddress,
		CustomerName:    orderDTO.CustomerName,
		DeliveryAddress: orderDTO.DeliveryAddress,
		DistanceMeters:  orderDTO.DistanceMeters,
		TotalCents:      orderDTO.TotalCents,
	})
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingRequiredFields),
			errors.Is(err, order.ErrInvalidOrderID),
			errors.Is(err, order.ErrInvalidRestaurant),
			errors.Is(err, order.ErrInvalidAddress),
			errors.Is(err, order.ErrInvalidCustomerName),
			errors.Is(err, order.ErrInvalidAmount):
			httperr.BadRequest(w, h.log, err)
		default:
			httperr.FromDomain(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.FromOrder(created))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
