package rider_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/httperr"
	"dispatch/internal/service/rider"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log.With(logger.NewField("handler", "rider_post")),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var riderDTO dto.RiderCreate
	err := json.NewDecoder(r.Body).Decode(&riderDTO)
	if err != nil {
		httperr.BadRequest(w, h.log, errors.New("malformed JSON body"))
		return
	}

	riderModify := entities.RiderModify{
		Name:  &riderDTO.Name,
		Phone: &riderDTO.Phone,
	}
	if riderDTO.Availability != "" {
		availability := entities.RiderAvailabilityType(riderDTO.Availability)
		riderModify.Availability = &availability
	}

	id, err := h.service.CreateRider(r.Context(), riderModify)
	if err != nil {
		switch {
		case errors.Is(err, rider.ErrMissingRequiredFields),
			errors.Is(err, rider.ErrInvalidName),
			errors.Is(err, rider.ErrInvalidPhone),
			errors.Is(err, rider.ErrInvalidAvailability):
			httperr.BadRequest(w, h.log, err)
		default:
			httperr.FromDomain(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.RiderCreateResponse{ID: id})
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
