package rider_availability_put

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/httperr"
	"dispatch/internal/service/rider"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
)

var errMissingOnline = errors.New(`field "online" is required`)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log.With(logger.NewField("handler", "rider_availability_put")),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	riderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httperr.BadRequest(w, h.log, rider.ErrInvalidRiderID)
		return
	}

	var availabilityDTO dto.RiderAvailability
	err = json.NewDecoder(r.Body).Decode(&availabilityDTO)
	if err != nil {
		httperr.BadRequest(w, h.log, errors.New("malformed JSON body"))
		return
	}
	if availabilityDTO.Online == nil {
		httperr.BadRequest(w, h.log, errMissingOnline)
		return
	}

	riderEntity, err := h.service.ToggleAvailability(r.Context(), riderID, *availabilityDTO.Online)
	if err != nil {
		switch {
		case errors.Is(err, rider.ErrInvalidRiderID):
			httperr.BadRequest(w, h.log, err)
		default:
			httperr.FromDomain(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromRider(riderEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
