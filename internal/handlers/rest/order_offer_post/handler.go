package order_offer_post

import (
	"encoding/json"
	"errors"
	"io"
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
		log:     log.With(logger.NewField("handler", "order_offer_post")),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httperr.BadRequest(w, h.log, assignment.ErrInvalidOrderID)
		return
	}

	// пустое тело: кандидаты берутся из текущего пула свободных курьеров
	var offerDTO dto.OfferCreate
	err = json.NewDecoder(r.Body).Decode(&offerDTO)
	if err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(w, h.log, errors.New("malformed JSON body"))
		return
	}

	offer, err := h.service.OfferOrder(r.Context(), orderID, offerDTO.CandidateRiderIDs)
	if err != nil {
		switch {
		case errors.Is(err, assignment.ErrInvalidOrderID),
			errors.Is(err, assignment.ErrInvalidRiderID):
			httperr.BadRequest(w, h.log, err)
		case errors.Is(err, assignment.ErrNoEligibleRiders):
			httperr.Write(w, h.log, http.StatusConflict, httperr.CodeNoEligibleRiders, err.Error())
		default:
			httperr.FromDomain(w, h.log, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.FromOffer(offer))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
