package handler

import (
	"net/http"

	"github.com/KehaoC/GF/internal/middleware"
	"github.com/KehaoC/GF/internal/model"
	"github.com/KehaoC/GF/internal/service"
)

// CardHandler handles HTTP requests for custom card operations.
type CardHandler struct {
	service *service.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(svc *service.CardService) *CardHandler {
	return &CardHandler{service: svc}
}

// HandleList handles GET /api/v1/cards requests.
func (h *CardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("could not validate credentials"))
		return
	}

	cards, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		serviceError(w, err)
		return
	}

	if cards == nil {
		cards = []model.CardResponse{}
	}
	writeJSON(w, http.StatusOK, cards)
}

// HandleCreate handles POST /api/v1/cards requests.
func (h *CardHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("could not validate credentials"))
		return
	}

	var req model.CreateCardRequest
	if !decodeJSON(w, r, 10<<20, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGet handles GET /api/v1/cards/{card_id} requests.
func (h *CardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("could not validate credentials"))
		return
	}

	cardID, ok := pathID(w, r, "card_id")
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), user.ID, cardID)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/v1/cards/{card_id} requests.
func (h *CardHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("could not validate credentials"))
		return
	}

	cardID, ok := pathID(w, r, "card_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, cardID); err != nil {
		serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
