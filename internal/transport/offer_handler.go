package transport

import (
	"net/http"

	"hallever/internal/domain"
	"hallever/internal/middleware"
	"hallever/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OfferHandler serves the singleton site-wide offer. POST upserts the one
// document; GET returns it or 404.
type OfferHandler struct {
	offers *service.OfferService
	logger *zap.Logger
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(offers *service.OfferService, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{offers: offers, logger: logger}
}

// RegisterRoutes mounts the offer endpoints.
func (h *OfferHandler) RegisterRoutes(r chi.Router, auth, admin func(http.Handler) http.Handler) {
	r.Route("/api/routes/offers", func(r chi.Router) {
		r.Get("/", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth, admin)
			r.Post("/", h.Put)
			r.Delete("/", h.Clear)
		})
	})
}

// Get returns the current offer.
func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offers.Get(r.Context())
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to fetch offer")
		return
	}
	respondData(w, http.StatusOK, offer)
}

// Put replaces the offer.
func (h *OfferHandler) Put(w http.ResponseWriter, r *http.Request) {
	var offer domain.Offer
	if err := middleware.DecodeAndValidate(r, &offer); err != nil {
		respondDecodeError(w, err)
		return
	}
	if offer.Title == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	saved, err := h.offers.Put(r.Context(), &offer)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to save offer")
		return
	}
	respondData(w, http.StatusOK, saved)
}

// Clear removes the offer.
func (h *OfferHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.offers.Clear(r.Context()); err != nil {
		respondServiceError(h.logger, w, err, "failed to clear offer")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": "offer cleared"})
}
