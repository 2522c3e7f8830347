// Package handler provides HTTP handlers for the merchant API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"merchantkit/internal/admin"
	"merchantkit/internal/branding"
	"merchantkit/internal/middleware"
	"merchantkit/internal/model"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	api    admin.API
	fonts  *branding.Service
	opts   Options
	logger zerolog.Logger
}

// Options carries handler-level settings that are not dependencies.
type Options struct {
	// AppSecret authenticates webhooks and app proxy requests.
	AppSecret string

	// RaffleFunctionID identifies the deployed discount function backing
	// raffle promotions. Raffle creation is rejected while empty.
	RaffleFunctionID string
}

// New creates a Handler with the given admin client, font service, and logger.
func New(api admin.API, fonts *branding.Service, opts Options, logger zerolog.Logger) *Handler {
	return &Handler{
		api:    api,
		fonts:  fonts,
		opts:   opts,
		logger: logger,
	}
}

// Routes assembles the service router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(h.logger))
	r.Use(middleware.Recovery(h.logger))

	r.Get("/healthz", h.handleHealth)

	// Merchant admin surface
	r.Route("/api", func(r chi.Router) {
		r.Post("/branding/font", h.handleApplyFont)
		r.Get("/branding/profile", h.handleGetProfile)

		r.Get("/faqs", h.handleListFAQs)
		r.Post("/faqs", h.handleCreateFAQ)
		r.Put("/faqs", h.handleSyncFAQs)
		r.Put("/faqs/{id}", h.handleUpdateFAQ)
		r.Delete("/faqs/{id}", h.handleDeleteFAQ)

		r.Get("/pixel", h.handleGetPixel)
		r.Post("/pixel", h.handleCreatePixel)
		r.Put("/pixel/{id}", h.handleUpdatePixel)
		r.Delete("/pixel/{id}", h.handleDeletePixel)

		r.Post("/raffle", h.handleCreateRaffle)
		r.Get("/raffle", h.handleGetRaffle)

		r.Post("/orders/{id}/cancel", h.handleCancelOrder)

		r.Post("/products", h.handleCreateProduct)
	})

	// Storefront surface, signature-authenticated by Shopify
	r.Get("/proxy/raffle/draw", h.handleRaffleDraw)

	// Webhook surface, HMAC-authenticated by Shopify
	r.Post("/webhooks/orders-create", h.handleOrderCreated)

	return r
}

// handleHealth reports liveness.
// GET /healthz
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// === Response Helpers ===

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError sends an error response, extracting status/code from APIError
// if present. Uses errors.As() to unwrap error chains.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError

	if !errors.As(err, &apiErr) {
		// Wrap unexpected errors
		apiErr = &model.APIError{
			Code:       "INTERNAL_ERROR",
			Message:    "an internal error occurred",
			StatusCode: http.StatusInternalServerError,
		}
		h.logger.Error().Err(err).Msg("internal error")
	}

	h.writeJSON(w, apiErr.StatusCode, errorResponse{
		Error: errorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
	})
}

// errorResponse is the JSON structure for error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MaxRequestBodySize limits JSON request bodies to 1MB to prevent DoS.
const MaxRequestBodySize = 1 << 20 // 1MB

// decodeJSON reads JSON from the request body into v. An empty body leaves
// v at its zero value so optional-body routes work; per-route validation
// catches missing required fields. Limits body size to MaxRequestBodySize.
func decodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		// Don't expose internal error details to client
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}

// pathID extracts the {id} route parameter, rejecting blanks.
func pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return "", model.NewValidationError("id", "id is required")
	}
	return id, nil
}
