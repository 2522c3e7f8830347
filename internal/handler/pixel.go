package handler

import (
	"net/http"

	"merchantkit/internal/model"
)

// handleGetPixel returns the app's pixel registration.
// GET /api/pixel
func (h *Handler) handleGetPixel(w http.ResponseWriter, r *http.Request) {
	pixel, err := h.api.WebPixel(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, pixel)
}

// handleCreatePixel registers the analytics pixel.
// POST /api/pixel
func (h *Handler) handleCreatePixel(w http.ResponseWriter, r *http.Request) {
	var settings model.PixelSettings
	if err := decodeJSON(r, &settings); err != nil {
		h.writeError(w, err)
		return
	}
	if settings.AccountID == "" {
		h.writeError(w, model.NewValidationError("accountID", "accountID is required"))
		return
	}

	pixel, err := h.api.CreateWebPixel(r.Context(), settings)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, pixel)
}

// handleUpdatePixel replaces the pixel's settings.
// PUT /api/pixel/{id}
func (h *Handler) handleUpdatePixel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var settings model.PixelSettings
	if err := decodeJSON(r, &settings); err != nil {
		h.writeError(w, err)
		return
	}
	if settings.AccountID == "" {
		h.writeError(w, model.NewValidationError("accountID", "accountID is required"))
		return
	}

	pixel, err := h.api.UpdateWebPixel(r.Context(), model.GID("WebPixel", id), settings)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, pixel)
}

// handleDeletePixel removes the pixel registration.
// DELETE /api/pixel/{id}
func (h *Handler) handleDeletePixel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.api.DeleteWebPixel(r.Context(), model.GID("WebPixel", id)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
