package handler

import (
	"net/http"

	"merchantkit/internal/model"
)

// handleCreateProduct creates a product in active status.
// POST /api/products
func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	if input.Title == "" {
		h.writeError(w, model.NewValidationError("title", "title is required"))
		return
	}

	product, err := h.api.CreateProduct(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, product)
}
