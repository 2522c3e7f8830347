package handler

import (
	"io"
	"net/http"

	"merchantkit/internal/model"
)

// Font uploads are capped well above any real woff2 face.
const maxFontUploadBytes = 2 << 20 // 2MB

// handleApplyFont uploads a checkout font and applies it end to end.
// POST /api/branding/font, multipart form with a "font" file field.
//
// Transport-level problems (bad form, missing field) use the standard error
// shape. Once a filename and payload exist, every outcome is the pipeline's
// own result: success 200, any step failure 422.
func (h *Handler) handleApplyFont(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxFontUploadBytes)
	if err := r.ParseMultipartForm(maxFontUploadBytes); err != nil {
		h.writeError(w, model.NewValidationError("body", "invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("font")
	if err != nil {
		h.writeError(w, model.NewValidationError("font", "font file field is required"))
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, model.NewInternalError(err))
		return
	}

	result := h.fonts.Apply(ctx, header.Filename, payload)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	h.writeJSON(w, status, result)
}

// handleGetProfile returns the shop's published checkout profile.
// GET /api/branding/profile
func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.api.ActiveCheckoutProfile(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}
