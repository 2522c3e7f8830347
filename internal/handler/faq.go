package handler

import (
	"net/http"

	"merchantkit/internal/model"
	"merchantkit/internal/reconcile"
)

// faqRequest is the request body for FAQ create and update.
type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (req *faqRequest) validate() error {
	if req.Question == "" {
		return model.NewValidationError("question", "question is required")
	}
	if req.Answer == "" {
		return model.NewValidationError("answer", "answer is required")
	}
	return nil
}

// handleListFAQs returns every FAQ entry.
// GET /api/faqs
func (h *Handler) handleListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.api.ListFAQs(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]model.FAQ{"faqs": faqs})
}

// handleCreateFAQ creates one FAQ entry.
// POST /api/faqs
func (h *Handler) handleCreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, err)
		return
	}

	faq, err := h.api.CreateFAQ(r.Context(), req.Question, req.Answer)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, faq)
}

// handleUpdateFAQ rewrites one FAQ entry.
// PUT /api/faqs/{id}
func (h *Handler) handleUpdateFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req faqRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, err)
		return
	}

	faq, err := h.api.UpdateFAQ(r.Context(), model.GID("Metaobject", id), req.Question, req.Answer)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, faq)
}

// handleDeleteFAQ removes one FAQ entry.
// DELETE /api/faqs/{id}
func (h *Handler) handleDeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.api.DeleteFAQ(r.Context(), model.GID("Metaobject", id)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSyncFAQs replaces the whole FAQ set with the request body.
// PUT /api/faqs
//
// Stateless PUT: fetch current entries, diff against desired, run only the
// needed mutations. Deletes run first so a recreated entry never collides
// with its old ID.
func (h *Handler) handleSyncFAQs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		FAQs []model.FAQ `json:"faqs"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	for _, faq := range req.FAQs {
		if faq.Question == "" || faq.Answer == "" {
			h.writeError(w, model.NewValidationError("faqs", "every entry needs a question and an answer"))
			return
		}
	}

	current, err := h.api.ListFAQs(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}

	diff := reconcile.DiffFAQs(current, req.FAQs)
	h.logger.Info().
		Int("create", len(diff.ToCreate)).
		Int("update", len(diff.ToUpdate)).
		Int("delete", len(diff.ToDelete)).
		Msg("syncing faqs")

	for _, id := range diff.ToDelete {
		if err := h.api.DeleteFAQ(ctx, id); err != nil {
			h.writeError(w, err)
			return
		}
	}
	for _, faq := range diff.ToUpdate {
		if _, err := h.api.UpdateFAQ(ctx, faq.ID, faq.Question, faq.Answer); err != nil {
			h.writeError(w, err)
			return
		}
	}
	for _, faq := range diff.ToCreate {
		if _, err := h.api.CreateFAQ(ctx, faq.Question, faq.Answer); err != nil {
			h.writeError(w, err)
			return
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]int{
		"created": len(diff.ToCreate),
		"updated": len(diff.ToUpdate),
		"deleted": len(diff.ToDelete),
	})
}
