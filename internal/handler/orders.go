package handler

import (
	"net/http"

	"merchantkit/internal/model"
)

// handleCancelOrder cancels an order, refunding payment and restocking
// inventory. The platform runs cancellation as an asynchronous job; the
// response carries that job's id.
// POST /api/orders/{id}/cancel
func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Reason == "" {
		req.Reason = model.CancelReasonOther
	}
	if !model.ValidCancelReason(req.Reason) {
		h.writeError(w, model.NewValidationError("reason", "unknown cancellation reason"))
		return
	}

	h.logger.Info().Str("order_id", orderID).Str("reason", req.Reason).Msg("cancelling order")

	jobID, err := h.api.CancelOrder(ctx, orderID, req.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusAccepted, map[string]string{"jobId": jobID})
}
