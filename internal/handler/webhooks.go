package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"merchantkit/internal/model"
	"merchantkit/internal/webhook"
)

// orderWebhook is the subset of the orders/create payload the service reads.
type orderWebhook struct {
	ID             int64 `json:"id"`
	NoteAttributes []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"note_attributes"`
}

// handleOrderCreated consumes the orders/create webhook, recording an age
// verification metafield when the checkout captured one.
// POST /webhooks/orders-create
//
// Shopify retries deliveries on non-2xx. Once the signature verifies, the
// handler always answers 200: an unprocessable payload will not improve on
// retry, and a failed metafield write is recoverable from the logs.
func (h *Handler) handleOrderCreated(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBodySize))
	if err != nil {
		h.writeError(w, model.NewValidationError("body", "reading webhook body"))
		return
	}

	if !webhook.VerifyWebhookSignature(h.opts.AppSecret, body, r.Header.Get("X-Shopify-Hmac-Sha256")) {
		h.writeError(w, model.NewUnauthorizedError("invalid webhook signature"))
		return
	}

	var order orderWebhook
	if err := json.Unmarshal(body, &order); err != nil {
		h.logger.Warn().Err(err).Msg("unparseable orders-create payload")
		w.WriteHeader(http.StatusOK)
		return
	}

	verified := false
	for _, attr := range order.NoteAttributes {
		if attr.Name == "age_verified" && attr.Value == "true" {
			verified = true
			break
		}
	}

	if verified {
		orderID := strconv.FormatInt(order.ID, 10)
		if err := h.api.SetAgeVerified(ctx, orderID, true); err != nil {
			h.logger.Error().Err(err).Str("order_id", orderID).Msg("recording age verification")
		} else {
			h.logger.Info().Str("order_id", orderID).Msg("age verification recorded")
		}
	}

	w.WriteHeader(http.StatusOK)
}
