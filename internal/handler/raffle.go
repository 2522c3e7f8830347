package handler

import (
	"math/rand/v2"
	"net/http"

	"merchantkit/internal/model"
	"merchantkit/internal/webhook"
)

// handleCreateRaffle creates the raffle promotion: validates the prize
// table, creates the backing automatic discount, and persists the table
// where the draw endpoint and the discount function both read it.
// POST /api/raffle
func (h *Handler) handleCreateRaffle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.opts.RaffleFunctionID == "" {
		h.writeError(w, model.NewValidationError("raffle", "no discount function is configured"))
		return
	}

	var cfg model.RaffleConfig
	if err := decodeJSON(r, &cfg); err != nil {
		h.writeError(w, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		h.writeError(w, err)
		return
	}

	discount, err := h.api.CreateRaffleDiscount(ctx, h.opts.RaffleFunctionID, cfg)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.api.SaveRaffleConfig(ctx, cfg); err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info().Str("discount_id", discount.ID).Str("title", cfg.Title).Msg("raffle created")
	h.writeJSON(w, http.StatusCreated, discount)
}

// handleGetRaffle returns the stored raffle configuration.
// GET /api/raffle
func (h *Handler) handleGetRaffle(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.api.RaffleConfig(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cfg)
}

// handleRaffleDraw serves storefront draw requests through the app proxy.
// GET /proxy/raffle/draw
//
// Shopify forwards storefront requests with a signature derived from the
// app secret; unsigned calls are rejected before any state is read.
func (h *Handler) handleRaffleDraw(w http.ResponseWriter, r *http.Request) {
	if !webhook.VerifyProxySignature(h.opts.AppSecret, r.URL.Query()) {
		h.writeError(w, model.NewUnauthorizedError("invalid proxy signature"))
		return
	}

	cfg, err := h.api.RaffleConfig(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	total := cfg.TotalWeight()
	if total <= 0 {
		h.writeError(w, model.NewInternalError(nil))
		return
	}

	percentage := cfg.Draw(rand.IntN(total))
	h.writeJSON(w, http.StatusOK, map[string]int{"percentage": percentage})
}
