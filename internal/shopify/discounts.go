package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"merchantkit/internal/model"
)

// === Raffle Discount ===
//
// The raffle promotion is an automatic app discount whose amount is decided
// at checkout by a deployed discount function. The prize table lives in an
// app-installation metafield so the function, the storefront draw endpoint,
// and the admin all read one source of truth.

const (
	raffleNamespace = "raffle"
	raffleConfigKey = "config"
)

const discountAutomaticAppCreateMutation = `
mutation discountAutomaticAppCreate($automaticAppDiscount: DiscountAutomaticAppInput!) {
  discountAutomaticAppCreate(automaticAppDiscount: $automaticAppDiscount) {
    automaticAppDiscount {
      discountId
      title
    }
    userErrors {
      field
      message
    }
  }
}`

// CreateRaffleDiscount creates the automatic app discount backing the raffle.
// functionID identifies the deployed discount function; the discount starts
// immediately and runs until deleted.
func (c *Client) CreateRaffleDiscount(ctx context.Context, functionID string, cfg model.RaffleConfig) (*model.RaffleDiscount, error) {
	variables := map[string]any{
		"automaticAppDiscount": map[string]any{
			"title":      cfg.Title,
			"functionId": functionID,
			"startsAt":   time.Now().UTC().Format(time.RFC3339),
			"combinesWith": map[string]any{
				"productDiscounts": false,
				"orderDiscounts":   false,
			},
		},
	}

	var resp struct {
		DiscountAutomaticAppCreate struct {
			AutomaticAppDiscount *struct {
				DiscountID string `json:"discountId"`
				Title      string `json:"title"`
			} `json:"automaticAppDiscount"`
			UserErrors []userError `json:"userErrors"`
		} `json:"discountAutomaticAppCreate"`
	}
	if err := c.do(ctx, "discountAutomaticAppCreate", discountAutomaticAppCreateMutation, variables, &resp); err != nil {
		return nil, err
	}

	payload := resp.DiscountAutomaticAppCreate
	if len(payload.UserErrors) > 0 {
		return nil, model.NewUserErrorsError("discountAutomaticAppCreate", userErrorMessages(payload.UserErrors))
	}
	if payload.AutomaticAppDiscount == nil {
		return nil, model.NewUpstreamError("Shopify", fmt.Errorf("discountAutomaticAppCreate returned no discount"))
	}

	return &model.RaffleDiscount{
		ID:    payload.AutomaticAppDiscount.DiscountID,
		Title: payload.AutomaticAppDiscount.Title,
	}, nil
}

// SaveRaffleConfig persists the prize table on the app installation.
func (c *Client) SaveRaffleConfig(ctx context.Context, cfg model.RaffleConfig) error {
	ownerID, err := c.appInstallationID(ctx)
	if err != nil {
		return err
	}

	value, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding raffle config: %w", err)
	}

	return c.setMetafield(ctx, ownerID, raffleNamespace, raffleConfigKey, "json", string(value))
}

const raffleConfigQuery = `
query raffleConfig($namespace: String!, $key: String!) {
  currentAppInstallation {
    metafield(namespace: $namespace, key: $key) {
      value
    }
  }
}`

// RaffleConfig reads the prize table back from the app installation.
func (c *Client) RaffleConfig(ctx context.Context) (*model.RaffleConfig, error) {
	variables := map[string]any{
		"namespace": raffleNamespace,
		"key":       raffleConfigKey,
	}

	var resp struct {
		CurrentAppInstallation struct {
			Metafield *struct {
				Value string `json:"value"`
			} `json:"metafield"`
		} `json:"currentAppInstallation"`
	}
	if err := c.do(ctx, "raffleConfig", raffleConfigQuery, variables, &resp); err != nil {
		return nil, err
	}

	if resp.CurrentAppInstallation.Metafield == nil {
		return nil, model.NewNotFoundError("raffle config")
	}

	var cfg model.RaffleConfig
	if err := json.Unmarshal([]byte(resp.CurrentAppInstallation.Metafield.Value), &cfg); err != nil {
		return nil, fmt.Errorf("parsing raffle config: %w", err)
	}
	return &cfg, nil
}
