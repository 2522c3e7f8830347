package shopify

import (
	"context"
	"strconv"

	"merchantkit/internal/model"
)

// === Orders ===

const orderCancelMutation = `
mutation orderCancel($orderId: ID!, $reason: OrderCancelReason!, $refund: Boolean!, $restock: Boolean!) {
  orderCancel(orderId: $orderId, reason: $reason, refund: $refund, restock: $restock) {
    job {
      id
      done
    }
    userErrors {
      field
      message
    }
  }
}`

// CancelOrder cancels an order, refunding payment and restocking inventory.
// Cancellation runs platform-side as an async job; the job id is returned
// so callers can surface it.
func (c *Client) CancelOrder(ctx context.Context, orderID, reason string) (string, error) {
	variables := map[string]any{
		"orderId": model.GID("Order", orderID),
		"reason":  reason,
		"refund":  true,
		"restock": true,
	}

	var resp struct {
		OrderCancel struct {
			Job *struct {
				ID   string `json:"id"`
				Done bool   `json:"done"`
			} `json:"job"`
			UserErrors []userError `json:"userErrors"`
		} `json:"orderCancel"`
	}
	if err := c.do(ctx, "orderCancel", orderCancelMutation, variables, &resp); err != nil {
		return "", err
	}

	payload := resp.OrderCancel
	if len(payload.UserErrors) > 0 {
		return "", model.NewUserErrorsError("orderCancel", userErrorMessages(payload.UserErrors))
	}
	if payload.Job == nil {
		return "", model.NewNotFoundError("order")
	}
	return payload.Job.ID, nil
}

// SetAgeVerified writes the age-verification metafield on an order.
// Repeated webhook deliveries rewrite the same metafield, so the call
// is safe to retry.
func (c *Client) SetAgeVerified(ctx context.Context, orderID string, verified bool) error {
	return c.setMetafield(ctx,
		model.GID("Order", orderID),
		"compliance", "age_verified",
		"boolean", strconv.FormatBool(verified))
}
