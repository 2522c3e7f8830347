package shopify

import (
	"context"
	"fmt"

	"merchantkit/internal/model"
)

// === Metafields ===

const metafieldsSetMutation = `
mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields {
      id
    }
    userErrors {
      field
      message
    }
  }
}`

// setMetafield writes one metafield on any owner resource.
// metafieldsSet upserts, so repeated writes with the same owner/namespace/key
// are idempotent.
func (c *Client) setMetafield(ctx context.Context, ownerID, namespace, key, fieldType, value string) error {
	variables := map[string]any{
		"metafields": []map[string]any{{
			"ownerId":   ownerID,
			"namespace": namespace,
			"key":       key,
			"type":      fieldType,
			"value":     value,
		}},
	}

	var resp struct {
		MetafieldsSet struct {
			Metafields []struct {
				ID string `json:"id"`
			} `json:"metafields"`
			UserErrors []userError `json:"userErrors"`
		} `json:"metafieldsSet"`
	}
	if err := c.do(ctx, "metafieldsSet", metafieldsSetMutation, variables, &resp); err != nil {
		return err
	}

	if len(resp.MetafieldsSet.UserErrors) > 0 {
		return model.NewUserErrorsError("metafieldsSet", userErrorMessages(resp.MetafieldsSet.UserErrors))
	}
	return nil
}

const appInstallationQuery = `
query appInstallationID {
  currentAppInstallation {
    id
  }
}`

// appInstallationID returns the GID of this app's installation on the shop.
// App-owned configuration metafields hang off this id.
func (c *Client) appInstallationID(ctx context.Context) (string, error) {
	var resp struct {
		CurrentAppInstallation struct {
			ID string `json:"id"`
		} `json:"currentAppInstallation"`
	}
	if err := c.do(ctx, "currentAppInstallation", appInstallationQuery, nil, &resp); err != nil {
		return "", err
	}

	if resp.CurrentAppInstallation.ID == "" {
		return "", model.NewUpstreamError("Shopify", fmt.Errorf("currentAppInstallation returned no id"))
	}
	return resp.CurrentAppInstallation.ID, nil
}
