package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"merchantkit/internal/model"
)

// === Web Pixel ===
//
// The app owns at most one web pixel per shop. Settings cross the wire as a
// JSON-encoded string and must match the pixel extension's settings schema.

const webPixelQuery = `
query appWebPixel {
  webPixel {
    id
    settings
  }
}`

// webPixelPayload is the pixel shape shared by the query and mutations.
type webPixelPayload struct {
	ID       string `json:"id"`
	Settings string `json:"settings"`
}

func pixelFromPayload(p webPixelPayload) *model.WebPixel {
	pixel := &model.WebPixel{ID: p.ID}
	// Best-effort decode; an unparseable settings string leaves zero settings.
	json.Unmarshal([]byte(p.Settings), &pixel.Settings)
	return pixel
}

// WebPixel returns the app's pixel registration.
func (c *Client) WebPixel(ctx context.Context) (*model.WebPixel, error) {
	var resp struct {
		WebPixel *webPixelPayload `json:"webPixel"`
	}
	if err := c.do(ctx, "webPixel", webPixelQuery, nil, &resp); err != nil {
		return nil, err
	}

	if resp.WebPixel == nil || resp.WebPixel.ID == "" {
		return nil, model.NewNotFoundError("web pixel")
	}
	return pixelFromPayload(*resp.WebPixel), nil
}

const webPixelCreateMutation = `
mutation webPixelCreate($webPixel: WebPixelInput!) {
  webPixelCreate(webPixel: $webPixel) {
    webPixel {
      id
      settings
    }
    userErrors {
      field
      message
    }
  }
}`

// CreateWebPixel registers the analytics pixel with the given settings.
func (c *Client) CreateWebPixel(ctx context.Context, settings model.PixelSettings) (*model.WebPixel, error) {
	encoded, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encoding pixel settings: %w", err)
	}
	variables := map[string]any{
		"webPixel": map[string]any{"settings": string(encoded)},
	}

	var resp struct {
		WebPixelCreate struct {
			WebPixel   *webPixelPayload `json:"webPixel"`
			UserErrors []userError      `json:"userErrors"`
		} `json:"webPixelCreate"`
	}
	if err := c.do(ctx, "webPixelCreate", webPixelCreateMutation, variables, &resp); err != nil {
		return nil, err
	}

	payload := resp.WebPixelCreate
	if len(payload.UserErrors) > 0 {
		return nil, model.NewUserErrorsError("webPixelCreate", userErrorMessages(payload.UserErrors))
	}
	if payload.WebPixel == nil {
		return nil, model.NewUpstreamError("Shopify", fmt.Errorf("webPixelCreate returned no pixel"))
	}
	return pixelFromPayload(*payload.WebPixel), nil
}

const webPixelUpdateMutation = `
mutation webPixelUpdate($id: ID!, $webPixel: WebPixelInput!) {
  webPixelUpdate(id: $id, webPixel: $webPixel) {
    webPixel {
      id
      settings
    }
    userErrors {
      field
      message
    }
  }
}`

// UpdateWebPixel replaces the settings of an existing pixel.
func (c *Client) UpdateWebPixel(ctx context.Context, id string, settings model.PixelSettings) (*model.WebPixel, error) {
	encoded, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encoding pixel settings: %w", err)
	}
	variables := map[string]any{
		"id":       id,
		"webPixel": map[string]any{"settings": string(encoded)},
	}

	var resp struct {
		WebPixelUpdate struct {
			WebPixel   *webPixelPayload `json:"webPixel"`
			UserErrors []userError      `json:"userErrors"`
		} `json:"webPixelUpdate"`
	}
	if err := c.do(ctx, "webPixelUpdate", webPixelUpdateMutation, variables, &resp); err != nil {
		return nil, err
	}

	payload := resp.WebPixelUpdate
	if len(payload.UserErrors) > 0 {
		return nil, model.NewUserErrorsError("webPixelUpdate", userErrorMessages(payload.UserErrors))
	}
	if payload.WebPixel == nil {
		return nil, model.NewNotFoundError("web pixel")
	}
	return pixelFromPayload(*payload.WebPixel), nil
}

const webPixelDeleteMutation = `
mutation webPixelDelete($id: ID!) {
  webPixelDelete(id: $id) {
    deletedWebPixelId
    userErrors {
      field
      message
    }
  }
}`

// DeleteWebPixel removes the pixel registration.
func (c *Client) DeleteWebPixel(ctx context.Context, id string) error {
	variables := map[string]any{"id": id}

	var resp struct {
		WebPixelDelete struct {
			DeletedWebPixelID string      `json:"deletedWebPixelId"`
			UserErrors        []userError `json:"userErrors"`
		} `json:"webPixelDelete"`
	}
	if err := c.do(ctx, "webPixelDelete", webPixelDeleteMutation, variables, &resp); err != nil {
		return err
	}

	payload := resp.WebPixelDelete
	if len(payload.UserErrors) > 0 {
		return model.NewUserErrorsError("webPixelDelete", userErrorMessages(payload.UserErrors))
	}
	if payload.DeletedWebPixelID == "" {
		return model.NewNotFoundError("web pixel")
	}
	return nil
}
