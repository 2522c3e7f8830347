package shopify

import (
	"context"

	"merchantkit/internal/model"
)

// === Checkout Branding ===

const checkoutProfilesQuery = `
query activeCheckoutProfile {
  checkoutProfiles(first: 1, query: "is_published:true") {
    edges {
      node {
        id
        name
      }
    }
  }
}`

// ActiveCheckoutProfile returns the shop's published checkout profile.
// Shops have at most one published profile; if the platform ever returns
// more than one match, the first in returned order is canonical.
func (c *Client) ActiveCheckoutProfile(ctx context.Context) (*model.CheckoutProfile, error) {
	var resp struct {
		CheckoutProfiles struct {
			Edges []struct {
				Node struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"checkoutProfiles"`
	}
	if err := c.do(ctx, "checkoutProfiles", checkoutProfilesQuery, nil, &resp); err != nil {
		return nil, err
	}

	edges := resp.CheckoutProfiles.Edges
	if len(edges) == 0 {
		return nil, model.NewNotFoundError("published checkout profile")
	}

	return &model.CheckoutProfile{
		ID:   edges[0].Node.ID,
		Name: edges[0].Node.Name,
	}, nil
}

const checkoutBrandingUpsertMutation = `
mutation checkoutBrandingUpsert($checkoutProfileId: ID!, $checkoutBrandingInput: CheckoutBrandingInput!) {
  checkoutBrandingUpsert(checkoutProfileId: $checkoutProfileId, checkoutBrandingInput: $checkoutBrandingInput) {
    checkoutBranding {
      designSystem {
        typography {
          primary {
            base {
              sources
              weight
            }
            bold {
              sources
              weight
            }
          }
          secondary {
            base {
              sources
              weight
            }
            bold {
              sources
              weight
            }
          }
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}`

// fontGroupPayload mirrors one typography role in the upsert response.
type fontGroupPayload struct {
	Base fontPayload `json:"base"`
	Bold fontPayload `json:"bold"`
}

type fontPayload struct {
	Sources string `json:"sources"`
	Weight  int    `json:"weight"`
}

// UpsertFontBranding points checkout typography at one uploaded font file.
// Primary and secondary roles each get a regular (400) and bold (700)
// variant, all four referencing the same file id; the shop registers one
// physical font for every slot.
func (c *Client) UpsertFontBranding(ctx context.Context, profileID, fileID string) (*model.FontBinding, error) {
	fontGroup := map[string]any{
		"customFontGroup": map[string]any{
			"base": map[string]any{
				"genericFileId": fileID,
				"weight":        400,
			},
			"bold": map[string]any{
				"genericFileId": fileID,
				"weight":        700,
			},
		},
	}
	variables := map[string]any{
		"checkoutProfileId": profileID,
		"checkoutBrandingInput": map[string]any{
			"designSystem": map[string]any{
				"typography": map[string]any{
					"primary":   fontGroup,
					"secondary": fontGroup,
				},
			},
		},
	}

	var resp struct {
		CheckoutBrandingUpsert struct {
			CheckoutBranding *struct {
				DesignSystem struct {
					Typography struct {
						Primary   fontGroupPayload `json:"primary"`
						Secondary fontGroupPayload `json:"secondary"`
					} `json:"typography"`
				} `json:"designSystem"`
			} `json:"checkoutBranding"`
			UserErrors []userError `json:"userErrors"`
		} `json:"checkoutBrandingUpsert"`
	}
	if err := c.do(ctx, "checkoutBrandingUpsert", checkoutBrandingUpsertMutation, variables, &resp); err != nil {
		return nil, err
	}

	payload := resp.CheckoutBrandingUpsert
	if len(payload.UserErrors) > 0 {
		return nil, model.NewUserErrorsError("checkoutBrandingUpsert", userErrorMessages(payload.UserErrors))
	}

	binding := &model.FontBinding{}
	if payload.CheckoutBranding != nil {
		typography := payload.CheckoutBranding.DesignSystem.Typography
		binding.Primary = fontGroupFromPayload(typography.Primary)
		binding.Secondary = fontGroupFromPayload(typography.Secondary)
	}
	return binding, nil
}

func fontGroupFromPayload(p fontGroupPayload) model.FontGroup {
	return model.FontGroup{
		Base: model.Font{Sources: p.Base.Sources, Weight: p.Base.Weight},
		Bold: model.Font{Sources: p.Bold.Sources, Weight: p.Bold.Weight},
	}
}
