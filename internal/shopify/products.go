package shopify

import (
	"context"
	"fmt"

	"merchantkit/internal/model"
)

// === Products ===

const productCreateMutation = `
mutation productCreate($product: ProductCreateInput!) {
  productCreate(product: $product) {
    product {
      id
      title
      handle
      status
    }
    userErrors {
      field
      message
    }
  }
}`

// CreateProduct creates a product in active status.
func (c *Client) CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	product := map[string]any{
		"title":  input.Title,
		"status": "ACTIVE",
	}
	if input.Description != "" {
		product["descriptionHtml"] = input.Description
	}
	if input.Vendor != "" {
		product["vendor"] = input.Vendor
	}
	if len(input.Tags) > 0 {
		product["tags"] = input.Tags
	}

	variables := map[string]any{"product": product}

	var resp struct {
		ProductCreate struct {
			Product *struct {
				ID     string `json:"id"`
				Title  string `json:"title"`
				Handle string `json:"handle"`
				Status string `json:"status"`
			} `json:"product"`
			UserErrors []userError `json:"userErrors"`
		} `json:"productCreate"`
	}
	if err := c.do(ctx, "productCreate", productCreateMutation, variables, &resp); err != nil {
		return nil, err
	}

	payload := resp.ProductCreate
	if len(payload.UserErrors) > 0 {
		return nil, model.NewUserErrorsError("productCreate", userErrorMessages(payload.UserErrors))
	}
	if payload.Product == nil {
		return nil, model.NewUpstreamError("Shopify", fmt.Errorf("productCreate returned no product"))
	}

	return &model.Product{
		ID:     payload.Product.ID,
		Title:  payload.Product.Title,
		Handle: payload.Product.Handle,
		Status: payload.Product.Status,
	}, nil
}
