package shopify

import (
	"context"
	"fmt"

	"merchantkit/internal/model"
)

// === FAQ Metaobjects ===
//
// FAQ entries live as metaobjects of type "faq" with two fields, question
// and answer. Metaobjects keep them visible to the merchant in the admin
// and queryable from theme storefronts without extra plumbing.

const faqMetaobjectType = "faq"

const faqListQuery = `
query faqEntries($type: String!, $first: Int!) {
  metaobjects(type: $type, first: $first) {
    edges {
      node {
        id
        fields {
          key
          value
        }
      }
    }
  }
}`

// metaobjectField is one key/value pair on a metaobject.
type metaobjectField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// metaobjectPayload is the shared response shape of metaobject mutations.
type metaobjectPayload struct {
	ID     string            `json:"id"`
	Fields []metaobjectField `json:"fields"`
}

// faqFromFields maps metaobject fields onto the FAQ model.
// Unknown field keys are ignored.
func faqFromFields(id string, fields []metaobjectField) model.FAQ {
	faq := model.FAQ{ID: id}
	for _, f := range fields {
		switch f.Key {
		case "question":
			faq.Question = f.Value
		case "answer":
			faq.Answer = f.Value
		}
	}
	return faq
}

func faqFieldsInput(question, answer string) []map[string]any {
	return []map[string]any{
		{"key": "question", "value": question},
		{"key": "answer", "value": answer},
	}
}

// ListFAQs returns all FAQ metaobjects in storage order.
func (c *Client) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	variables := map[string]any{
		"type":  faqMetaobjectType,
		"first": 100,
	}

	var resp struct {
		Metaobjects struct {
			Edges []struct {
				Node metaobjectPayload `json:"node"`
			} `json:"edges"`
		} `json:"metaobjects"`
	}
	if err := c.do(ctx, "metaobjects", faqListQuery, variables, &resp); err != nil {
		return nil, err
	}

	faqs := make([]model.FAQ, 0, len(resp.Metaobjects.Edges))
	for _, edge := range resp.Metaobjects.Edges {
		faqs = append(faqs, faqFromFields(edge.Node.ID, edge.Node.Fields))
	}
	return faqs, nil
}

const metaobjectCreateMutation = `
mutation metaobjectCreate($metaobject: MetaobjectCreateInput!) {
  metaobjectCreate(metaobject: $metaobject) {
    metaobject {
      id
      fields {
        key
        value
      }
    }
    userErrors {
      field
      message
    }
  }
}`

// CreateFAQ creates one FAQ metaobject.
func (c *Client) CreateFAQ(ctx context.Context, question, answer string) (*model.FAQ, error) {
	variables := map[string]any{
		"metaobject": map[string]any{
			"type":   faqMetaobjectType,
			"fields": faqFieldsInput(question, answer),
		},
	}

	var resp struct {
		MetaobjectCreate struct {
			Metaobject *metaobjectPayload `json:"metaobject"`
			UserErrors []userError        `json:"userErrors"`
		} `json:"metaobjectCreate"`
	}
	if err := c.do(ctx, "metaobjectCreate", metaobjectCreateMutation, variables, &resp); err != nil {
		return nil, err
	}

	payload := resp.MetaobjectCreate
	if len(payload.UserErrors) > 0 {
		return nil, model.NewUserErrorsError("metaobjectCreate", userErrorMessages(payload.UserErrors))
	}
	if payload.Metaobject == nil {
		return nil, model.NewUpstreamError("Shopify", fmt.Errorf("metaobjectCreate returned no metaobject"))
	}

	faq := faqFromFields(payload.Metaobject.ID, payload.Metaobject.Fields)
	return &faq, nil
}

const metaobjectUpdateMutation = `
mutation metaobjectUpdate($id: ID!, $metaobject: MetaobjectUpdateInput!) {
  metaobjectUpdate(id: $id, metaobject: $metaobject) {
    metaobject {
      id
      fields {
        key
        value
      }
    }
    userErrors {
      field
      message
    }
  }
}`

// UpdateFAQ rewrites both fields of an existing FAQ metaobject.
func (c *Client) UpdateFAQ(ctx context.Context, id, question, answer string) (*model.FAQ, error) {
	variables := map[string]any{
		"id": id,
		"metaobject": map[string]any{
			"fields": faqFieldsInput(question, answer),
		},
	}

	var resp struct {
		MetaobjectUpdate struct {
			Metaobject *metaobjectPayload `json:"metaobject"`
			UserErrors []userError        `json:"userErrors"`
		} `json:"metaobjectUpdate"`
	}
	if err := c.do(ctx, "metaobjectUpdate", metaobjectUpdateMutation, variables, &resp); err != nil {
		return nil, err
	}

	payload := resp.MetaobjectUpdate
	if len(payload.UserErrors) > 0 {
		return nil, model.NewUserErrorsError("metaobjectUpdate", userErrorMessages(payload.UserErrors))
	}
	if payload.Metaobject == nil {
		return nil, model.NewNotFoundError("faq")
	}

	faq := faqFromFields(payload.Metaobject.ID, payload.Metaobject.Fields)
	return &faq, nil
}

const metaobjectDeleteMutation = `
mutation metaobjectDelete($id: ID!) {
  metaobjectDelete(id: $id) {
    deletedId
    userErrors {
      field
      message
    }
  }
}`

// DeleteFAQ removes an FAQ metaobject.
func (c *Client) DeleteFAQ(ctx context.Context, id string) error {
	variables := map[string]any{"id": id}

	var resp struct {
		MetaobjectDelete struct {
			DeletedID  string      `json:"deletedId"`
			UserErrors []userError `json:"userErrors"`
		} `json:"metaobjectDelete"`
	}
	if err := c.do(ctx, "metaobjectDelete", metaobjectDeleteMutation, variables, &resp); err != nil {
		return err
	}

	payload := resp.MetaobjectDelete
	if len(payload.UserErrors) > 0 {
		return model.NewUserErrorsError("metaobjectDelete", userErrorMessages(payload.UserErrors))
	}
	if payload.DeletedID == "" {
		return model.NewNotFoundError("faq")
	}
	return nil
}
