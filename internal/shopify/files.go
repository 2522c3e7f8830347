package shopify

import (
	"context"
	"fmt"
	"strconv"

	"merchantkit/internal/model"
)

// === Staged Uploads ===

const stagedUploadsCreateMutation = `
mutation stagedUploadsCreate($input: [StagedUploadInput!]!) {
  stagedUploadsCreate(input: $input) {
    stagedTargets {
      url
      resourceUrl
      parameters {
        name
        value
      }
    }
    userErrors {
      field
      message
    }
  }
}`

// StagedUpload allocates a pre-signed upload target for a file asset.
// fileSize crosses the wire as a string per the Admin API schema.
func (c *Client) StagedUpload(ctx context.Context, req model.UploadRequest) (*model.StagedTarget, error) {
	variables := map[string]any{
		"input": []map[string]any{{
			"resource":   "FILE",
			"filename":   req.Filename,
			"mimeType":   req.MimeType,
			"fileSize":   strconv.FormatInt(req.SizeBytes, 10),
			"httpMethod": "POST",
		}},
	}

	var resp struct {
		StagedUploadsCreate struct {
			StagedTargets []struct {
				URL         string `json:"url"`
				ResourceURL string `json:"resourceUrl"`
				Parameters  []struct {
					Name  string `json:"name"`
					Value string `json:"value"`
				} `json:"parameters"`
			} `json:"stagedTargets"`
			UserErrors []userError `json:"userErrors"`
		} `json:"stagedUploadsCreate"`
	}
	if err := c.do(ctx, "stagedUploadsCreate", stagedUploadsCreateMutation, variables, &resp); err != nil {
		return nil, err
	}

	payload := resp.StagedUploadsCreate
	if len(payload.UserErrors) > 0 {
		return nil, model.NewUserErrorsError("stagedUploadsCreate", userErrorMessages(payload.UserErrors))
	}
	if len(payload.StagedTargets) == 0 {
		return nil, model.NewUpstreamError("Shopify", fmt.Errorf("stagedUploadsCreate returned no targets"))
	}

	t := payload.StagedTargets[0]
	target := &model.StagedTarget{
		URL:         t.URL,
		ResourceURL: t.ResourceURL,
		Parameters:  make([]model.StagedParameter, 0, len(t.Parameters)),
	}
	// Preserve parameter order; the storage backend validates fields positionally.
	for _, p := range t.Parameters {
		target.Parameters = append(target.Parameters, model.StagedParameter{Name: p.Name, Value: p.Value})
	}
	return target, nil
}

// === File Records ===

const fileCreateMutation = `
mutation fileCreate($files: [FileCreateInput!]!) {
  fileCreate(files: $files) {
    files {
      id
      fileStatus
    }
    userErrors {
      field
      message
    }
  }
}`

// CreateFile registers an uploaded staged resource as a managed file.
// The platform processes files asynchronously; the returned status is
// usually UPLOADED or PROCESSING rather than READY.
func (c *Client) CreateFile(ctx context.Context, resourceURL, filename string) (*model.GenericFile, error) {
	variables := map[string]any{
		"files": []map[string]any{{
			"alt":            filename,
			"contentType":    "FILE",
			"originalSource": resourceURL,
		}},
	}

	var resp struct {
		FileCreate struct {
			Files []struct {
				ID         string           `json:"id"`
				FileStatus model.FileStatus `json:"fileStatus"`
			} `json:"files"`
			UserErrors []userError `json:"userErrors"`
		} `json:"fileCreate"`
	}
	if err := c.do(ctx, "fileCreate", fileCreateMutation, variables, &resp); err != nil {
		return nil, err
	}

	payload := resp.FileCreate
	if len(payload.UserErrors) > 0 {
		return nil, model.NewUserErrorsError("fileCreate", userErrorMessages(payload.UserErrors))
	}
	if len(payload.Files) == 0 || payload.Files[0].ID == "" {
		return nil, model.NewUpstreamError("Shopify", fmt.Errorf("fileCreate returned no file id"))
	}

	return &model.GenericFile{
		ID:     payload.Files[0].ID,
		Status: payload.Files[0].FileStatus,
	}, nil
}

const fileStatusQuery = `
query fileStatus($id: ID!) {
  node(id: $id) {
    ... on GenericFile {
      id
      fileStatus
      url
    }
  }
}`

// FileByID fetches the current processing status of a managed file.
func (c *Client) FileByID(ctx context.Context, id string) (*model.GenericFile, error) {
	variables := map[string]any{"id": id}

	var resp struct {
		Node *struct {
			ID         string           `json:"id"`
			FileStatus model.FileStatus `json:"fileStatus"`
			URL        string           `json:"url"`
		} `json:"node"`
	}
	if err := c.do(ctx, "fileStatus", fileStatusQuery, variables, &resp); err != nil {
		return nil, err
	}

	if resp.Node == nil || resp.Node.ID == "" {
		return nil, model.NewNotFoundError("file")
	}

	return &model.GenericFile{
		ID:     resp.Node.ID,
		Status: resp.Node.FileStatus,
		URL:    resp.Node.URL,
	}, nil
}
