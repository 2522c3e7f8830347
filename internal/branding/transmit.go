package branding

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"merchantkit/internal/model"
)

// Response bodies beyond this are truncated in transmit errors.
const maxErrorBody = 8 << 10

// transmit streams the payload to the staged target.
//
// The multipart body carries every staged parameter first, in the order the
// platform supplied them, then the binary as the final "file" part. The
// storage backend validates fields positionally and ignores any field that
// follows the payload.
func (s *Service) transmit(ctx context.Context, target *model.StagedTarget, req model.UploadRequest, payload []byte) *StepError {
	body, contentType, err := multipartBody(target.Parameters, req.Filename, payload)
	if err != nil {
		return newUnexpectedError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, body)
	if err != nil {
		return newUnexpectedError(err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := s.uploads.Do(httpReq)
	if err != nil {
		return newUnexpectedError(err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newTransmitError(resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}

// multipartBody builds the upload form.
func multipartBody(params []model.StagedParameter, filename string, payload []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, p := range params {
		if err := writer.WriteField(p.Name, p.Value); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", p.Name, err)
		}
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return nil, "", fmt.Errorf("writing payload: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}
