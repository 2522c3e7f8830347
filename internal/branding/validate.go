package branding

import (
	"path/filepath"
	"strings"

	"merchantkit/internal/model"
)

// fontMIMETypes is the fixed extension-to-MIME table for permitted uploads.
// Two entries only; nothing is inferred from file content.
var fontMIMETypes = map[string]string{
	".woff":  "font/woff",
	".woff2": "font/woff2",
}

// buildUploadRequest validates the filename and sizes the payload.
// Runs before any network call, so a bad extension costs nothing upstream.
func buildUploadRequest(filename string, payload []byte) (*model.UploadRequest, *StepError) {
	mimeType, ok := fontMIMETypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return nil, newInvalidTypeError()
	}
	if len(payload) == 0 {
		return nil, newEmptyFileError()
	}
	return &model.UploadRequest{
		Filename:  filename,
		MimeType:  mimeType,
		SizeBytes: int64(len(payload)),
	}, nil
}
