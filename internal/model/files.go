// Package model defines data structures shared across the service:
// upload staging, managed files, checkout branding, and store content.
package model

// === Upload Staging ===

// UploadRequest describes a binary asset to be staged for upload.
// Built once per pipeline invocation and never mutated.
type UploadRequest struct {
	Filename  string
	MimeType  string
	SizeBytes int64
}

// StagedTarget is a temporary pre-signed upload location issued by the platform.
// Parameters must be sent with the upload in the order supplied; the storage
// backend validates field presence positionally.
type StagedTarget struct {
	URL         string
	ResourceURL string
	Parameters  []StagedParameter
}

// StagedParameter is a single credential form field for a staged upload.
type StagedParameter struct {
	Name  string
	Value string
}

// === Managed Files ===

// FileStatus is the platform-side processing state of a managed file.
type FileStatus string

const (
	FileStatusUploaded   FileStatus = "UPLOADED"
	FileStatusProcessing FileStatus = "PROCESSING"
	FileStatusReady      FileStatus = "READY"
	FileStatusFailed     FileStatus = "FAILED"
)

// Pending reports whether the file is still being processed.
// UPLOADED and PROCESSING both count as pending; READY and FAILED are terminal.
func (s FileStatus) Pending() bool {
	return s != FileStatusReady && s != FileStatusFailed
}

// GenericFile is the platform's record of an uploaded file.
// Created by fileCreate; the status is mutated only by the platform
// and observed via polling.
type GenericFile struct {
	ID     string     `json:"id"`
	Status FileStatus `json:"status"`
	URL    string     `json:"url,omitempty"`
}
