package branding

import (
	"errors"
	"fmt"

	"merchantkit/internal/model"
)

// Step failure codes, one per pipeline stage plus a catch-all.
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeProvisionFailed   = "PROVISION_FAILED"
	CodeTransmitFailed    = "TRANSMIT_FAILED"
	CodeRegisterFailed    = "REGISTER_FAILED"
	CodeProcessingFailed  = "PROCESSING_FAILED"
	CodeProcessingTimeout = "PROCESSING_TIMEOUT"
	CodeNoActiveProfile   = "NO_ACTIVE_PROFILE"
	CodeBindingFailed     = "BINDING_FAILED"
	CodeUnexpected        = "UNEXPECTED"
)

// StepError is a pipeline failure attributed to one step.
// Message is the short summary surfaced as Result.Message; Detail carries
// the cause surfaced as Result.Error.
type StepError struct {
	Code    string
	Message string
	Detail  string
	Err     error // wrapped cause, for logs and errors.Is
}

func (e *StepError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// newInvalidTypeError rejects filenames outside the permitted extensions.
func newInvalidTypeError() *StepError {
	return &StepError{
		Code:    CodeInvalidInput,
		Message: "Invalid file type",
		Detail:  "Only .woff and .woff2 files are allowed",
	}
}

// newEmptyFileError rejects uploads with no payload bytes.
func newEmptyFileError() *StepError {
	return &StepError{
		Code:    CodeInvalidInput,
		Message: "Invalid file",
		Detail:  "File is empty",
	}
}

// newProvisionError wraps a staged-upload allocation failure.
func newProvisionError(err error) *StepError {
	return &StepError{
		Code:    CodeProvisionFailed,
		Message: "Failed to create upload target",
		Detail:  platformDetail(err),
		Err:     err,
	}
}

// newTransmitError reports a non-2xx response from the staged target.
func newTransmitError(status int, body string) *StepError {
	return &StepError{
		Code:    CodeTransmitFailed,
		Message: "Font upload failed",
		Detail:  fmt.Sprintf("upload returned status %d: %s", status, body),
	}
}

// newRegisterError wraps a file registration failure.
func newRegisterError(err error) *StepError {
	return &StepError{
		Code:    CodeRegisterFailed,
		Message: "Failed to register font file",
		Detail:  platformDetail(err),
		Err:     err,
	}
}

// newProcessingError reports a file the platform marked FAILED.
func newProcessingError() *StepError {
	return &StepError{
		Code:    CodeProcessingFailed,
		Message: "File processing failed",
		Detail:  "The file could not be processed",
	}
}

// newProcessingTimeoutError reports the poll attempts exhausted while pending.
func newProcessingTimeoutError() *StepError {
	return &StepError{
		Code:    CodeProcessingTimeout,
		Message: "File processing timeout",
		Detail:  "File took too long to process",
	}
}

// newNoActiveProfileError reports a shop without a published checkout profile.
func newNoActiveProfileError() *StepError {
	return &StepError{
		Code:    CodeNoActiveProfile,
		Message: "No active checkout profile",
		Detail:  "No published checkout profile was found",
	}
}

// newBindingError wraps a branding upsert failure.
func newBindingError(err error) *StepError {
	return &StepError{
		Code:    CodeBindingFailed,
		Message: "Failed to apply font to checkout",
		Detail:  platformDetail(err),
		Err:     err,
	}
}

// newUnexpectedError wraps transport and parse faults from any step.
func newUnexpectedError(err error) *StepError {
	return &StepError{
		Code:    CodeUnexpected,
		Message: "Unexpected error",
		Detail:  err.Error(),
		Err:     err,
	}
}

// platformDetail extracts the platform's own message from an error chain.
// APIError messages already carry the mutation's validation text.
func platformDetail(err error) string {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
