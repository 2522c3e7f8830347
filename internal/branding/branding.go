// Package branding applies custom fonts to a shop's checkout.
package branding

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"merchantkit/internal/admin"
	"merchantkit/internal/model"
)

// =============================================================================
// FONT BRANDING PIPELINE
// =============================================================================
//
// Applying a checkout font is a six-step orchestration against the Admin API:
//
//   1. stagedUploadsCreate    - allocate a pre-signed upload target
//   2. multipart POST         - stream the font straight to storage
//   3. fileCreate             - register the upload as a managed file
//   4. node(id) polling       - wait out asynchronous file processing
//   5. checkoutProfiles       - resolve the published profile
//   6. checkoutBrandingUpsert - point checkout typography at the ready file
//
// Steps run strictly in order and share no state beyond each step's output.
// The first failure aborts the run. There is no rollback: staged uploads
// left unused expire platform-side, and registered files that never reach a
// branding upsert are inert in the shop's file library.
// =============================================================================

const (
	defaultPollInterval  = time.Second
	defaultPollAttempts  = 30
	defaultUploadTimeout = 60 * time.Second

	appliedMessage = "Font successfully applied to checkout branding"
)

// Service runs the font branding pipeline.
type Service struct {
	api          admin.API
	uploads      *http.Client
	logger       zerolog.Logger
	pollInterval time.Duration
	pollAttempts int
}

// Options configures a Service. API is required; everything else defaults.
type Options struct {
	API admin.API

	// UploadClient performs the staged-target POST. Defaults to a client
	// with a 60 second timeout; font payloads can be megabytes.
	UploadClient *http.Client

	Logger zerolog.Logger

	// PollInterval is the constant delay between file status queries.
	// Defaults to one second.
	PollInterval time.Duration

	// PollAttempts caps how many status queries run before the upload is
	// declared timed out. Defaults to 30.
	PollAttempts int
}

// NewService builds a Service from opts.
func NewService(opts Options) *Service {
	s := &Service{
		api:          opts.API,
		uploads:      opts.UploadClient,
		logger:       opts.Logger,
		pollInterval: opts.PollInterval,
		pollAttempts: opts.PollAttempts,
	}
	if s.uploads == nil {
		s.uploads = &http.Client{Timeout: defaultUploadTimeout}
	}
	if s.pollInterval <= 0 {
		s.pollInterval = defaultPollInterval
	}
	if s.pollAttempts <= 0 {
		s.pollAttempts = defaultPollAttempts
	}
	return s
}

// Result is the pipeline's outward contract. Failures carry the step's
// summary in Message and its cause in Error; successes carry only Message.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// resultFromError converts a step failure into the uniform failure result.
func resultFromError(err *StepError) Result {
	return Result{Success: false, Message: err.Message, Error: err.Detail}
}

// Apply runs the pipeline for one font upload. Every failure is folded into
// the returned Result; nothing escapes as an error.
func (s *Service) Apply(ctx context.Context, filename string, payload []byte) Result {
	logger := s.logger.With().Str("filename", filename).Logger()

	req, stepErr := buildUploadRequest(filename, payload)
	if stepErr != nil {
		return s.fail(logger, "validate", stepErr)
	}
	logger.Debug().Int64("size_bytes", req.SizeBytes).Str("mime_type", req.MimeType).Msg("font accepted for upload")

	target, stepErr := s.provision(ctx, *req)
	if stepErr != nil {
		return s.fail(logger, "provision", stepErr)
	}

	if stepErr := s.transmit(ctx, target, *req, payload); stepErr != nil {
		return s.fail(logger, "transmit", stepErr)
	}

	file, stepErr := s.register(ctx, target, *req)
	if stepErr != nil {
		return s.fail(logger, "register", stepErr)
	}

	file, stepErr = s.awaitReady(ctx, file)
	if stepErr != nil {
		return s.fail(logger, "poll", stepErr)
	}

	profile, stepErr := s.resolveProfile(ctx)
	if stepErr != nil {
		return s.fail(logger, "profile", stepErr)
	}

	if stepErr := s.bind(ctx, profile, file); stepErr != nil {
		return s.fail(logger, "bind", stepErr)
	}

	logger.Info().Str("file_id", file.ID).Str("profile_id", profile.ID).Msg("font applied to checkout branding")
	return Result{Success: true, Message: appliedMessage}
}

// fail logs one step failure and converts it to the uniform result.
func (s *Service) fail(logger zerolog.Logger, step string, stepErr *StepError) Result {
	event := logger.Error().Str("step", step).Str("code", stepErr.Code)
	if stepErr.Err != nil {
		event = event.Err(stepErr.Err)
	}
	event.Msg(stepErr.Message)
	return resultFromError(stepErr)
}

// provision allocates the staged upload target for the font binary.
func (s *Service) provision(ctx context.Context, req model.UploadRequest) (*model.StagedTarget, *StepError) {
	target, err := s.api.StagedUpload(ctx, req)
	if err != nil {
		return nil, newProvisionError(err)
	}
	if target.URL == "" {
		return nil, newProvisionError(errors.New("staged target has no upload url"))
	}
	return target, nil
}

// register records the transmitted upload as a managed file.
func (s *Service) register(ctx context.Context, target *model.StagedTarget, req model.UploadRequest) (*model.GenericFile, *StepError) {
	file, err := s.api.CreateFile(ctx, target.ResourceURL, req.Filename)
	if err != nil {
		return nil, newRegisterError(err)
	}
	return file, nil
}

// awaitReady blocks until the file reaches a terminal processing status.
//
// The registration response already carries a status; READY and FAILED there
// settle the step without a single query. Otherwise the file is re-queried at
// a constant interval, at most pollAttempts times, so worst-case latency is
// pollAttempts times pollInterval.
func (s *Service) awaitReady(ctx context.Context, file *model.GenericFile) (*model.GenericFile, *StepError) {
	switch file.Status {
	case model.FileStatusReady:
		return file, nil
	case model.FileStatusFailed:
		return nil, newProcessingError()
	}

	timer := time.NewTimer(s.pollInterval)
	defer timer.Stop()

	for attempt := 1; attempt <= s.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, newUnexpectedError(ctx.Err())
		case <-timer.C:
		}

		current, err := s.api.FileByID(ctx, file.ID)
		if err != nil {
			return nil, newUnexpectedError(err)
		}
		s.logger.Debug().
			Str("file_id", file.ID).
			Int("attempt", attempt).
			Str("status", string(current.Status)).
			Msg("file status poll")

		switch current.Status {
		case model.FileStatusReady:
			return current, nil
		case model.FileStatusFailed:
			return nil, newProcessingError()
		}

		timer.Reset(s.pollInterval)
	}

	return nil, newProcessingTimeoutError()
}

// resolveProfile finds the shop's published checkout profile.
func (s *Service) resolveProfile(ctx context.Context) (*model.CheckoutProfile, *StepError) {
	profile, err := s.api.ActiveCheckoutProfile(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, newNoActiveProfileError()
		}
		return nil, newUnexpectedError(err)
	}
	return profile, nil
}

// bind points the profile's typography at the processed file.
func (s *Service) bind(ctx context.Context, profile *model.CheckoutProfile, file *model.GenericFile) *StepError {
	if _, err := s.api.UpsertFontBranding(ctx, profile.ID, file.ID); err != nil {
		return newBindingError(err)
	}
	return nil
}
