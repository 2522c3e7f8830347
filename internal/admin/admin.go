// Package admin defines the interface for Shopify Admin API operations.
// The shopify package provides the production implementation; Mock serves tests.
package admin

import (
	"context"

	"merchantkit/internal/model"
)

// API abstracts the Admin GraphQL operations the service depends on.
//
// All methods return model types ready for serialization. Platform error
// handling is encapsulated in the implementation: mutation validation
// failures surface as model.APIError with code USER_ERRORS, transport and
// GraphQL faults as upstream errors.
type API interface {
	// StagedUpload allocates a temporary pre-signed upload location.
	// Maps to stagedUploadsCreate with resource FILE and HTTP method POST.
	// The staging slot expires platform-side if never used.
	StagedUpload(ctx context.Context, req model.UploadRequest) (*model.StagedTarget, error)

	// CreateFile registers an uploaded staged resource as a managed file.
	// Maps to fileCreate. The returned file is usually still processing.
	CreateFile(ctx context.Context, resourceURL, filename string) (*model.GenericFile, error)

	// FileByID fetches the current processing status of a managed file.
	FileByID(ctx context.Context, id string) (*model.GenericFile, error)

	// ActiveCheckoutProfile returns the shop's published checkout profile.
	// Returns a not-found error when none is published.
	ActiveCheckoutProfile(ctx context.Context) (*model.CheckoutProfile, error)

	// UpsertFontBranding points checkout typography at the given file:
	// primary and secondary roles, regular and bold weights, all referencing
	// the same file id. Returns the typography the platform persisted.
	UpsertFontBranding(ctx context.Context, profileID, fileID string) (*model.FontBinding, error)

	// ListFAQs returns all FAQ metaobjects in storage order.
	ListFAQs(ctx context.Context) ([]model.FAQ, error)

	// CreateFAQ creates one FAQ metaobject.
	CreateFAQ(ctx context.Context, question, answer string) (*model.FAQ, error)

	// UpdateFAQ rewrites the fields of an existing FAQ metaobject.
	UpdateFAQ(ctx context.Context, id, question, answer string) (*model.FAQ, error)

	// DeleteFAQ removes an FAQ metaobject.
	DeleteFAQ(ctx context.Context, id string) error

	// WebPixel returns the app's pixel registration.
	// Returns a not-found error when no pixel is registered.
	WebPixel(ctx context.Context) (*model.WebPixel, error)

	// CreateWebPixel registers the analytics pixel with the given settings.
	CreateWebPixel(ctx context.Context, settings model.PixelSettings) (*model.WebPixel, error)

	// UpdateWebPixel replaces the settings of an existing pixel.
	UpdateWebPixel(ctx context.Context, id string, settings model.PixelSettings) (*model.WebPixel, error)

	// DeleteWebPixel removes the pixel registration.
	DeleteWebPixel(ctx context.Context, id string) error

	// CreateRaffleDiscount creates the automatic app discount backing the
	// raffle promotion. functionID identifies the deployed discount function.
	CreateRaffleDiscount(ctx context.Context, functionID string, cfg model.RaffleConfig) (*model.RaffleDiscount, error)

	// SaveRaffleConfig persists the prize table on the app installation.
	SaveRaffleConfig(ctx context.Context, cfg model.RaffleConfig) error

	// RaffleConfig reads the prize table back.
	// Returns a not-found error when the promotion was never configured.
	RaffleConfig(ctx context.Context) (*model.RaffleConfig, error)

	// CancelOrder cancels an order with the given reason, refunding payment
	// and restocking inventory. Returns the platform job id for the
	// asynchronous cancellation.
	CancelOrder(ctx context.Context, orderID, reason string) (string, error)

	// SetAgeVerified writes the age-verification metafield on an order.
	SetAgeVerified(ctx context.Context, orderID string, verified bool) error

	// CreateProduct creates a product in active status.
	CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error)
}
