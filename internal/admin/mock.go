package admin

import (
	"context"

	"merchantkit/internal/model"
)

// Mock implements API for testing.
// Each method can be configured via function fields.
type Mock struct {
	StagedUploadFunc          func(ctx context.Context, req model.UploadRequest) (*model.StagedTarget, error)
	CreateFileFunc            func(ctx context.Context, resourceURL, filename string) (*model.GenericFile, error)
	FileByIDFunc              func(ctx context.Context, id string) (*model.GenericFile, error)
	ActiveCheckoutProfileFunc func(ctx context.Context) (*model.CheckoutProfile, error)
	UpsertFontBrandingFunc    func(ctx context.Context, profileID, fileID string) (*model.FontBinding, error)
	ListFAQsFunc              func(ctx context.Context) ([]model.FAQ, error)
	CreateFAQFunc             func(ctx context.Context, question, answer string) (*model.FAQ, error)
	UpdateFAQFunc             func(ctx context.Context, id, question, answer string) (*model.FAQ, error)
	DeleteFAQFunc             func(ctx context.Context, id string) error
	WebPixelFunc              func(ctx context.Context) (*model.WebPixel, error)
	CreateWebPixelFunc        func(ctx context.Context, settings model.PixelSettings) (*model.WebPixel, error)
	UpdateWebPixelFunc        func(ctx context.Context, id string, settings model.PixelSettings) (*model.WebPixel, error)
	DeleteWebPixelFunc        func(ctx context.Context, id string) error
	CreateRaffleDiscountFunc  func(ctx context.Context, functionID string, cfg model.RaffleConfig) (*model.RaffleDiscount, error)
	SaveRaffleConfigFunc      func(ctx context.Context, cfg model.RaffleConfig) error
	RaffleConfigFunc          func(ctx context.Context) (*model.RaffleConfig, error)
	CancelOrderFunc           func(ctx context.Context, orderID, reason string) (string, error)
	SetAgeVerifiedFunc        func(ctx context.Context, orderID string, verified bool) error
	CreateProductFunc         func(ctx context.Context, input model.ProductInput) (*model.Product, error)
}

// StagedUpload calls the configured StagedUploadFunc or returns an error.
func (m *Mock) StagedUpload(ctx context.Context, req model.UploadRequest) (*model.StagedTarget, error) {
	if m.StagedUploadFunc != nil {
		return m.StagedUploadFunc(ctx, req)
	}
	return nil, model.NewInternalError(nil)
}

// CreateFile calls the configured CreateFileFunc or returns an error.
func (m *Mock) CreateFile(ctx context.Context, resourceURL, filename string) (*model.GenericFile, error) {
	if m.CreateFileFunc != nil {
		return m.CreateFileFunc(ctx, resourceURL, filename)
	}
	return nil, model.NewInternalError(nil)
}

// FileByID calls the configured FileByIDFunc or returns an error.
func (m *Mock) FileByID(ctx context.Context, id string) (*model.GenericFile, error) {
	if m.FileByIDFunc != nil {
		return m.FileByIDFunc(ctx, id)
	}
	return nil, model.NewNotFoundError("file")
}

// ActiveCheckoutProfile calls the configured func or returns an error.
func (m *Mock) ActiveCheckoutProfile(ctx context.Context) (*model.CheckoutProfile, error) {
	if m.ActiveCheckoutProfileFunc != nil {
		return m.ActiveCheckoutProfileFunc(ctx)
	}
	return nil, model.NewNotFoundError("checkout profile")
}

// UpsertFontBranding calls the configured func or returns an error.
func (m *Mock) UpsertFontBranding(ctx context.Context, profileID, fileID string) (*model.FontBinding, error) {
	if m.UpsertFontBrandingFunc != nil {
		return m.UpsertFontBrandingFunc(ctx, profileID, fileID)
	}
	return nil, model.NewInternalError(nil)
}

// ListFAQs calls the configured ListFAQsFunc or returns an empty list.
func (m *Mock) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	if m.ListFAQsFunc != nil {
		return m.ListFAQsFunc(ctx)
	}
	return []model.FAQ{}, nil
}

// CreateFAQ calls the configured CreateFAQFunc or returns an error.
func (m *Mock) CreateFAQ(ctx context.Context, question, answer string) (*model.FAQ, error) {
	if m.CreateFAQFunc != nil {
		return m.CreateFAQFunc(ctx, question, answer)
	}
	return nil, model.NewInternalError(nil)
}

// UpdateFAQ calls the configured UpdateFAQFunc or returns an error.
func (m *Mock) UpdateFAQ(ctx context.Context, id, question, answer string) (*model.FAQ, error) {
	if m.UpdateFAQFunc != nil {
		return m.UpdateFAQFunc(ctx, id, question, answer)
	}
	return nil, model.NewNotFoundError("faq")
}

// DeleteFAQ calls the configured DeleteFAQFunc or returns an error.
func (m *Mock) DeleteFAQ(ctx context.Context, id string) error {
	if m.DeleteFAQFunc != nil {
		return m.DeleteFAQFunc(ctx, id)
	}
	return model.NewNotFoundError("faq")
}

// WebPixel calls the configured WebPixelFunc or returns an error.
func (m *Mock) WebPixel(ctx context.Context) (*model.WebPixel, error) {
	if m.WebPixelFunc != nil {
		return m.WebPixelFunc(ctx)
	}
	return nil, model.NewNotFoundError("web pixel")
}

// CreateWebPixel calls the configured CreateWebPixelFunc or returns an error.
func (m *Mock) CreateWebPixel(ctx context.Context, settings model.PixelSettings) (*model.WebPixel, error) {
	if m.CreateWebPixelFunc != nil {
		return m.CreateWebPixelFunc(ctx, settings)
	}
	return nil, model.NewInternalError(nil)
}

// UpdateWebPixel calls the configured UpdateWebPixelFunc or returns an error.
func (m *Mock) UpdateWebPixel(ctx context.Context, id string, settings model.PixelSettings) (*model.WebPixel, error) {
	if m.UpdateWebPixelFunc != nil {
		return m.UpdateWebPixelFunc(ctx, id, settings)
	}
	return nil, model.NewNotFoundError("web pixel")
}

// DeleteWebPixel calls the configured DeleteWebPixelFunc or returns an error.
func (m *Mock) DeleteWebPixel(ctx context.Context, id string) error {
	if m.DeleteWebPixelFunc != nil {
		return m.DeleteWebPixelFunc(ctx, id)
	}
	return model.NewNotFoundError("web pixel")
}

// CreateRaffleDiscount calls the configured func or returns an error.
func (m *Mock) CreateRaffleDiscount(ctx context.Context, functionID string, cfg model.RaffleConfig) (*model.RaffleDiscount, error) {
	if m.CreateRaffleDiscountFunc != nil {
		return m.CreateRaffleDiscountFunc(ctx, functionID, cfg)
	}
	return nil, model.NewInternalError(nil)
}

// SaveRaffleConfig calls the configured SaveRaffleConfigFunc or succeeds.
func (m *Mock) SaveRaffleConfig(ctx context.Context, cfg model.RaffleConfig) error {
	if m.SaveRaffleConfigFunc != nil {
		return m.SaveRaffleConfigFunc(ctx, cfg)
	}
	return nil
}

// RaffleConfig calls the configured RaffleConfigFunc or returns an error.
func (m *Mock) RaffleConfig(ctx context.Context) (*model.RaffleConfig, error) {
	if m.RaffleConfigFunc != nil {
		return m.RaffleConfigFunc(ctx)
	}
	return nil, model.NewNotFoundError("raffle config")
}

// CancelOrder calls the configured CancelOrderFunc or returns an error.
func (m *Mock) CancelOrder(ctx context.Context, orderID, reason string) (string, error) {
	if m.CancelOrderFunc != nil {
		return m.CancelOrderFunc(ctx, orderID, reason)
	}
	return "", model.NewNotFoundError("order")
}

// SetAgeVerified calls the configured SetAgeVerifiedFunc or succeeds.
func (m *Mock) SetAgeVerified(ctx context.Context, orderID string, verified bool) error {
	if m.SetAgeVerifiedFunc != nil {
		return m.SetAgeVerifiedFunc(ctx, orderID, verified)
	}
	return nil
}

// CreateProduct calls the configured CreateProductFunc or returns an error.
func (m *Mock) CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, input)
	}
	return nil, model.NewInternalError(nil)
}

// Verify Mock implements API interface at compile time.
var _ API = (*Mock)(nil)
