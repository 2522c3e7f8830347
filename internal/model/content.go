package model

import "strings"

// === FAQ Content ===

// FAQ is one question/answer entry, stored as a platform metaobject.
// An empty ID marks an entry that has not been created yet.
type FAQ struct {
	ID       string `json:"id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// === Analytics Pixel ===

// WebPixel is the app's analytics pixel registration.
type WebPixel struct {
	ID       string        `json:"id"`
	Settings PixelSettings `json:"settings"`
}

// PixelSettings is the settings payload for the pixel extension.
// The platform stores it as a JSON-encoded string.
type PixelSettings struct {
	AccountID string `json:"accountID"`
}

// === Raffle Promotion ===

// RaffleConfig defines the prize table for the raffle promotion.
// Stored as the JSON value of an app-installation metafield so the
// storefront draw and the discount function read the same table.
type RaffleConfig struct {
	Title   string         `json:"title"`
	Chances []RaffleChance `json:"chances"`
}

// RaffleChance is one prize tier: a discount percentage and its draw weight.
type RaffleChance struct {
	Percentage int `json:"percentage"`
	Weight     int `json:"weight"`
}

// Validate checks the prize table is usable before it is persisted.
func (c *RaffleConfig) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return NewValidationError("title", "must not be empty")
	}
	if len(c.Chances) == 0 {
		return NewValidationError("chances", "at least one chance is required")
	}
	for _, chance := range c.Chances {
		if chance.Percentage < 1 || chance.Percentage > 100 {
			return NewValidationError("chances", "percentage must be between 1 and 100")
		}
		if chance.Weight <= 0 {
			return NewValidationError("chances", "weight must be positive")
		}
	}
	return nil
}

// TotalWeight returns the sum of all chance weights.
func (c *RaffleConfig) TotalWeight() int {
	total := 0
	for _, chance := range c.Chances {
		total += chance.Weight
	}
	return total
}

// Draw maps a roll in [0, TotalWeight()) to the winning percentage.
// Walks cumulative weights in declaration order. Callers supply the roll,
// which keeps draws deterministic under test.
func (c *RaffleConfig) Draw(roll int) int {
	for _, chance := range c.Chances {
		roll -= chance.Weight
		if roll < 0 {
			return chance.Percentage
		}
	}
	return 0
}

// RaffleDiscount is the automatic discount created for the promotion.
type RaffleDiscount struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// === Products ===

// ProductInput is the merchant-supplied description of a product to create.
type ProductInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Vendor      string   `json:"vendor,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Product is the platform's record of a created product.
type Product struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Status string `json:"status"`
}

// === Orders ===

// Order cancellation reasons the platform accepts.
const (
	CancelReasonCustomer  = "CUSTOMER"
	CancelReasonDeclined  = "DECLINED"
	CancelReasonFraud     = "FRAUD"
	CancelReasonInventory = "INVENTORY"
	CancelReasonOther     = "OTHER"
	CancelReasonStaff     = "STAFF"
)

// ValidCancelReason reports whether reason is one the platform accepts.
func ValidCancelReason(reason string) bool {
	switch reason {
	case CancelReasonCustomer, CancelReasonDeclined, CancelReasonFraud,
		CancelReasonInventory, CancelReasonOther, CancelReasonStaff:
		return true
	}
	return false
}
