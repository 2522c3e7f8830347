package model

// === Checkout Branding ===

// CheckoutProfile is a checkout configuration bundle on the platform.
// Pre-existing and read-only to this service; branding changes target
// the published profile.
type CheckoutProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FontBinding is the typography structure the platform persisted after a
// branding upsert, returned for confirmation display.
type FontBinding struct {
	Primary   FontGroup `json:"primary"`
	Secondary FontGroup `json:"secondary"`
}

// FontGroup holds the two weight variants of one typography role.
type FontGroup struct {
	Base Font `json:"base"`
	Bold Font `json:"bold"`
}

// Font is a single custom font slot as the platform reports it.
// Sources is a CSS src expression pointing at the stored font file.
type Font struct {
	Sources string `json:"sources,omitempty"`
	Weight  int    `json:"weight"`
}
