package models

import "time"

// ItemPrice is a merchant-supplied per-item price entry on a bid.
// Entries are free-form: merchants may quote any subset of the invoice items.
type ItemPrice struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Bid is a merchant's priced offer on an invoice.
//
// Bids are immutable once placed: no update or replace path exists, and they
// persist after invoice approval as the audit record. At most one bid exists
// per (InvoiceID, MerchantID) pair.
type Bid struct {
	// ID is the unique identifier for the bid (UUID format).
	ID string `json:"id"`

	// InvoiceID references the invoice this bid answers.
	InvoiceID string `json:"invoiceId"`

	// MerchantID is the merchant actor who placed the bid.
	MerchantID string `json:"merchantId"`

	// MerchantName is the merchant's display name, denormalized for listings.
	MerchantName string `json:"merchantName"`

	// TotalPrice is the offered total for the whole invoice.
	TotalPrice float64 `json:"totalPrice"`

	// ItemPrices is the optional per-item breakdown.
	ItemPrices []ItemPrice `json:"itemPrices"`

	// CreatedAt is when the bid was placed.
	CreatedAt time.Time `json:"createdAt"`
}
