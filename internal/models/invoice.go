package models

import "time"

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	// InvoiceStatusPending means no bid has been placed yet.
	InvoiceStatusPending InvoiceStatus = "pending"
	// InvoiceStatusPriced means at least one bid exists; LowestPrice is set.
	InvoiceStatusPriced InvoiceStatus = "priced"
	// InvoiceStatusApproved means a winning merchant was selected. Terminal.
	InvoiceStatusApproved InvoiceStatus = "approved"
)

// Item is a single requested line item on an invoice.
type Item struct {
	// Name is the product name, trimmed, never empty.
	Name string `json:"name"`

	// Quantity is the requested amount, always > 0.
	Quantity int `json:"quantity"`
}

// Valid reports whether the item survives invoice validation.
func (i Item) Valid() bool {
	return i.Name != "" && i.Quantity > 0
}

// Invoice is a grocery's itemized purchase request.
//
// Status only ever advances pending -> priced -> approved. LowestPrice is nil
// until the first bid and monotonically non-increasing afterwards.
// SelectedMerchantID is nil until approval.
type Invoice struct {
	// ID is the unique identifier for the invoice (UUID format).
	ID string `json:"id"`

	// OwnerID is the grocery actor who created the invoice.
	OwnerID string `json:"ownerId"`

	// OwnerName is the owner's display name, denormalized for listings.
	OwnerName string `json:"ownerName"`

	// Phone is the contact phone for this order. Defaults to the owner's
	// directory phone when not supplied at creation.
	Phone string `json:"phone"`

	// Address is the delivery address. Defaults to the owner's directory
	// address when not supplied at creation.
	Address string `json:"address"`

	// Items are the requested line items, in submission order.
	Items []Item `json:"items"`

	// Status is the lifecycle state.
	Status InvoiceStatus `json:"status"`

	// LowestPrice is the running minimum over all bid totals, nil before
	// the first bid.
	LowestPrice *float64 `json:"lowestPrice"`

	// SelectedMerchantID is the winning merchant, nil until approval.
	SelectedMerchantID *string `json:"selectedMerchantId"`

	// CreatedAt is when the invoice was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Open reports whether the invoice still accepts bids.
func (inv *Invoice) Open() bool {
	return inv.Status != InvoiceStatusApproved
}
