// Package models defines the core domain models for the marketplace.
//
// # Models
//
//   - Actor: a registered participant (grocery buyer, wholesale merchant, or admin)
//   - Invoice: a grocery's itemized purchase request awaiting price offers
//   - Item: a single line item on an invoice
//   - Bid: a merchant's priced response to an invoice
//
// # Lifecycle
//
// Invoices move through pending -> priced -> approved and never regress.
// The first accepted bid moves an invoice to priced; every bid may lower
// LowestPrice but never raise it. Approval selects a winning merchant and
// permanently closes the invoice to further bids. Bids are immutable once
// placed and survive approval as the audit record.
//
// # Design Principles
//
//  1. Models are plain structs with no behavior beyond small helpers;
//     the service layer owns all transitions.
//  2. Relationships are ID strings, not pointers, to avoid circular references.
//  3. Nullable wire fields (LowestPrice, SelectedMerchantID) are pointers so
//     that "never bid on" and "bid of zero" stay distinguishable.
package models
