// Package storage provides abstractions for marketplace data storage.
package storage

import (
	"context"
	"errors"

	"github.com/orderpro/marketplace/internal/models"
)

// Storage-level sentinel errors. The service layer translates these into the
// caller-facing taxonomy; stores never import the market package.
var (
	// ErrNotFound is returned by Update* when the record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicatePhone is returned by CreateActor when the phone number
	// is already registered.
	ErrDuplicatePhone = errors.New("phone already registered")
	// ErrDuplicateBid is returned by CreateBid when the merchant already
	// has a bid on the invoice.
	ErrDuplicateBid = errors.New("bid already placed for invoice")
)

// Store defines the persistence interface for the marketplace.
// This abstraction allows swapping storage backends (in-memory, SQLite, ...)
// without changing the service layer.
//
// Get* methods return (nil, nil) when the record does not exist. List*
// methods return records in creation order. Create* methods populate the
// record's ID and CreatedAt fields when unset.
type Store interface {
	// CreateActor persists a new actor. Fails with ErrDuplicatePhone if the
	// phone number is taken.
	CreateActor(ctx context.Context, actor *models.Actor) error

	// GetActorByID retrieves an actor by ID.
	GetActorByID(ctx context.Context, id string) (*models.Actor, error)

	// GetActorByPhone retrieves an actor by phone number.
	GetActorByPhone(ctx context.Context, phone string) (*models.Actor, error)

	// ListActors returns all registered actors.
	ListActors(ctx context.Context) ([]*models.Actor, error)

	// CreateInvoice persists a new invoice.
	CreateInvoice(ctx context.Context, invoice *models.Invoice) error

	// GetInvoice retrieves an invoice by ID.
	GetInvoice(ctx context.Context, id string) (*models.Invoice, error)

	// ListInvoices returns all invoices.
	ListInvoices(ctx context.Context) ([]*models.Invoice, error)

	// UpdateInvoice replaces the stored invoice's mutable fields
	// (status, lowest price, selected merchant).
	UpdateInvoice(ctx context.Context, invoice *models.Invoice) error

	// CreateBid persists a new bid. Fails with ErrDuplicateBid if the
	// merchant already bid on the invoice.
	CreateBid(ctx context.Context, bid *models.Bid) error

	// GetBid retrieves the bid a merchant placed on an invoice.
	GetBid(ctx context.Context, invoiceID, merchantID string) (*models.Bid, error)

	// ListBidsByInvoice returns all bids on an invoice.
	ListBidsByInvoice(ctx context.Context, invoiceID string) ([]*models.Bid, error)

	// ListBids returns all bids across all invoices.
	ListBids(ctx context.Context) ([]*models.Bid, error)

	// Close releases any resources held by the store.
	Close() error
}
