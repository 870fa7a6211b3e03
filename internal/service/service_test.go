package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/orderpro/marketplace/internal/models"
	"github.com/orderpro/marketplace/internal/storage/memory"
)

// fixture bundles the services over a fresh in-memory store.
type fixture struct {
	directory *DirectoryService
	invoices  *InvoiceService
	bids      *BidService
	stats     *StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	logger := slog.New(slog.DiscardHandler)
	invoices := NewInvoiceService(store, logger)
	return &fixture{
		directory: NewDirectoryService(store, logger),
		invoices:  invoices,
		bids:      NewBidService(store, invoices, logger),
		stats:     NewStatsService(store, logger),
	}
}

func (f *fixture) register(t *testing.T, name, phone string, role models.Role) models.Summary {
	t.Helper()

	actor, err := f.directory.Register(context.Background(), name, phone, role, "")
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", name, err)
	}
	return actor.Summary()
}

func (f *fixture) provisionAdmin(t *testing.T, name, phone string) models.Summary {
	t.Helper()

	actor := &models.Actor{Name: name, Phone: phone, Role: models.RoleAdmin}
	if err := f.directory.Provision(context.Background(), actor); err != nil {
		t.Fatalf("Provision(%s) failed: %v", name, err)
	}
	return actor.Summary()
}

func (f *fixture) createInvoice(t *testing.T, owner models.Summary, items []models.Item) *models.Invoice {
	t.Helper()

	invoice, err := f.invoices.Create(context.Background(), owner, items, "", "")
	if err != nil {
		t.Fatalf("Create invoice failed: %v", err)
	}
	return invoice
}

func (f *fixture) placeBid(t *testing.T, merchant models.Summary, invoiceID string, price float64) *models.Bid {
	t.Helper()

	bid, err := f.bids.Place(context.Background(), merchant, invoiceID, &price, nil)
	if err != nil {
		t.Fatalf("Place bid failed: %v", err)
	}
	return bid
}

func ptr(v float64) *float64 { return &v }
