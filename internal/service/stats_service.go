package service

import (
	"context"
	"log/slog"

	"github.com/orderpro/marketplace/internal/models"
	"github.com/orderpro/marketplace/internal/storage"
)

// Stats is the admin dashboard aggregate: totals plus per-role and
// per-status breakdowns.
type Stats struct {
	TotalActors      int `json:"totalActors"`
	TotalInvoices    int `json:"totalInvoices"`
	TotalBids        int `json:"totalBids"`
	Groceries        int `json:"groceries"`
	Merchants        int `json:"merchants"`
	PendingInvoices  int `json:"pendingInvoices"`
	PricedInvoices   int `json:"pricedInvoices"`
	ApprovedInvoices int `json:"approvedInvoices"`
}

// StatsService computes marketplace-wide aggregates for admins.
type StatsService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewStatsService creates a stats service backed by the given store.
func NewStatsService(store storage.Store, logger *slog.Logger) *StatsService {
	return &StatsService{store: store, logger: logger}
}

// Aggregate counts actors by role and invoices by status.
func (s *StatsService) Aggregate(ctx context.Context) (*Stats, error) {
	actors, err := s.store.ListActors(ctx)
	if err != nil {
		s.logger.Error("failed to list actors", "error", err)
		return nil, err
	}
	invoices, err := s.store.ListInvoices(ctx)
	if err != nil {
		s.logger.Error("failed to list invoices", "error", err)
		return nil, err
	}
	bids, err := s.store.ListBids(ctx)
	if err != nil {
		s.logger.Error("failed to list bids", "error", err)
		return nil, err
	}

	stats := &Stats{
		TotalActors:   len(actors),
		TotalInvoices: len(invoices),
		TotalBids:     len(bids),
	}
	for _, actor := range actors {
		switch actor.Role {
		case models.RoleGrocery:
			stats.Groceries++
		case models.RoleMerchant:
			stats.Merchants++
		}
	}
	for _, invoice := range invoices {
		switch invoice.Status {
		case models.InvoiceStatusPending:
			stats.PendingInvoices++
		case models.InvoiceStatusPriced:
			stats.PricedInvoices++
		case models.InvoiceStatusApproved:
			stats.ApprovedInvoices++
		}
	}
	return stats, nil
}
