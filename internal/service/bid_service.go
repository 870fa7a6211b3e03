package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/orderpro/marketplace/internal/market"
	"github.com/orderpro/marketplace/internal/models"
	"github.com/orderpro/marketplace/internal/storage"
)

// BidService owns bid records. Bids are append-only: never updated or
// deleted, and they survive invoice approval as the audit record.
type BidService struct {
	store    storage.Store
	invoices *InvoiceService
	logger   *slog.Logger
}

// NewBidService creates a bid service. It shares the invoice service's
// mutex so bid acceptance and the invoice price update are one atomic step.
func NewBidService(store storage.Store, invoices *InvoiceService, logger *slog.Logger) *BidService {
	return &BidService{store: store, invoices: invoices, logger: logger}
}

// Place records a merchant's offer on an invoice.
//
// totalPrice is a pointer so a missing field is distinguishable from an
// explicit zero: absent means a validation failure, zero is a legal offer.
// A failed placement never touches the invoice's lowest price.
func (s *BidService) Place(ctx context.Context, merchant models.Summary, invoiceID string, totalPrice *float64, itemPrices []models.ItemPrice) (*models.Bid, error) {
	if invoiceID == "" || totalPrice == nil {
		return nil, market.Validation("invoiceId and totalPrice are required")
	}
	price := *totalPrice
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return nil, market.Validation("totalPrice must be a non-negative number")
	}

	s.invoices.mu.Lock()
	defer s.invoices.mu.Unlock()

	invoice, err := s.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		s.logger.Error("failed to get invoice", "invoice_id", invoiceID, "error", err)
		return nil, err
	}
	if invoice == nil {
		return nil, market.NotFound("invoice not found")
	}
	if !invoice.Open() {
		return nil, market.Conflict("invoice already approved")
	}

	existing, err := s.store.GetBid(ctx, invoiceID, merchant.ID)
	if err != nil {
		s.logger.Error("failed to check for existing bid", "invoice_id", invoiceID, "merchant_id", merchant.ID, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, market.Conflict("bid already placed on this invoice")
	}

	bid := &models.Bid{
		InvoiceID:    invoiceID,
		MerchantID:   merchant.ID,
		MerchantName: merchant.Name,
		TotalPrice:   price,
		ItemPrices:   itemPrices,
	}
	if err := s.store.CreateBid(ctx, bid); err != nil {
		if err == storage.ErrDuplicateBid {
			return nil, market.Conflict("bid already placed on this invoice")
		}
		s.logger.Error("failed to create bid", "invoice_id", invoiceID, "error", err)
		return nil, err
	}

	if err := s.invoices.recordBidOutcomeLocked(ctx, invoiceID, price); err != nil {
		return nil, err
	}

	s.logger.Info("bid placed",
		"bid_id", bid.ID,
		"invoice_id", invoiceID,
		"merchant_id", merchant.ID,
		"total_price", price,
	)
	return bid, nil
}

// ListForInvoice returns all bids on an invoice. A grocery may only inspect
// bids on its own invoices; merchants and admins see every competing bid.
func (s *BidService) ListForInvoice(ctx context.Context, requester models.Summary, invoiceID string) ([]*models.Bid, error) {
	invoice, err := s.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		s.logger.Error("failed to get invoice", "invoice_id", invoiceID, "error", err)
		return nil, err
	}
	if invoice == nil {
		return nil, market.NotFound("invoice not found")
	}
	if requester.Role == models.RoleGrocery && invoice.OwnerID != requester.ID {
		return nil, market.Forbidden("not the owner of this invoice")
	}

	bids, err := s.store.ListBidsByInvoice(ctx, invoiceID)
	if err != nil {
		s.logger.Error("failed to list bids", "invoice_id", invoiceID, "error", err)
		return nil, err
	}
	return bids, nil
}
