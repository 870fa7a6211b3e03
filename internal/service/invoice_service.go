package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/orderpro/marketplace/internal/market"
	"github.com/orderpro/marketplace/internal/models"
	"github.com/orderpro/marketplace/internal/storage"
)

// InvoiceService owns invoice records and their status transitions.
// The status machine only ever advances pending -> priced -> approved.
//
// mu serializes every read-modify-write of invoice state (bid outcomes and
// approval), giving the arrival-order semantics the lifecycle depends on.
// BidService shares the same mutex so a bid's duplicate check, insertion and
// price update form one atomic step.
type InvoiceService struct {
	store  storage.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewInvoiceService creates an invoice service backed by the given store.
func NewInvoiceService(store storage.Store, logger *slog.Logger) *InvoiceService {
	return &InvoiceService{store: store, logger: logger}
}

// Create validates and persists a new invoice for the owning grocery.
//
// Malformed items (empty name or non-positive quantity) are silently dropped;
// the request fails only when no valid item survives. Contact phone and
// address fall back to the owner's directory profile when not supplied.
func (s *InvoiceService) Create(ctx context.Context, owner models.Summary, items []models.Item, address, phone string) (*models.Invoice, error) {
	if len(items) == 0 {
		return nil, market.Validation("at least one item is required")
	}

	valid := make([]models.Item, 0, len(items))
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Valid() {
			valid = append(valid, item)
		}
	}
	if len(valid) == 0 {
		return nil, market.Validation("no valid items provided")
	}

	ownerName := owner.Name
	if profile, err := s.store.GetActorByID(ctx, owner.ID); err != nil {
		s.logger.Error("owner lookup failed", "owner_id", owner.ID, "error", err)
		return nil, err
	} else if profile != nil {
		ownerName = profile.Name
		if phone == "" {
			phone = profile.Phone
		}
		if address == "" {
			address = profile.Address
		}
	}

	invoice := &models.Invoice{
		OwnerID:   owner.ID,
		OwnerName: ownerName,
		Phone:     phone,
		Address:   address,
		Items:     valid,
		Status:    models.InvoiceStatusPending,
	}
	if err := s.store.CreateInvoice(ctx, invoice); err != nil {
		s.logger.Error("failed to create invoice", "owner_id", owner.ID, "error", err)
		return nil, err
	}

	s.logger.Info("invoice created",
		"invoice_id", invoice.ID,
		"owner_id", invoice.OwnerID,
		"items", len(invoice.Items),
		"dropped", len(items)-len(valid),
	)
	return invoice, nil
}

// List returns the invoices visible to the requester:
// groceries see their own, merchants see open (pending or priced) invoices,
// admins see everything, anyone else sees nothing.
func (s *InvoiceService) List(ctx context.Context, requester models.Summary) ([]*models.Invoice, error) {
	all, err := s.store.ListInvoices(ctx)
	if err != nil {
		s.logger.Error("failed to list invoices", "error", err)
		return nil, err
	}

	visible := make([]*models.Invoice, 0, len(all))
	for _, inv := range all {
		switch requester.Role {
		case models.RoleGrocery:
			if inv.OwnerID == requester.ID {
				visible = append(visible, inv)
			}
		case models.RoleMerchant:
			if inv.Open() {
				visible = append(visible, inv)
			}
		case models.RoleAdmin:
			visible = append(visible, inv)
		}
	}
	return visible, nil
}

// Get retrieves a single invoice.
func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		s.logger.Error("failed to get invoice", "invoice_id", id, "error", err)
		return nil, err
	}
	if invoice == nil {
		return nil, market.NotFound("invoice not found")
	}
	return invoice, nil
}

// RecordBidOutcome applies an accepted bid's price to the invoice: the first
// bid moves it pending -> priced, and every bid may only lower LowestPrice.
// The caller (BidService) must have rejected bids on approved invoices before
// reaching this point.
func (s *InvoiceService) RecordBidOutcome(ctx context.Context, invoiceID string, bidPrice float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordBidOutcomeLocked(ctx, invoiceID, bidPrice)
}

func (s *InvoiceService) recordBidOutcomeLocked(ctx context.Context, invoiceID string, bidPrice float64) error {
	invoice, err := s.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return market.NotFound("invoice not found")
	}
	if invoice.Status == models.InvoiceStatusPending {
		invoice.Status = models.InvoiceStatusPriced
	}
	if invoice.LowestPrice == nil || bidPrice < *invoice.LowestPrice {
		invoice.LowestPrice = &bidPrice
	}
	if err := s.store.UpdateInvoice(ctx, invoice); err != nil {
		s.logger.Error("failed to record bid outcome", "invoice_id", invoiceID, "error", err)
		return err
	}

	s.logger.Info("bid outcome recorded",
		"invoice_id", invoiceID,
		"status", invoice.Status,
		"lowest_price", *invoice.LowestPrice,
	)
	return nil
}

// Approve selects the winning merchant for an invoice and closes it.
//
// A grocery may approve only its own invoices; an admin may approve any;
// every other role is rejected. Approval requires an existing bid from the
// chosen merchant and is terminal: a second approval always conflicts.
func (s *InvoiceService) Approve(ctx context.Context, requester models.Summary, invoiceID, merchantID string) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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
	if requester.Role != models.RoleGrocery && requester.Role != models.RoleAdmin {
		return nil, market.Forbidden("role may not approve invoices")
	}
	if invoice.Status == models.InvoiceStatusApproved {
		return nil, market.Conflict("invoice already approved")
	}

	bid, err := s.store.GetBid(ctx, invoiceID, merchantID)
	if err != nil {
		s.logger.Error("failed to get bid", "invoice_id", invoiceID, "merchant_id", merchantID, "error", err)
		return nil, err
	}
	if bid == nil {
		return nil, market.Validation("no bid from this merchant on the invoice")
	}

	invoice.Status = models.InvoiceStatusApproved
	invoice.SelectedMerchantID = &bid.MerchantID
	if err := s.store.UpdateInvoice(ctx, invoice); err != nil {
		s.logger.Error("failed to approve invoice", "invoice_id", invoiceID, "error", err)
		return nil, err
	}

	s.logger.Info("invoice approved",
		"invoice_id", invoiceID,
		"merchant_id", merchantID,
		"approved_by", requester.ID,
	)
	return invoice, nil
}
