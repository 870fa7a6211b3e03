// Package memory provides an in-memory implementation of the storage.Store
// interface. It is the reference backend: state lives for the lifetime of the
// process and every test gets an isolated instance via New.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orderpro/marketplace/internal/models"
	"github.com/orderpro/marketplace/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps all records in maps guarded by a single RWMutex. Slices of IDs
// preserve creation order for the List methods.
type Store struct {
	mu sync.RWMutex

	actors       map[string]*models.Actor
	actorOrder   []string
	phoneIndex   map[string]string // phone -> actor ID
	invoices     map[string]*models.Invoice
	invoiceOrder []string
	bids         map[string]*models.Bid
	bidOrder     []string
	bidIndex     map[string]string // invoiceID + "\x00" + merchantID -> bid ID
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		actors:     make(map[string]*models.Actor),
		phoneIndex: make(map[string]string),
		invoices:   make(map[string]*models.Invoice),
		bids:       make(map[string]*models.Bid),
		bidIndex:   make(map[string]string),
	}
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

// CreateActor inserts a new actor, enforcing phone uniqueness.
func (s *Store) CreateActor(ctx context.Context, actor *models.Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.phoneIndex[actor.Phone]; taken {
		return storage.ErrDuplicatePhone
	}
	if actor.ID == "" {
		actor.ID = uuid.New().String()
	}
	if actor.CreatedAt.IsZero() {
		actor.CreatedAt = time.Now().UTC()
	}

	stored := *actor
	s.actors[stored.ID] = &stored
	s.actorOrder = append(s.actorOrder, stored.ID)
	s.phoneIndex[stored.Phone] = stored.ID
	return nil
}

// GetActorByID returns the actor with the given ID, or (nil, nil).
func (s *Store) GetActorByID(ctx context.Context, id string) (*models.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actor, ok := s.actors[id]
	if !ok {
		return nil, nil
	}
	copied := *actor
	return &copied, nil
}

// GetActorByPhone returns the actor registered under phone, or (nil, nil).
func (s *Store) GetActorByPhone(ctx context.Context, phone string) (*models.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.phoneIndex[phone]
	if !ok {
		return nil, nil
	}
	copied := *s.actors[id]
	return &copied, nil
}

// ListActors returns all actors in registration order.
func (s *Store) ListActors(ctx context.Context) ([]*models.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actors := make([]*models.Actor, 0, len(s.actorOrder))
	for _, id := range s.actorOrder {
		copied := *s.actors[id]
		actors = append(actors, &copied)
	}
	return actors, nil
}

// CreateInvoice inserts a new invoice.
func (s *Store) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now().UTC()
	}

	stored := copyInvoice(invoice)
	s.invoices[stored.ID] = stored
	s.invoiceOrder = append(s.invoiceOrder, stored.ID)
	return nil
}

// GetInvoice returns the invoice with the given ID, or (nil, nil).
func (s *Store) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoice, ok := s.invoices[id]
	if !ok {
		return nil, nil
	}
	return copyInvoice(invoice), nil
}

// ListInvoices returns all invoices in creation order.
func (s *Store) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoices := make([]*models.Invoice, 0, len(s.invoiceOrder))
	for _, id := range s.invoiceOrder {
		invoices = append(invoices, copyInvoice(s.invoices[id]))
	}
	return invoices, nil
}

// UpdateInvoice replaces the stored invoice.
func (s *Store) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[invoice.ID]; !ok {
		return storage.ErrNotFound
	}
	s.invoices[invoice.ID] = copyInvoice(invoice)
	return nil
}

// CreateBid inserts a new bid, enforcing one bid per merchant per invoice.
func (s *Store) CreateBid(ctx context.Context, bid *models.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := bidKey(bid.InvoiceID, bid.MerchantID)
	if _, exists := s.bidIndex[key]; exists {
		return storage.ErrDuplicateBid
	}
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = time.Now().UTC()
	}

	stored := copyBid(bid)
	s.bids[stored.ID] = stored
	s.bidOrder = append(s.bidOrder, stored.ID)
	s.bidIndex[key] = stored.ID
	return nil
}

// GetBid returns the merchant's bid on the invoice, or (nil, nil).
func (s *Store) GetBid(ctx context.Context, invoiceID, merchantID string) (*models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bidIndex[bidKey(invoiceID, merchantID)]
	if !ok {
		return nil, nil
	}
	return copyBid(s.bids[id]), nil
}

// ListBidsByInvoice returns all bids on an invoice in placement order.
func (s *Store) ListBidsByInvoice(ctx context.Context, invoiceID string) ([]*models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bids []*models.Bid
	for _, id := range s.bidOrder {
		if s.bids[id].InvoiceID == invoiceID {
			bids = append(bids, copyBid(s.bids[id]))
		}
	}
	return bids, nil
}

// ListBids returns every bid in placement order.
func (s *Store) ListBids(ctx context.Context) ([]*models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := make([]*models.Bid, 0, len(s.bidOrder))
	for _, id := range s.bidOrder {
		bids = append(bids, copyBid(s.bids[id]))
	}
	return bids, nil
}

func bidKey(invoiceID, merchantID string) string {
	return invoiceID + "\x00" + merchantID
}

// copyInvoice deep-copies an invoice so callers never alias stored state.
func copyInvoice(inv *models.Invoice) *models.Invoice {
	copied := *inv
	copied.Items = append([]models.Item(nil), inv.Items...)
	if inv.LowestPrice != nil {
		price := *inv.LowestPrice
		copied.LowestPrice = &price
	}
	if inv.SelectedMerchantID != nil {
		id := *inv.SelectedMerchantID
		copied.SelectedMerchantID = &id
	}
	return &copied
}

func copyBid(bid *models.Bid) *models.Bid {
	copied := *bid
	copied.ItemPrices = append([]models.ItemPrice(nil), bid.ItemPrices...)
	return &copied
}
