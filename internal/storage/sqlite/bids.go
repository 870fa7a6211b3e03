package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orderpro/marketplace/internal/models"
	"github.com/orderpro/marketplace/internal/storage"
)

// CreateBid persists a new bid and its per-item prices in one transaction.
// The bids table's UNIQUE(invoice_id, merchant_id) constraint backs the
// one-bid-per-merchant-per-invoice rule.
func (s *Store) CreateBid(ctx context.Context, bid *models.Bid) error {
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bids (id, invoice_id, merchant_id, merchant_name, total_price, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		bid.ID,
		bid.InvoiceID,
		bid.MerchantID,
		bid.MerchantName,
		bid.TotalPrice,
		bid.CreatedAt.Unix(),
	)
	if isUniqueViolation(err, "bids.invoice_id, bids.merchant_id") {
		return storage.ErrDuplicateBid
	}
	if err != nil {
		return fmt.Errorf("failed to insert bid: %w", err)
	}

	for i, entry := range bid.ItemPrices {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO bid_item_prices (bid_id, position, name, price) VALUES (?, ?, ?, ?)",
			bid.ID, i, entry.Name, entry.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bid item price: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetBid retrieves the bid a merchant placed on an invoice.
// Returns (nil, nil) if absent.
func (s *Store) GetBid(ctx context.Context, invoiceID, merchantID string) (*models.Bid, error) {
	bid, err := scanBid(s.db.QueryRowContext(ctx,
		`SELECT id, invoice_id, merchant_id, merchant_name, total_price, created_at
		 FROM bids WHERE invoice_id = ? AND merchant_id = ?`,
		invoiceID, merchantID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}

	if err := s.loadItemPrices(ctx, bid); err != nil {
		return nil, err
	}
	return bid, nil
}

// ListBidsByInvoice returns all bids on an invoice in placement order.
func (s *Store) ListBidsByInvoice(ctx context.Context, invoiceID string) ([]*models.Bid, error) {
	return s.listBids(ctx,
		`SELECT id, invoice_id, merchant_id, merchant_name, total_price, created_at
		 FROM bids WHERE invoice_id = ? ORDER BY created_at, id`,
		invoiceID,
	)
}

// ListBids returns every bid in placement order.
func (s *Store) ListBids(ctx context.Context) ([]*models.Bid, error) {
	return s.listBids(ctx,
		`SELECT id, invoice_id, merchant_id, merchant_name, total_price, created_at
		 FROM bids ORDER BY created_at, id`,
	)
}

func (s *Store) listBids(ctx context.Context, query string, args ...any) ([]*models.Bid, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	defer rows.Close()

	var bids []*models.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bids: %w", err)
	}

	for _, bid := range bids {
		if err := s.loadItemPrices(ctx, bid); err != nil {
			return nil, err
		}
	}
	return bids, nil
}

func (s *Store) loadItemPrices(ctx context.Context, bid *models.Bid) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, price FROM bid_item_prices WHERE bid_id = ? ORDER BY position",
		bid.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get bid item prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.ItemPrice
		if err := rows.Scan(&entry.Name, &entry.Price); err != nil {
			return fmt.Errorf("failed to scan bid item price: %w", err)
		}
		bid.ItemPrices = append(bid.ItemPrices, entry)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating bid item prices: %w", err)
	}
	return nil
}

func scanBid(row scanner) (*models.Bid, error) {
	bid := &models.Bid{}
	var createdAt int64
	if err := row.Scan(
		&bid.ID,
		&bid.InvoiceID,
		&bid.MerchantID,
		&bid.MerchantName,
		&bid.TotalPrice,
		&createdAt,
	); err != nil {
		return nil, err
	}
	bid.CreatedAt = time.Unix(createdAt, 0).UTC()
	return bid, nil
}
