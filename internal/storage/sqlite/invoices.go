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

// CreateInvoice persists a new invoice and its items in one transaction.
func (s *Store) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoices (id, owner_id, owner_name, phone, address, status, lowest_price, selected_merchant_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.OwnerID,
		invoice.OwnerName,
		invoice.Phone,
		invoice.Address,
		string(invoice.Status),
		invoice.LowestPrice,
		invoice.SelectedMerchantID,
		invoice.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	for i, item := range invoice.Items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO invoice_items (invoice_id, position, name, quantity) VALUES (?, ?, ?, ?)",
			invoice.ID, i, item.Name, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetInvoice retrieves an invoice by ID, including its items.
// Returns (nil, nil) if absent.
func (s *Store) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, err := scanInvoice(s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, owner_name, phone, address, status, lowest_price, selected_merchant_id, created_at
		 FROM invoices WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if err := s.loadItems(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoices returns all invoices with their items, in creation order.
func (s *Store) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, owner_name, phone, address, status, lowest_price, selected_merchant_id, created_at
		 FROM invoices ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	for _, invoice := range invoices {
		if err := s.loadItems(ctx, invoice); err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

// UpdateInvoice rewrites the invoice's mutable fields.
func (s *Store) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE invoices SET status = ?, lowest_price = ?, selected_merchant_id = ? WHERE id = ?`,
		string(invoice.Status),
		invoice.LowestPrice,
		invoice.SelectedMerchantID,
		invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) loadItems(ctx context.Context, invoice *models.Invoice) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, quantity FROM invoice_items WHERE invoice_id = ? ORDER BY position",
		invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.Name, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan invoice item: %w", err)
		}
		invoice.Items = append(invoice.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating invoice items: %w", err)
	}
	return nil
}

func scanInvoice(row scanner) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	var status string
	var lowestPrice sql.NullFloat64
	var selectedMerchant sql.NullString
	var createdAt int64
	if err := row.Scan(
		&invoice.ID,
		&invoice.OwnerID,
		&invoice.OwnerName,
		&invoice.Phone,
		&invoice.Address,
		&status,
		&lowestPrice,
		&selectedMerchant,
		&createdAt,
	); err != nil {
		return nil, err
	}
	invoice.Status = models.InvoiceStatus(status)
	if lowestPrice.Valid {
		invoice.LowestPrice = &lowestPrice.Float64
	}
	if selectedMerchant.Valid {
		invoice.SelectedMerchantID = &selectedMerchant.String
	}
	invoice.CreatedAt = time.Unix(createdAt, 0).UTC()
	return invoice, nil
}
