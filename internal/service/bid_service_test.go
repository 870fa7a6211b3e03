package service

import (
	"context"
	"testing"

	"github.com/orderpro/marketplace/internal/market"
	"github.com/orderpro/marketplace/internal/models"
)

func TestPlaceBidValidation(t *testing.T) {
	f := newFixture(t)
	merchant := f.register(t, "Merchant", "772000001", models.RoleMerchant)
	ctx := context.Background()

	tests := []struct {
		name      string
		invoiceID string
		price     *float64
		want      market.Kind
	}{
		{"missing invoice id", "", ptr(10), market.KindValidation},
		{"missing price", "some-id", nil, market.KindValidation},
		{"negative price", "some-id", ptr(-1), market.KindValidation},
		{"unknown invoice", "no-such-invoice", ptr(10), market.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.bids.Place(ctx, merchant, tt.invoiceID, tt.price, nil)
			if market.KindOf(err) != tt.want {
				t.Errorf("got %v, want %s", err, tt.want)
			}
		})
	}
}

func TestPlaceBidZeroPriceAllowed(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "Grocery", "771000001", models.RoleGrocery)
	merchant := f.register(t, "Merchant", "772000001", models.RoleMerchant)
	invoice := f.createInvoice(t, owner, []models.Item{{Name: "rice", Quantity: 1}})

	bid, err := f.bids.Place(context.Background(), merchant, invoice.ID, ptr(0), nil)
	if err != nil {
		t.Fatalf("zero-price bid rejected: %v", err)
	}
	if bid.TotalPrice != 0 {
		t.Errorf("totalPrice = %v, want 0", bid.TotalPrice)
	}
}

func TestPlaceBidDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "Grocery", "771000001", models.RoleGrocery)
	merchant := f.register(t, "Merchant", "772000001", models.RoleMerchant)
	invoice := f.createInvoice(t, owner, []models.Item{{Name: "rice", Quantity: 1}})

	f.placeBid(t, merchant, invoice.ID, 100)

	// A second bid from the same merchant never goes through, even at a
	// better price, and leaves the invoice untouched.
	_, err := f.bids.Place(ctx, merchant, invoice.ID, ptr(60), nil)
	if market.KindOf(err) != market.KindConflict {
		t.Fatalf("duplicate bid error = %v, want conflict", err)
	}

	got, err := f.invoices.Get(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.LowestPrice == nil || *got.LowestPrice != 100 {
		t.Errorf("lowestPrice = %v after rejected duplicate, want 100", got.LowestPrice)
	}

	bids, err := f.bids.ListForInvoice(ctx, owner, invoice.ID)
	if err != nil {
		t.Fatalf("ListForInvoice failed: %v", err)
	}
	if len(bids) != 1 {
		t.Errorf("bid count = %d after rejected duplicate, want 1", len(bids))
	}
}

func TestPlaceBidOnApprovedInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "Grocery", "771000001", models.RoleGrocery)
	merchantA := f.register(t, "Merchant A", "772000001", models.RoleMerchant)
	merchantB := f.register(t, "Merchant B", "772000002", models.RoleMerchant)
	invoice := f.createInvoice(t, owner, []models.Item{{Name: "rice", Quantity: 1}})

	f.placeBid(t, merchantA, invoice.ID, 100)
	if _, err := f.invoices.Approve(ctx, owner, invoice.ID, merchantA.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	_, err := f.bids.Place(ctx, merchantB, invoice.ID, ptr(50), nil)
	if market.KindOf(err) != market.KindConflict {
		t.Errorf("bid on approved invoice error = %v, want conflict", err)
	}

	got, _ := f.invoices.Get(ctx, invoice.ID)
	if *got.LowestPrice != 100 {
		t.Errorf("lowestPrice = %v after rejected bid, want 100", *got.LowestPrice)
	}
}

func TestPlaceBidKeepsItemPrices(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "Grocery", "771000001", models.RoleGrocery)
	merchant := f.register(t, "Merchant", "772000001", models.RoleMerchant)
	invoice := f.createInvoice(t, owner, []models.Item{
		{Name: "rice", Quantity: 5},
		{Name: "sugar", Quantity: 2},
	})

	prices := []models.ItemPrice{{Name: "rice", Price: 60}, {Name: "sugar", Price: 40}}
	bid, err := f.bids.Place(context.Background(), merchant, invoice.ID, ptr(100), prices)
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if len(bid.ItemPrices) != 2 || bid.ItemPrices[0].Name != "rice" {
		t.Errorf("itemPrices not preserved: %+v", bid.ItemPrices)
	}
	if bid.MerchantName != "Merchant" {
		t.Errorf("merchantName = %q, want snapshot of merchant name", bid.MerchantName)
	}
}

func TestListBidsAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "Grocery", "771000001", models.RoleGrocery)
	otherGrocery := f.register(t, "Other Grocery", "771000002", models.RoleGrocery)
	merchantA := f.register(t, "Merchant A", "772000001", models.RoleMerchant)
	merchantB := f.register(t, "Merchant B", "772000002", models.RoleMerchant)
	admin := f.provisionAdmin(t, "Admin", "773000001")

	invoice := f.createInvoice(t, owner, []models.Item{{Name: "rice", Quantity: 1}})
	f.placeBid(t, merchantA, invoice.ID, 100)
	f.placeBid(t, merchantB, invoice.ID, 90)

	t.Run("unknown invoice", func(t *testing.T) {
		_, err := f.bids.ListForInvoice(ctx, owner, "no-such-invoice")
		if market.KindOf(err) != market.KindNotFound {
			t.Errorf("got %v, want not_found", err)
		}
	})

	t.Run("non-owner grocery forbidden", func(t *testing.T) {
		_, err := f.bids.ListForInvoice(ctx, otherGrocery, invoice.ID)
		if market.KindOf(err) != market.KindForbidden {
			t.Errorf("got %v, want forbidden", err)
		}
	})

	t.Run("owner sees all bids", func(t *testing.T) {
		bids, err := f.bids.ListForInvoice(ctx, owner, invoice.ID)
		if err != nil {
			t.Fatalf("ListForInvoice failed: %v", err)
		}
		if len(bids) != 2 {
			t.Errorf("owner sees %d bids, want 2", len(bids))
		}
	})

	t.Run("competing merchant sees all bids", func(t *testing.T) {
		bids, err := f.bids.ListForInvoice(ctx, merchantA, invoice.ID)
		if err != nil {
			t.Fatalf("ListForInvoice failed: %v", err)
		}
		if len(bids) != 2 {
			t.Errorf("merchant sees %d bids, want 2", len(bids))
		}
	})

	t.Run("admin sees all bids", func(t *testing.T) {
		bids, err := f.bids.ListForInvoice(ctx, admin, invoice.ID)
		if err != nil {
			t.Fatalf("ListForInvoice failed: %v", err)
		}
		if len(bids) != 2 {
			t.Errorf("admin sees %d bids, want 2", len(bids))
		}
	})
}

func TestBidsSurviveApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "Grocery", "771000001", models.RoleGrocery)
	merchantA := f.register(t, "Merchant A", "772000001", models.RoleMerchant)
	merchantB := f.register(t, "Merchant B", "772000002", models.RoleMerchant)

	invoice := f.createInvoice(t, owner, []models.Item{{Name: "rice", Quantity: 1}})
	f.placeBid(t, merchantA, invoice.ID, 100)
	f.placeBid(t, merchantB, invoice.ID, 80)
	if _, err := f.invoices.Approve(ctx, owner, invoice.ID, merchantB.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	bids, err := f.bids.ListForInvoice(ctx, owner, invoice.ID)
	if err != nil {
		t.Fatalf("ListForInvoice failed: %v", err)
	}
	if len(bids) != 2 {
		t.Errorf("audit record lost: %d bids after approval, want 2", len(bids))
	}
}
