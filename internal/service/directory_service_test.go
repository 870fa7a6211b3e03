package service

import (
	"context"
	"testing"

	"github.com/orderpro/marketplace/internal/market"
	"github.com/orderpro/marketplace/internal/models"
)

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		actor string
		phone string
		role  models.Role
		want  market.Kind
	}{
		{"short name", "A", "771234567", models.RoleGrocery, market.KindValidation},
		{"whitespace name", "  B ", "771234567", models.RoleGrocery, market.KindValidation},
		{"short phone", "Grocery", "12345678", models.RoleGrocery, market.KindValidation},
		{"admin role rejected", "Sneaky", "771234567", models.RoleAdmin, market.KindValidation},
		{"unknown role", "Visitor", "771234567", models.Role("visitor"), market.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.directory.Register(ctx, tt.actor, tt.phone, tt.role, "")
			if market.KindOf(err) != tt.want {
				t.Errorf("got %v, want %s", err, tt.want)
			}
		})
	}
}

func TestRegisterTrimsName(t *testing.T) {
	f := newFixture(t)

	actor, err := f.directory.Register(context.Background(), "  Corner Shop  ", "771234567", models.RoleGrocery, "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if actor.Name != "Corner Shop" {
		t.Errorf("name = %q, want trimmed", actor.Name)
	}
	if actor.ID == "" {
		t.Error("expected generated actor ID")
	}
	if actor.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	original, err := f.directory.Register(ctx, "Corner Shop", "771234567", models.RoleGrocery, "Old Town")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err = f.directory.Register(ctx, "Impostor", "771234567", models.RoleMerchant, "")
	if market.KindOf(err) != market.KindConflict {
		t.Fatalf("duplicate registration error = %v, want conflict", err)
	}

	// Original actor is unchanged.
	got, err := f.directory.FindByPhone(ctx, "771234567")
	if err != nil {
		t.Fatalf("FindByPhone failed: %v", err)
	}
	if got.ID != original.ID || got.Name != "Corner Shop" || got.Role != models.RoleGrocery {
		t.Errorf("original actor mutated by rejected registration: %+v", got)
	}
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "Corner Shop", "771234567", models.RoleGrocery)

	t.Run("known phone", func(t *testing.T) {
		actor, err := f.directory.Authenticate(ctx, "771234567")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if actor.Name != "Corner Shop" {
			t.Errorf("name = %q", actor.Name)
		}
	})

	t.Run("short phone", func(t *testing.T) {
		_, err := f.directory.Authenticate(ctx, "123")
		if market.KindOf(err) != market.KindValidation {
			t.Errorf("got %v, want validation", err)
		}
	})

	t.Run("unknown phone", func(t *testing.T) {
		_, err := f.directory.Authenticate(ctx, "779999999")
		if market.KindOf(err) != market.KindUnauthenticated {
			t.Errorf("got %v, want unauthenticated", err)
		}
	})
}

func TestFindByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	summary := f.register(t, "Corner Shop", "771234567", models.RoleGrocery)

	actor, err := f.directory.FindByID(ctx, summary.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if actor.Phone != "771234567" {
		t.Errorf("phone = %q", actor.Phone)
	}

	_, err = f.directory.FindByID(ctx, "no-such-actor")
	if market.KindOf(err) != market.KindNotFound {
		t.Errorf("got %v, want not_found", err)
	}
}

func TestStatsAggregate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	grocery := f.register(t, "Grocery", "771000001", models.RoleGrocery)
	merchantA := f.register(t, "Merchant A", "772000001", models.RoleMerchant)
	merchantB := f.register(t, "Merchant B", "772000002", models.RoleMerchant)
	f.provisionAdmin(t, "Admin", "773000001")

	f.createInvoice(t, grocery, []models.Item{{Name: "rice", Quantity: 1}})
	priced := f.createInvoice(t, grocery, []models.Item{{Name: "flour", Quantity: 2}})
	f.placeBid(t, merchantA, priced.ID, 70)
	approved := f.createInvoice(t, grocery, []models.Item{{Name: "sugar", Quantity: 3}})
	f.placeBid(t, merchantA, approved.ID, 100)
	f.placeBid(t, merchantB, approved.ID, 90)
	if _, err := f.invoices.Approve(ctx, grocery, approved.ID, merchantB.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	stats, err := f.stats.Aggregate(ctx)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	want := Stats{
		TotalActors:      4,
		TotalInvoices:    3,
		TotalBids:        3,
		Groceries:        1,
		Merchants:        2,
		PendingInvoices:  1,
		PricedInvoices:   1,
		ApprovedInvoices: 1,
	}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}
