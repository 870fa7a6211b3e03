package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/orderpro/marketplace/internal/models"
)

func testActor() *models.Actor {
	return &models.Actor{
		ID:    "actor-1",
		Name:  "Corner Shop",
		Phone: "771234567",
		Role:  models.RoleGrocery,
	}
}

func TestGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate(testActor())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.ActorID != "actor-1" {
		t.Errorf("ActorID = %q", claims.ActorID)
	}
	if claims.Name != "Corner Shop" || claims.Phone != "771234567" {
		t.Errorf("claims = %+v, want actor snapshot", claims)
	}
	if claims.Role != models.RoleGrocery {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(testActor())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).Generate(testActor())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := NewJWTManager("secret-b", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestValidateRejectsTampered(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	token, err := manager.Generate(testActor())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d segments", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := manager.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

// Claims are a snapshot: changing the actor after token issuance does not
// change an existing session's identity or role.
func TestClaimsAreSnapshot(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	actor := testActor()

	token, err := manager.Generate(actor)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	actor.Role = models.RoleAdmin
	actor.Name = "Renamed"

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Role != models.RoleGrocery || claims.Name != "Corner Shop" {
		t.Errorf("claims followed directory mutation: %+v", claims)
	}
}
