// Package service implements the marketplace lifecycle engine: the actor
// directory, the invoice state machine, bid acceptance, and admin reporting.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/orderpro/marketplace/internal/market"
	"github.com/orderpro/marketplace/internal/models"
	"github.com/orderpro/marketplace/internal/storage"
)

const (
	minNameLen  = 2
	minPhoneLen = 9
)

// DirectoryService is the registry of marketplace actors. It owns
// registration and lookup; it never deletes actors.
type DirectoryService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewDirectoryService creates a directory backed by the given store.
func NewDirectoryService(store storage.Store, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{store: store, logger: logger}
}

// Register creates a new actor. Only grocery and merchant roles may
// self-register; admin accounts are provisioned out of band.
func (s *DirectoryService) Register(ctx context.Context, name, phone string, role models.Role, address string) (*models.Actor, error) {
	name = strings.TrimSpace(name)
	if len(name) < minNameLen {
		return nil, market.Validation("name must be at least 2 characters")
	}
	if len(phone) < minPhoneLen {
		return nil, market.Validation("phone must be at least 9 digits")
	}
	if !role.Registerable() {
		return nil, market.Validation("role must be grocery or merchant")
	}

	actor := &models.Actor{
		Name:    name,
		Phone:   phone,
		Role:    role,
		Address: address,
	}
	if err := s.store.CreateActor(ctx, actor); err != nil {
		if err == storage.ErrDuplicatePhone {
			s.logger.Warn("registration rejected, phone taken", "phone", phone)
			return nil, market.Conflict("phone already registered")
		}
		s.logger.Error("failed to create actor", "error", err)
		return nil, err
	}

	s.logger.Info("actor registered", "actor_id", actor.ID, "role", actor.Role)
	return actor, nil
}

// Provision inserts a pre-built actor, bypassing the self-registration role
// restriction. Used for startup seeding; this is the only way an admin
// account comes into existence.
func (s *DirectoryService) Provision(ctx context.Context, actor *models.Actor) error {
	if err := s.store.CreateActor(ctx, actor); err != nil {
		if err == storage.ErrDuplicatePhone {
			return market.Conflict("phone already registered")
		}
		return err
	}
	s.logger.Info("actor provisioned", "actor_id", actor.ID, "role", actor.Role)
	return nil
}

// Authenticate resolves a login attempt by phone number.
func (s *DirectoryService) Authenticate(ctx context.Context, phone string) (*models.Actor, error) {
	if len(phone) < minPhoneLen {
		return nil, market.Validation("phone must be at least 9 digits")
	}

	actor, err := s.store.GetActorByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("phone lookup failed", "error", err)
		return nil, err
	}
	if actor == nil {
		return nil, market.Unauthenticated("phone not registered")
	}
	return actor, nil
}

// FindByID retrieves an actor by ID.
func (s *DirectoryService) FindByID(ctx context.Context, id string) (*models.Actor, error) {
	actor, err := s.store.GetActorByID(ctx, id)
	if err != nil {
		s.logger.Error("actor lookup failed", "actor_id", id, "error", err)
		return nil, err
	}
	if actor == nil {
		return nil, market.NotFound("actor not found")
	}
	return actor, nil
}

// FindByPhone retrieves an actor by phone number.
func (s *DirectoryService) FindByPhone(ctx context.Context, phone string) (*models.Actor, error) {
	actor, err := s.store.GetActorByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("phone lookup failed", "error", err)
		return nil, err
	}
	if actor == nil {
		return nil, market.NotFound("phone not registered")
	}
	return actor, nil
}

// ListActors returns every registered actor. Callers gate this to admins.
func (s *DirectoryService) ListActors(ctx context.Context) ([]*models.Actor, error) {
	actors, err := s.store.ListActors(ctx)
	if err != nil {
		s.logger.Error("failed to list actors", "error", err)
		return nil, err
	}
	return actors, nil
}
