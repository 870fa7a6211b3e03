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

// CreateActor inserts a new actor into the database.
func (s *Store) CreateActor(ctx context.Context, actor *models.Actor) error {
	if actor.ID == "" {
		actor.ID = uuid.New().String()
	}
	if actor.CreatedAt.IsZero() {
		actor.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO actors (id, name, phone, role, address, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		actor.ID,
		actor.Name,
		actor.Phone,
		string(actor.Role),
		actor.Address,
		actor.CreatedAt.Unix(),
	)
	if isUniqueViolation(err, "actors.phone") {
		return storage.ErrDuplicatePhone
	}
	if err != nil {
		return fmt.Errorf("failed to create actor: %w", err)
	}

	return nil
}

// GetActorByID retrieves an actor by ID. Returns (nil, nil) if absent.
func (s *Store) GetActorByID(ctx context.Context, id string) (*models.Actor, error) {
	return s.getActor(ctx, "id", id)
}

// GetActorByPhone retrieves an actor by phone number. Returns (nil, nil) if absent.
func (s *Store) GetActorByPhone(ctx context.Context, phone string) (*models.Actor, error) {
	return s.getActor(ctx, "phone", phone)
}

func (s *Store) getActor(ctx context.Context, column, value string) (*models.Actor, error) {
	query := fmt.Sprintf(`
		SELECT id, name, phone, role, address, created_at
		FROM actors
		WHERE %s = ?
	`, column)

	actor, err := scanActor(s.db.QueryRowContext(ctx, query, value))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get actor by %s: %w", column, err)
	}
	return actor, nil
}

// ListActors returns all actors in registration order.
func (s *Store) ListActors(ctx context.Context) ([]*models.Actor, error) {
	query := `
		SELECT id, name, phone, role, address, created_at
		FROM actors
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list actors: %w", err)
	}
	defer rows.Close()

	var actors []*models.Actor
	for rows.Next() {
		actor, err := scanActor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan actor: %w", err)
		}
		actors = append(actors, actor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating actors: %w", err)
	}

	return actors, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanActor(row scanner) (*models.Actor, error) {
	actor := &models.Actor{}
	var role string
	var createdAt int64
	if err := row.Scan(
		&actor.ID,
		&actor.Name,
		&actor.Phone,
		&role,
		&actor.Address,
		&createdAt,
	); err != nil {
		return nil, err
	}
	actor.Role = models.Role(role)
	actor.CreatedAt = time.Unix(createdAt, 0).UTC()
	return actor, nil
}
