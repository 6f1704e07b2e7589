package repository

import (
	"context"
	"database/sql"
	"time"

	"thermostat_panel/internal/models"
)

// Authorization persists operator accounts.
type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// EventRepo is the append-only panel log. Status snapshots are never stored here.
type EventRepo interface {
	Append(ctx context.Context, e models.PanelEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.PanelEvent, error)
}

type Repository struct {
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
