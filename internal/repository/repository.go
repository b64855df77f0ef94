// Package repository defines the persistence contracts the services depend
// on, with a gorm/Postgres implementation for the server and an in-memory
// implementation for tests.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/brennosantos/eventos/internal/models"
)

var (
	// ErrNotFound is returned when a lookup by id or key misses.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned when a guarded inventory decrement
	// finds fewer tickets available than requested.
	ErrInsufficientStock = errors.New("insufficient tickets available")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Save(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
	FindByTitleContaining(ctx context.Context, term string) ([]models.Event, error)
	FindByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]models.Event, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)

	// DecrementAvailable atomically takes qty tickets off an active event's
	// inventory and reports how many remain. The check and the write are a
	// single guarded operation so concurrent purchases cannot oversell.
	DecrementAvailable(ctx context.Context, id uuid.UUID, qty int) (remaining int, err error)
	// RestoreAvailable puts qty tickets back after a cancellation.
	RestoreAvailable(ctx context.Context, id uuid.UUID, qty int) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) error
	FindByUserAndID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Order, error)
	FindTicketByID(ctx context.Context, ticketID uuid.UUID) (*models.Ticket, error)
	MarkTicketCheckedIn(ctx context.Context, ticketID uuid.UUID) error
}

type RoleRepository interface {
	Save(ctx context.Context, role *models.Role) error
	FindByName(ctx context.Context, name string) (*models.Role, error)
}

// Store bundles the repositories and scopes them to a single transaction.
type Store interface {
	Users() UserRepository
	Events() EventRepository
	Orders() OrderRepository
	Roles() RoleRepository

	// Transaction runs fn against a store whose writes commit together or
	// not at all.
	Transaction(ctx context.Context, fn func(Store) error) error
}
