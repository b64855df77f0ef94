package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brennosantos/eventos/internal/models"
	"github.com/brennosantos/eventos/internal/repository"
)

// EventService handles event lifecycle: creation, listing, search and the
// organizer-side cancellation cascade.
type EventService struct {
	store repository.Store
}

func NewEventService(store repository.Store) *EventService {
	return &EventService{store: store}
}

type CreateEventInput struct {
	Title          string
	Description    string
	Category       string
	Location       string
	StartTime      time.Time
	Capacity       int
	UnitPrice      decimal.Decimal
	CouponCode     string
	CouponDiscount decimal.Decimal
	BannerPath     string
}

// Create validates and persists a new event owned by organizerID. Inventory
// starts equal to capacity.
func (s *EventService) Create(ctx context.Context, organizerID uuid.UUID, input CreateEventInput) (*models.Event, error) {
	organizer, err := s.store.Users().FindByID(ctx, organizerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !organizer.IsOrganizer() {
		return nil, ErrNotOrganizer
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	if input.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be a positive integer", ErrInvalidInput)
	}
	if input.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: ticket price cannot be negative", ErrInvalidInput)
	}
	if input.StartTime.Before(time.Now()) {
		return nil, ErrPastEvent
	}
	// An event-wide coupon worth more than half a ticket is almost always a
	// typo on the organizer's side.
	if input.CouponDiscount.GreaterThan(input.UnitPrice.Div(decimal.NewFromInt(2))) {
		return nil, ErrCouponTooLarge
	}

	event := &models.Event{
		ID:               uuid.New(),
		Title:            input.Title,
		Description:      input.Description,
		Category:         input.Category,
		Location:         input.Location,
		StartTime:        input.StartTime,
		Capacity:         input.Capacity,
		TicketsAvailable: input.Capacity,
		UnitPrice:        input.UnitPrice,
		CouponCode:       input.CouponCode,
		CouponDiscount:   input.CouponDiscount,
		Status:           models.EventStatusActive,
		BannerPath:       input.BannerPath,
		OrganizerID:      organizer.ID,
	}
	if err := s.store.Events().Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Get returns a single event by id.
func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.store.Events().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Search returns events filtered by a title term, newest first. An empty
// term lists everything.
func (s *EventService) Search(ctx context.Context, term string) ([]models.Event, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.store.Events().FindAll(ctx)
	}
	return s.store.Events().FindByTitleContaining(ctx, term)
}

// ListByOrganizer returns the events owned by an organizer, newest first.
func (s *EventService) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]models.Event, error) {
	return s.store.Events().FindByOrganizer(ctx, organizerID)
}

// Cancel marks an event cancelled, zeroes its remaining inventory and flips
// every order referencing it to CANCELLED_BY_ORGANIZER. Each affected order
// is written once; the whole cascade commits as one transaction.
func (s *EventService) Cancel(ctx context.Context, eventID, requesterID uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		requester, err := tx.Users().FindByID(ctx, requesterID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		event, err := tx.Events().FindByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if event.OrganizerID != requester.ID {
			return ErrNotEventOrganizer
		}
		if event.Status == models.EventStatusCancelled {
			return ErrEventAlreadyCancelled
		}

		event.Status = models.EventStatusCancelled
		event.TicketsAvailable = 0
		if err := tx.Events().Save(ctx, event); err != nil {
			return err
		}

		orders, err := tx.Orders().FindByEvent(ctx, eventID)
		if err != nil {
			return err
		}
		for i := range orders {
			if orders[i].Status == models.OrderStatusCancelledByOrganizer {
				continue
			}
			if err := tx.Orders().UpdateStatus(ctx, orders[i].ID, models.OrderStatusCancelledByOrganizer); err != nil {
				return err
			}
		}
		return nil
	})
}
