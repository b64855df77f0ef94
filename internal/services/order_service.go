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
	"github.com/brennosantos/eventos/internal/pricing"
	"github.com/brennosantos/eventos/internal/repository"
)

// OrderService orchestrates ticket purchases: stock validation, price
// composition, ticket minting and the matching cancellation flow.
type OrderService struct {
	store repository.Store
	fee   pricing.ServiceFee
}

func NewOrderService(store repository.Store) *OrderService {
	return &OrderService{store: store, fee: pricing.NewServiceFee()}
}

type CreateOrderInput struct {
	UserID            uuid.UUID
	EventID           uuid.UUID
	ParticipantNames  []string
	ParticipantEmails []string
	CouponCode        string
}

// Quote is the price breakdown shown before and recorded at purchase.
type Quote struct {
	BaseAmount     decimal.Decimal `json:"base_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FeeAmount      decimal.Decimal `json:"fee_amount"`
	Total          decimal.Decimal `json:"total"`
	CouponApplied  bool            `json:"coupon_applied"`
}

// Create places an order for one ticket per participant. Inventory check,
// price calculation, ticket minting and both writes happen inside a single
// transaction, so a failed purchase leaves nothing behind.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	quantity := len(input.ParticipantNames)
	if quantity == 0 {
		return nil, ErrNoParticipants
	}
	if len(input.ParticipantEmails) != quantity {
		return nil, ErrParticipantMismatch
	}

	var order *models.Order
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		event, err := tx.Events().FindByID(ctx, input.EventID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if event.Status == models.EventStatusCancelled {
			return ErrEventCancelled
		}
		if event.TicketsAvailable < quantity {
			return repository.ErrInsufficientStock
		}

		base := event.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		quote := s.compose(event, base, input.CouponCode)

		remaining, err := tx.Events().DecrementAvailable(ctx, event.ID, quantity)
		if err != nil {
			return err
		}

		order = &models.Order{
			ID:          uuid.New(),
			Quantity:    quantity,
			BaseAmount:  base,
			TotalAmount: quote.Total,
			Status:      models.OrderStatusPending,
			UserID:      user.ID,
			EventID:     event.ID,
		}

		// Serials continue from the units already sold before this order.
		firstSerial := event.Capacity - (remaining + quantity) + 1
		now := time.Now()
		tickets := make([]models.Ticket, 0, quantity)
		for i := 0; i < quantity; i++ {
			tickets = append(tickets, models.Ticket{
				ID:               uuid.New(),
				Serial:           ticketSerial(event.ID, firstSerial+i),
				ParticipantName:  input.ParticipantNames[i],
				ParticipantEmail: input.ParticipantEmails[i],
				UnitPrice:        event.UnitPrice,
				IssuedAt:         now,
				OrderID:          order.ID,
				EventID:          event.ID,
			})
		}
		order.Tickets = tickets
		order.Status = models.OrderStatusConcluded
		return tx.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel flips a concluded order to CANCELLED_BY_USER and restores its full
// quantity to the event's inventory. The order is looked up only within the
// caller's own orders. Orders tied to an organizer-cancelled event stay as
// they are.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	var cancelled *models.Order
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().FindByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		order, err := tx.Orders().FindByUserAndID(ctx, userID, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if !order.Cancellable() {
			return ErrOrderNotCancellable
		}

		event, err := tx.Events().FindByID(ctx, order.EventID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if event.Status == models.EventStatusCancelled {
			return ErrEventCancelled
		}

		if err := tx.Events().RestoreAvailable(ctx, event.ID, order.Quantity); err != nil {
			return err
		}
		if err := tx.Orders().UpdateStatus(ctx, order.ID, models.OrderStatusCancelledByUser); err != nil {
			return err
		}
		order.Status = models.OrderStatusCancelledByUser
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// Preview computes the price breakdown for a prospective purchase without
// touching inventory.
func (s *OrderService) Preview(ctx context.Context, eventID uuid.UUID, quantity int, couponCode string) (*Quote, error) {
	if quantity <= 0 {
		return nil, ErrNoParticipants
	}
	event, err := s.store.Events().FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	base := event.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	quote := s.compose(event, base, couponCode)
	return &quote, nil
}

// ListByUser returns the caller's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if _, err := s.store.Users().FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.store.Orders().FindByUser(ctx, userID)
}

// Ticket returns a single ticket with its order and event loaded.
func (s *OrderService) Ticket(ctx context.Context, ticketID uuid.UUID) (*models.Ticket, error) {
	ticket, err := s.store.Orders().FindTicketByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// CheckInTicket marks a ticket used at the door. Only the organizer of the
// ticket's event may check it in, and only once.
func (s *OrderService) CheckInTicket(ctx context.Context, organizerID, ticketID uuid.UUID) (*models.Ticket, error) {
	ticket, err := s.Ticket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Event == nil || ticket.Event.OrganizerID != organizerID {
		return nil, ErrNotEventOrganizer
	}
	if ticket.CheckedIn {
		return nil, ErrTicketAlreadyUsed
	}
	if err := s.store.Orders().MarkTicketCheckedIn(ctx, ticketID); err != nil {
		return nil, err
	}
	ticket.CheckedIn = true
	return ticket, nil
}

// compose applies the coupon discount first, when the code matches, and the
// service fee on whatever is left. The ordering is load-bearing: fee on the
// discounted subtotal is not the same number as discount on the fee'd total.
func (s *OrderService) compose(event *models.Event, base decimal.Decimal, couponCode string) Quote {
	quote := Quote{BaseAmount: base}
	subtotal := base
	if event.AcceptsCoupon(couponCode) {
		subtotal = pricing.CouponDiscount{Amount: event.CouponDiscount}.Calculate(base)
		quote.DiscountAmount = base.Sub(subtotal)
		quote.CouponApplied = true
	}
	quote.Total = s.fee.Calculate(subtotal)
	quote.FeeAmount = quote.Total.Sub(subtotal)
	return quote
}

func ticketSerial(eventID uuid.UUID, n int) string {
	return fmt.Sprintf("%s-%04d", strings.SplitN(eventID.String(), "-", 2)[0], n)
}
