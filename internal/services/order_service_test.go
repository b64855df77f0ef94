package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brennosantos/eventos/internal/models"
	"github.com/brennosantos/eventos/internal/repository"
)

func TestCreateOrderWithCoupon(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{
		capacity: 10, unitPrice: "100", couponCode: "PROMO50", couponDiscount: "50",
	})

	names, emails := participants(2)
	order, err := svc.Create(ctx, CreateOrderInput{
		UserID:            buyer.ID,
		EventID:           event.ID,
		ParticipantNames:  names,
		ParticipantEmails: emails,
		CouponCode:        "promo50",
	})
	require.NoError(t, err)

	// base 200, coupon 50 off, 5% fee on the remainder.
	assert.True(t, order.BaseAmount.Equal(decimal.NewFromInt(200)), "base %s", order.BaseAmount)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("157.5")), "total %s", order.TotalAmount)
	assert.Equal(t, models.OrderStatusConcluded, order.Status)
	require.Len(t, order.Tickets, 2)

	prefix := strings.SplitN(event.ID.String(), "-", 2)[0]
	assert.Equal(t, prefix+"-0001", order.Tickets[0].Serial)
	assert.Equal(t, prefix+"-0002", order.Tickets[1].Serial)
	assert.Equal(t, "Participant 1", order.Tickets[0].ParticipantName)
	assert.Equal(t, "p2@example.com", order.Tickets[1].ParticipantEmail)
	// Tickets record face value, not the discounted price.
	assert.True(t, order.Tickets[0].UnitPrice.Equal(decimal.NewFromInt(100)))

	got, err := store.Events().FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.TicketsAvailable)
}

func TestCreateOrderWithoutCoupon(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{
		capacity: 10, unitPrice: "80", couponCode: "PROMO", couponDiscount: "10",
	})

	names, emails := participants(1)
	order, err := svc.Create(ctx, CreateOrderInput{
		UserID:            buyer.ID,
		EventID:           event.ID,
		ParticipantNames:  names,
		ParticipantEmails: emails,
		CouponCode:        "WRONGCODE",
	})
	require.NoError(t, err)

	// Wrong coupon code means no discount. 80 * 1.05 = 84.
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(84)), "total %s", order.TotalAmount)
}

func TestCreateOrderSerialsContinue(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{capacity: 10, unitPrice: "50"})

	names, emails := participants(2)
	_, err := svc.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: event.ID,
		ParticipantNames: names, ParticipantEmails: emails,
	})
	require.NoError(t, err)

	names, emails = participants(3)
	second, err := svc.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: event.ID,
		ParticipantNames: names, ParticipantEmails: emails,
	})
	require.NoError(t, err)

	prefix := strings.SplitN(event.ID.String(), "-", 2)[0]
	assert.Equal(t, prefix+"-0003", second.Tickets[0].Serial)
	assert.Equal(t, prefix+"-0005", second.Tickets[2].Serial)
}

func TestCreateOrderParticipantValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{capacity: 10, unitPrice: "50"})

	_, err := svc.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: event.ID,
	})
	assert.ErrorIs(t, err, ErrNoParticipants)

	_, err = svc.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: event.ID,
		ParticipantNames:  []string{"Ana", "Bia"},
		ParticipantEmails: []string{"ana@example.com"},
	})
	assert.ErrorIs(t, err, ErrParticipantMismatch)
}

func TestCreateOrderInsufficientInventory(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{capacity: 1, unitPrice: "50"})

	names, emails := participants(5)
	_, err := svc.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: event.ID,
		ParticipantNames: names, ParticipantEmails: emails,
	})
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	// Nothing was written: inventory untouched, no order for the buyer.
	got, err := store.Events().FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TicketsAvailable)
	orders, err := store.Orders().FindByUser(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrderMissingUserOrEvent(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{capacity: 5, unitPrice: "50"})

	names, emails := participants(1)
	_, err := svc.Create(ctx, CreateOrderInput{
		UserID: uuid.New(), EventID: event.ID,
		ParticipantNames: names, ParticipantEmails: emails,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: uuid.New(),
		ParticipantNames: names, ParticipantEmails: emails,
	})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCancelOrderRestoresInventory(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{capacity: 10, unitPrice: "50"})

	names, emails := participants(3)
	order, err := svc.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: event.ID,
		ParticipantNames: names, ParticipantEmails: emails,
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelledByUser, cancelled.Status)
	// Tickets stay attached as a historical record.
	assert.Len(t, cancelled.Tickets, 3)

	got, err := store.Events().FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.TicketsAvailable)

	// A cancelled order cannot be cancelled again.
	_, err = svc.Cancel(ctx, buyer.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
	got, err = store.Events().FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.TicketsAvailable)
}

func TestCancelOrderScopedToOwner(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	other := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{capacity: 10, unitPrice: "50"})

	names, emails := participants(1)
	order, err := svc.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: event.ID,
		ParticipantNames: names, ParticipantEmails: emails,
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, other.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCancelOrderBlockedByCancelledEvent(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{capacity: 10, unitPrice: "50"})

	names, emails := participants(1)
	order, err := svc.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: event.ID,
		ParticipantNames: names, ParticipantEmails: emails,
	})
	require.NoError(t, err)

	// Flip the event directly so the order is still CONCLUDED.
	event.Status = models.EventStatusCancelled
	require.NoError(t, store.Events().Save(ctx, event))

	_, err = svc.Cancel(ctx, buyer.ID, order.ID)
	assert.ErrorIs(t, err, ErrEventCancelled)
}

func TestPreview(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	event := seedEvent(t, store, organizer, eventOpts{
		capacity: 10, unitPrice: "100", couponCode: "PROMO50", couponDiscount: "50",
	})

	quote, err := svc.Preview(ctx, event.ID, 2, "PROMO50")
	require.NoError(t, err)
	assert.True(t, quote.BaseAmount.Equal(decimal.NewFromInt(200)))
	assert.True(t, quote.DiscountAmount.Equal(decimal.NewFromInt(50)))
	assert.True(t, quote.FeeAmount.Equal(decimal.RequireFromString("7.5")), "fee %s", quote.FeeAmount)
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("157.5")))
	assert.True(t, quote.CouponApplied)

	// Previews never touch inventory.
	got, err := store.Events().FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.TicketsAvailable)

	quote, err = svc.Preview(ctx, event.ID, 2, "BOGUS")
	require.NoError(t, err)
	assert.False(t, quote.CouponApplied)
	assert.True(t, quote.DiscountAmount.IsZero())
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(210)))
}

func TestInventoryConservation(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{capacity: 10, unitPrice: "20"})

	checkInvariant := func() {
		t.Helper()
		got, err := store.Events().FindByID(ctx, event.ID)
		require.NoError(t, err)
		orders, err := store.Orders().FindByEvent(ctx, event.ID)
		require.NoError(t, err)
		held := 0
		for _, order := range orders {
			if !order.Cancelled() {
				held += order.Quantity
			}
		}
		assert.Equal(t, event.Capacity, got.TicketsAvailable+held)
	}

	var orderIDs []uuid.UUID
	for _, qty := range []int{3, 2, 4} {
		names, emails := participants(qty)
		order, err := svc.Create(ctx, CreateOrderInput{
			UserID: buyer.ID, EventID: event.ID,
			ParticipantNames: names, ParticipantEmails: emails,
		})
		require.NoError(t, err)
		orderIDs = append(orderIDs, order.ID)
		checkInvariant()
	}

	_, err := svc.Cancel(ctx, buyer.ID, orderIDs[1])
	require.NoError(t, err)
	checkInvariant()

	names, emails := participants(2)
	_, err = svc.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: event.ID,
		ParticipantNames: names, ParticipantEmails: emails,
	})
	require.NoError(t, err)
	checkInvariant()
}

func TestCheckInTicket(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	stranger := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{capacity: 10, unitPrice: "50"})

	names, emails := participants(1)
	order, err := svc.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: event.ID,
		ParticipantNames: names, ParticipantEmails: emails,
	})
	require.NoError(t, err)
	ticketID := order.Tickets[0].ID

	_, err = svc.CheckInTicket(ctx, stranger.ID, ticketID)
	assert.ErrorIs(t, err, ErrNotEventOrganizer)

	ticket, err := svc.CheckInTicket(ctx, organizer.ID, ticketID)
	require.NoError(t, err)
	assert.True(t, ticket.CheckedIn)

	_, err = svc.CheckInTicket(ctx, organizer.ID, ticketID)
	assert.ErrorIs(t, err, ErrTicketAlreadyUsed)
}
