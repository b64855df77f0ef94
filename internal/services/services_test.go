package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/brennosantos/eventos/internal/models"
	"github.com/brennosantos/eventos/internal/repository"
)

func seedUser(t *testing.T, store repository.Store, roleName string) *models.User {
	t.Helper()
	ctx := context.Background()
	role, err := store.Roles().FindByName(ctx, roleName)
	require.NoError(t, err)

	id := uuid.New()
	user := &models.User{
		ID:          id,
		Name:        "Test " + roleName,
		Email:       fmt.Sprintf("%s-%s@example.com", roleName, id.String()[:8]),
		Password:    "not-a-real-hash",
		PhoneNumber: "11 99999-0000",
		RoleID:      role.ID,
	}
	require.NoError(t, store.Users().Create(ctx, user))
	return user
}

type eventOpts struct {
	capacity       int
	unitPrice      string
	couponCode     string
	couponDiscount string
}

func seedEvent(t *testing.T, store repository.Store, organizer *models.User, opts eventOpts) *models.Event {
	t.Helper()
	event := &models.Event{
		ID:               uuid.New(),
		Title:            "Show da Cidade",
		Description:      "Open air concert",
		Category:         "show",
		Location:         "Praça Central",
		StartTime:        time.Now().Add(30 * 24 * time.Hour),
		Capacity:         opts.capacity,
		TicketsAvailable: opts.capacity,
		UnitPrice:        decimal.RequireFromString(opts.unitPrice),
		CouponCode:       opts.couponCode,
		Status:           models.EventStatusActive,
		OrganizerID:      organizer.ID,
	}
	if opts.couponDiscount != "" {
		event.CouponDiscount = decimal.RequireFromString(opts.couponDiscount)
	}
	require.NoError(t, store.Events().Create(context.Background(), event))
	return event
}

func participants(n int) ([]string, []string) {
	names := make([]string, n)
	emails := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf("Participant %d", i+1)
		emails[i] = fmt.Sprintf("p%d@example.com", i+1)
	}
	return names, emails
}
