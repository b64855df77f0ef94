package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brennosantos/eventos/internal/models"
	"github.com/brennosantos/eventos/internal/repository"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewUserService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name:        "Maria Silva",
		Email:       "maria@example.com",
		Password:    "s3cret-pass",
		PhoneNumber: "31 98888-1234",
		City:        "Belo Horizonte",
		RoleName:    models.RoleAttendee,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAttendee, user.Role.Name)
	assert.NotEqual(t, "s3cret-pass", user.Password, "password must be hashed")
	assert.Nil(t, user.CNPJ)

	got, err := svc.Authenticate(ctx, "maria@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "maria@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewUserService(store)
	ctx := context.Background()

	input := RegisterInput{
		Name:        "Maria Silva",
		Email:       "maria@example.com",
		Password:    "s3cret-pass",
		PhoneNumber: "31 98888-1234",
		RoleName:    models.RoleAttendee,
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterOrganizer(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewUserService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Name:        "Produtora XYZ",
		Email:       "contato@xyz.com",
		Password:    "s3cret-pass",
		PhoneNumber: "11 3333-0000",
		RoleName:    models.RoleOrganizer,
	})
	assert.Error(t, err, "organizer without CNPJ must be rejected")

	user, err := svc.Register(ctx, RegisterInput{
		Name:        "Produtora XYZ",
		Email:       "contato@xyz.com",
		Password:    "s3cret-pass",
		PhoneNumber: "11 3333-0000",
		RoleName:    models.RoleOrganizer,
		CNPJ:        "12.345.678/0001-90",
		BankAccount: "0001/12345-6",
	})
	require.NoError(t, err)
	require.NotNil(t, user.CNPJ)
	assert.Equal(t, "12.345.678/0001-90", *user.CNPJ)
	assert.True(t, user.IsOrganizer())
}

func TestRegisterUnknownRole(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewUserService(store)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "s3cret-pass",
		RoleName: "superuser",
	})
	assert.Error(t, err)
}

func TestProfileIncludesOrders(t *testing.T) {
	store := repository.NewMemoryStore()
	users := NewUserService(store)
	orders := NewOrderService(store)
	ctx := context.Background()

	organizer := seedUser(t, store, models.RoleOrganizer)
	buyer := seedUser(t, store, models.RoleAttendee)
	event := seedEvent(t, store, organizer, eventOpts{capacity: 10, unitPrice: "25"})

	names, emails := participants(2)
	_, err := orders.Create(ctx, CreateOrderInput{
		UserID: buyer.ID, EventID: event.ID,
		ParticipantNames: names, ParticipantEmails: emails,
	})
	require.NoError(t, err)

	profile, err := users.Profile(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, profile.Orders, 1)
	assert.Equal(t, 2, profile.Orders[0].Quantity)
	assert.Len(t, profile.Orders[0].Tickets, 2)
}
