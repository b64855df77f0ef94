package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brennosantos/eventos/internal/models"
	"github.com/brennosantos/eventos/internal/repository"
)

// UserService handles registration and credential checks for attendees and
// organizers.
type UserService struct {
	store repository.Store
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	City        string
	RoleName    string
	CNPJ        string
	BankAccount string
}

// Register creates a user with a bcrypt-hashed password. Organizers must
// provide a CNPJ; attendees carry none of the organizer fields.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	role, err := s.store.Roles().FindByName(ctx, input.RoleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.RoleName)
		}
		return nil, err
	}
	if role.Name == models.RoleOrganizer && input.CNPJ == "" {
		return nil, fmt.Errorf("%w: organizers must provide a CNPJ", ErrInvalidInput)
	}

	if _, err := s.store.Users().FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:          uuid.New(),
		Name:        input.Name,
		Email:       input.Email,
		Password:    string(hashed),
		PhoneNumber: input.PhoneNumber,
		City:        input.City,
		RoleID:      role.ID,
	}
	if role.Name == models.RoleOrganizer {
		user.CNPJ = &input.CNPJ
		if input.BankAccount != "" {
			user.BankAccount = &input.BankAccount
		}
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	user.Role = *role
	return user, nil
}

// Authenticate verifies an email/password pair and returns the user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Profile returns a user with role and order history loaded.
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
