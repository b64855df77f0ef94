package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brennosantos/eventos/internal/models"
)

// GormStore is the Postgres-backed Store used by the server.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository   { return &gormUserRepository{db: s.db} }
func (s *GormStore) Events() EventRepository { return &gormEventRepository{db: s.db} }
func (s *GormStore) Orders() OrderRepository { return &gormOrderRepository{db: s.db} }
func (s *GormStore) Roles() RoleRepository   { return &gormRoleRepository{db: s.db} }

func (s *GormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUserRepository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Orders.Tickets").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Role").First(&user, "email = ?", email).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Preload("Role").Find(&users).Error
	return users, err
}

func (r *gormUserRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

type gormEventRepository struct {
	db *gorm.DB
}

func (r *gormEventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *gormEventRepository) Save(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *gormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *gormEventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&events).Error
	return events, err
}

func (r *gormEventRepository) FindByTitleContaining(ctx context.Context, term string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("title ILIKE ?", "%"+term+"%").
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *gormEventRepository) FindByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *gormEventRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (r *gormEventRepository) DecrementAvailable(ctx context.Context, id uuid.UUID, qty int) (int, error) {
	var remaining int
	result := r.db.WithContext(ctx).Raw(
		`UPDATE events
		 SET tickets_available = tickets_available - ?
		 WHERE id = ? AND status = ? AND tickets_available >= ?
		 RETURNING tickets_available`,
		qty, id, models.EventStatusActive, qty,
	).Scan(&remaining)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrInsufficientStock
	}
	return remaining, nil
}

func (r *gormEventRepository) RestoreAvailable(ctx context.Context, id uuid.UUID, qty int) error {
	result := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", id).
		UpdateColumn("tickets_available", gorm.Expr("tickets_available + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormOrderRepository struct {
	db *gorm.DB
}

func (r *gormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormOrderRepository) FindByUserAndID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Tickets").
		Preload("Event").
		First(&order, "id = ? AND user_id = ?", orderID, userID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Tickets").
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) FindTicketByID(ctx context.Context, ticketID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Event").
		First(&ticket, "id = ?", ticketID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ticket, nil
}

func (r *gormOrderRepository) MarkTicketCheckedIn(ctx context.Context, ticketID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.Ticket{}).
		Where("id = ?", ticketID).
		Update("checked_in", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormRoleRepository struct {
	db *gorm.DB
}

func (r *gormRoleRepository) Save(ctx context.Context, role *models.Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

func (r *gormRoleRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error
	if err != nil {
		return nil, translate(err)
	}
	return &role, nil
}
