package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending              OrderStatus = "PENDING"
	OrderStatusConcluded            OrderStatus = "CONCLUDED"
	OrderStatusCancelledByUser      OrderStatus = "CANCELLED_BY_USER"
	OrderStatusCancelledByOrganizer OrderStatus = "CANCELLED_BY_ORGANIZER"
)

type Order struct {
	gorm.Model
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	Quantity    int             `gorm:"not null"`
	BaseAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status      OrderStatus     `gorm:"not null"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	User        *User
	EventID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Event       *Event
	Tickets     []Ticket
}

func (order *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return
}

// Cancellable reports whether the holder may still cancel the order.
// Only a concluded order can be cancelled; cancellation is terminal.
func (order *Order) Cancellable() bool {
	return order.Status == OrderStatusConcluded
}

// Cancelled reports whether the order is in a terminal cancelled state.
func (order *Order) Cancelled() bool {
	return order.Status == OrderStatusCancelledByUser || order.Status == OrderStatusCancelledByOrganizer
}
