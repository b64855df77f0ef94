package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Ticket struct {
	gorm.Model
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	Serial           string    `gorm:"not null;uniqueIndex"`
	ParticipantName  string    `gorm:"not null"`
	ParticipantEmail string    `gorm:"not null"`
	// Face value at purchase time; coupon discounts never alter it.
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IssuedAt  time.Time       `gorm:"not null"`
	CheckedIn bool            `gorm:"not null;default:false"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Order     *Order
	EventID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Event     *Event
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
