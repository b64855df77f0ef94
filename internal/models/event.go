package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventStatusActive    EventStatus = "ACTIVE"
	EventStatusCancelled EventStatus = "CANCELLED"
)

type Event struct {
	gorm.Model
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	Title            string    `gorm:"not null"`
	Description      string    `gorm:"not null"`
	Category         string    `gorm:"not null"`
	Location         string    `gorm:"not null"`
	StartTime        time.Time `gorm:"not null"`
	Capacity         int       `gorm:"not null"`
	TicketsAvailable int       `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CouponCode       string
	CouponDiscount   decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status           EventStatus     `gorm:"not null;default:'ACTIVE'"`
	BannerPath       string
	OrganizerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Organizer        *User     `gorm:"foreignKey:OrganizerID"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

// AcceptsCoupon reports whether code redeems this event's coupon.
// Matching is case-insensitive; an event without a coupon accepts nothing.
func (event *Event) AcceptsCoupon(code string) bool {
	return event.CouponCode != "" && code != "" && strings.EqualFold(event.CouponCode, code)
}
