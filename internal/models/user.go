package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Email       string    `gorm:"unique;not null"`
	Password    string    `gorm:"not null"`
	PhoneNumber string    `gorm:"not null"`
	City        string
	RoleID      uuid.UUID
	Role        Role
	// Organizer-only fields.
	CNPJ        *string
	BankAccount *string
	Orders      []Order
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}

// IsOrganizer reports whether the user may create and cancel events.
// Role must be loaded.
func (user *User) IsOrganizer() bool {
	return user.Role.Name == RoleOrganizer
}
