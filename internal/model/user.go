package model

import (
	"time"

	"github.com/google/uuid"
)

// User owns suppliers and authenticates with email + password.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FullName     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Suppliers []Supplier `gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }
