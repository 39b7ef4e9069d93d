package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is referenced only as the optional owner of a quote.
type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string
	Email     string  `gorm:"uniqueIndex;not null"`
	Quotes    []Quote `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
