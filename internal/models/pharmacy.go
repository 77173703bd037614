package models

import (
	"time"

	"github.com/google/uuid"
)

type Pharmacy struct {
	ID            int        `json:"id" db:"id"`
	PharmacyName  string     `json:"pharmacy_name" db:"pharmacy_name"`
	UserName      string     `json:"user_name" db:"user_name"`
	Password      *string    `json:"-" db:"password"`
	Latitude      *string    `json:"latitude" db:"latitude"`
	Longitude     *string    `json:"longitude" db:"longitude"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	AccountNumber *string    `json:"account_number" db:"account_number"`
	LocationsID   *int       `json:"locations_id" db:"locations_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at" db:"updated_at"`

	// Joined for display.
	LocationCity string `json:"location_city,omitempty" db:"-"`
	OwnerName    string `json:"owner_name,omitempty" db:"-"`
}
