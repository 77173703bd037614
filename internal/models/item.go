package models

import "time"

type Item struct {
	ID              int        `json:"id" db:"id"`
	ItemName        string     `json:"item_name" db:"item_name"`
	ItemDescription *string    `json:"item_description" db:"item_description"`
	Price           float64    `json:"price" db:"price"`
	ItemStatusesID  int        `json:"item_statuses_id" db:"item_statuses_id"`
	ItemCode        *string    `json:"item_code" db:"item_code"`
	InsertedBy      *string    `json:"inserted_by" db:"inserted_by"`
	InsertDate      *time.Time `json:"insert_date" db:"insert_date"`
	ExpiryDate      *time.Time `json:"expiry_date" db:"expiry_date"`
	UpdatedBy       *string    `json:"updated_by" db:"updated_by"`
	UpdateDate      *time.Time `json:"update_date" db:"update_date"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	Stock           *int       `json:"stock" db:"stock"`
	PharmaciesID    int        `json:"pharmacies_id" db:"pharmacies_id"`

	// Joined for display.
	Status       string `json:"status,omitempty" db:"-"`
	PharmacyName string `json:"pharmacy_name,omitempty" db:"-"`
}
