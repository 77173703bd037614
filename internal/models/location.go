package models

import "time"

type Location struct {
	ID          int       `json:"id" db:"id"`
	Street      string    `json:"street" db:"street"`
	City        string    `json:"city" db:"city"`
	State       *string   `json:"state" db:"state"`
	CountriesID int       `json:"countries_id" db:"countries_id"`
	TimeZone    *string   `json:"time_zone" db:"time_zone"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Joined for display, not persisted with the row.
	CountryName string `json:"country_name,omitempty" db:"-"`
}
