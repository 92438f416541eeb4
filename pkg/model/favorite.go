package model

import (
	"time"
)

// Brewery is a single record from the upstream directory. It is never
// persisted; saving one copies its fields into a Favorite.
type Brewery struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	BreweryType *string `json:"brewery_type,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	WebsiteURL  *string `json:"website_url,omitempty"`
}

// Favorite pairs an upstream brewery id with a user note and a snapshot of
// the brewery metadata taken at save time. The snapshot is not reconciled
// with the directory afterward.
type Favorite struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BreweryID   string    `gorm:"uniqueIndex;not null" json:"breweryId"`
	Name        string    `gorm:"not null" json:"name"`
	BreweryType *string   `json:"breweryType"`
	City        *string   `json:"city"`
	State       *string   `json:"state"`
	WebsiteURL  *string   `json:"websiteUrl"`
	Note        *string   `json:"note"`
	CreatedUtc  time.Time `json:"createdUtc"`
	UpdatedUtc  time.Time `json:"updatedUtc"`
}
