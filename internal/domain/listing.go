package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing type values.
const (
	ListingSell = "Sell"
	ListingRent = "Rent"
)

// Listing is a dealer's advertised vehicle for sale or rent.
type Listing struct {
	ListingID   uuid.UUID `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	DealerID    uuid.UUID `gorm:"column:dealer_id;type:uuid;not null;index" json:"dealer_id"`
	CarName     string    `gorm:"column:car_name;not null" json:"car_name"`
	Brand       string    `gorm:"column:brand;not null" json:"brand"`
	Year        int       `gorm:"column:year;not null" json:"year"`
	ListingType string    `gorm:"column:listing_type;type:varchar(10);not null" json:"listing_type"`
	Price       float64   `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	PhotoURL    string    `gorm:"column:photo_url" json:"photo_url"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate sets listing_id if not already set (DBs without default uuid).
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	return nil
}
