package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request type values.
const (
	RequestBuy  = "Buy"
	RequestRent = "Rent"
)

// Request status values. Accepted and Rejected are terminal.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// Request is a customer's expressed interest in a listing. DealerID is
// denormalized from the listing so dealer views and ownership checks
// need no join. The partial unique index on (listing_id, customer_id)
// holds only while status is Pending, so a customer can re-request after
// a rejection but never hold two open requests for the same car.
type Request struct {
	RequestID   uuid.UUID `gorm:"column:request_id;type:uuid;primaryKey" json:"request_id"`
	ListingID   uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index;uniqueIndex:uniq_request_pending,where:status = 'Pending',priority:1" json:"listing_id"`
	CustomerID  uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index;uniqueIndex:uniq_request_pending,priority:2" json:"customer_id"`
	DealerID    uuid.UUID `gorm:"column:dealer_id;type:uuid;not null;index" json:"dealer_id"`
	RequestType string    `gorm:"column:request_type;type:varchar(10);not null" json:"request_type"`
	Status      string    `gorm:"column:status;type:varchar(10);not null;default:'Pending'" json:"status"`
	CreatedAt   time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Request) TableName() string {
	return "requests"
}

// BeforeCreate sets request_id if not already set.
func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.RequestID == uuid.Nil {
		r.RequestID = uuid.New()
	}
	return nil
}
