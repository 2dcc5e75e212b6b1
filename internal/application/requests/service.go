package requests

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"automind-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// CreateRequest files a Buy/Rent request against a listing. The request
// type must match the listing type (Sell takes Buy, Rent takes Rent).
// The in-transaction lookup gives the friendly error; the partial unique
// index uniq_request_pending is what actually holds under concurrency,
// so an insert that loses the race still comes back as ErrDuplicatePending.
func (s *Service) CreateRequest(ctx context.Context, customerID, listingID uuid.UUID, requestType string) (*domain.Request, error) {
	if requestType != domain.RequestBuy && requestType != domain.RequestRent {
		return nil, errors.New("Invalid request type")
	}

	var req *domain.Request
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrListingNotFound
			}
			return err
		}
		if listing.DealerID == customerID {
			return ErrSelfRequest
		}
		if (listing.ListingType == domain.ListingSell && requestType != domain.RequestBuy) ||
			(listing.ListingType == domain.ListingRent && requestType != domain.RequestRent) {
			return ErrKindMismatch
		}

		var existing domain.Request
		err := tx.Where("listing_id = ? AND customer_id = ? AND status = ?",
			listingID, customerID, domain.StatusPending).First(&existing).Error
		if err == nil {
			return ErrDuplicatePending
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		req = &domain.Request{
			ListingID:   listingID,
			CustomerID:  customerID,
			DealerID:    listing.DealerID,
			RequestType: requestType,
			Status:      domain.StatusPending,
		}
		if err := tx.Create(req).Error; err != nil {
			// A concurrent creator that passed the lookup above trips
			// the unique index here.
			return ErrDuplicatePending
		}
		eventDataBytes, _ := json.Marshal(map[string]interface{}{
			"request_id":   req.RequestID,
			"request_type": requestType,
		})
		return tx.Create(&domain.ListingEvent{
			ListingID: listingID,
			EventType: domain.EventRequested,
			EventData: datatypes.JSON(eventDataBytes),
			ActorID:   &customerID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// RequestView is a dealer's inbound request joined with listing and
// customer fields.
type RequestView struct {
	RequestID    uuid.UUID `json:"request_id"`
	ListingID    uuid.UUID `json:"listing_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	DealerID     uuid.UUID `json:"dealer_id"`
	RequestType  string    `json:"request_type"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	CarName      string    `json:"car_name"`
	Brand        string    `json:"brand"`
	Year         int       `json:"year"`
	ListingType  string    `json:"listing_type"`
	Price        float64   `json:"price"`
	CustomerName string    `json:"customer_name"`
	CustomerUpi  string    `json:"customer_upi"`
}

// GetDealerRequests returns the dealer's inbound requests, newest first.
// An empty status returns all of them; the accepted-history view passes
// StatusAccepted.
func (s *Service) GetDealerRequests(ctx context.Context, dealerID uuid.UUID, status string) ([]RequestView, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Request{}).
		Select(`requests.*, listings.car_name, listings.brand, listings.year,
			listings.listing_type, listings.price,
			users.username AS customer_name, users.upi_id AS customer_upi`).
		Joins("JOIN listings ON listings.listing_id = requests.listing_id").
		Joins("JOIN users ON users.user_id = requests.customer_id").
		Where("requests.dealer_id = ?", dealerID)
	if status != "" {
		q = q.Where("requests.status = ?", status)
	}
	var views []RequestView
	if err := q.Order(`requests."createdAt" DESC`).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// Respond moves a Pending request to Accepted or Rejected. Both states are
// terminal: a second response fails regardless of direction. The status
// update and its audit event commit together.
func (s *Service) Respond(ctx context.Context, dealerID, requestID uuid.UUID, accept bool) (*domain.Request, error) {
	var req domain.Request
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).First(&req).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrRequestNotFound
			}
			return err
		}
		if req.DealerID != dealerID {
			return ErrForbidden
		}
		if req.Status != domain.StatusPending {
			return ErrInvalidTransition
		}

		newStatus := domain.StatusRejected
		eventType := domain.EventRejected
		if accept {
			newStatus = domain.StatusAccepted
			eventType = domain.EventAccepted
		}
		if err := tx.Model(&req).Update("status", newStatus).Error; err != nil {
			return err
		}
		eventDataBytes, _ := json.Marshal(map[string]interface{}{
			"request_id": req.RequestID,
			"status":     newStatus,
		})
		return tx.Create(&domain.ListingEvent{
			ListingID: req.ListingID,
			EventType: eventType,
			EventData: datatypes.JSON(eventDataBytes),
			ActorID:   &dealerID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}
