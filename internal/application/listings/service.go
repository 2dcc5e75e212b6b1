package listings

import (
	"context"
	"encoding/json"
	"time"

	"automind-backend/internal/domain"
	"automind-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateListingInput struct {
	DealerID    uuid.UUID
	CarName     string
	Brand       string
	Year        int
	ListingType string
	Price       float64
	PhotoURL    string
	Description string
}

// CreateListing validates fields and persists the listing with a CREATED
// event in the same transaction.
func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (*domain.Listing, error) {
	if in.CarName == "" || in.Brand == "" {
		return nil, ErrMissingCarFields
	}
	if !validation.IsValidListingYear(in.Year) {
		return nil, ErrInvalidYear
	}
	if in.ListingType != domain.ListingSell && in.ListingType != domain.ListingRent {
		return nil, ErrInvalidListingType
	}
	if !validation.IsValidPrice(in.Price) {
		return nil, ErrInvalidPrice
	}

	listing := &domain.Listing{
		DealerID:    in.DealerID,
		CarName:     in.CarName,
		Brand:       in.Brand,
		Year:        in.Year,
		ListingType: in.ListingType,
		Price:       in.Price,
		PhotoURL:    in.PhotoURL,
		Description: in.Description,
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(listing).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	eventDataBytes, _ := json.Marshal(map[string]interface{}{
		"listing_type": listing.ListingType,
		"price":        listing.Price,
	})
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listing.ListingID,
		EventType: domain.EventCreated,
		EventData: datatypes.JSON(eventDataBytes),
		ActorID:   &in.DealerID,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// ListingView is the public marketplace shape: listing fields plus the
// dealer's display name and payment handle. It carries no mutation
// affordances; ownership is re-checked server-side on every mutation.
type ListingView struct {
	ListingID   uuid.UUID `json:"listing_id"`
	DealerID    uuid.UUID `json:"dealer_id"`
	CarName     string    `json:"car_name"`
	Brand       string    `json:"brand"`
	Year        int       `json:"year"`
	ListingType string    `json:"listing_type"`
	Price       float64   `json:"price"`
	PhotoURL    string    `json:"photo_url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	DealerName  string    `json:"dealer_name"`
	DealerUpi   string    `json:"dealer_upi"`
}

// GetAllListings returns the public marketplace view, newest first.
func (s *Service) GetAllListings(ctx context.Context) ([]ListingView, error) {
	var views []ListingView
	err := s.DB.WithContext(ctx).Model(&domain.Listing{}).
		Select(`listings.*, users.username AS dealer_name, users.upi_id AS dealer_upi`).
		Joins("JOIN users ON users.user_id = listings.dealer_id").
		Order(`listings."createdAt" DESC`).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// DealerListing is a dealer's own listing with its pending-request count.
type DealerListing struct {
	ListingView
	PendingRequests int64 `json:"pending_requests"`
}

// GetDealerListings returns the dealer's listings, newest first, each with
// the count of requests still pending.
func (s *Service) GetDealerListings(ctx context.Context, dealerID uuid.UUID) ([]DealerListing, error) {
	var views []DealerListing
	err := s.DB.WithContext(ctx).Model(&domain.Listing{}).
		Select(`listings.*, users.username AS dealer_name, users.upi_id AS dealer_upi,
			(SELECT COUNT(*) FROM requests WHERE requests.listing_id = listings.listing_id AND requests.status = ?) AS pending_requests`,
			domain.StatusPending).
		Joins("JOIN users ON users.user_id = listings.dealer_id").
		Where("listings.dealer_id = ?", dealerID).
		Order(`listings."createdAt" DESC`).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// DeleteListing removes a listing the caller owns. All requests and events
// for the listing are removed in the same transaction as the listing row;
// a partial cascade never persists.
func (s *Service) DeleteListing(ctx context.Context, dealerID, listingID uuid.UUID) error {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrListingNotFound
		}
		return err
	}
	if listing.DealerID != dealerID {
		return ErrForbidden
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Where("listing_id = ?", listingID).Delete(&domain.Request{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("listing_id = ?", listingID).Delete(&domain.ListingEvent{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("listing_id = ? AND dealer_id = ?", listingID, dealerID).
		Delete(&domain.Listing{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
