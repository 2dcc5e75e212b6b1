package listingevents

import (
	"context"

	"automind-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// GetDealerEvents returns the audit feed for every listing the dealer owns,
// newest first.
func (s *Service) GetDealerEvents(ctx context.Context, dealerID uuid.UUID) ([]domain.ListingEvent, error) {
	var events []domain.ListingEvent
	err := s.DB.WithContext(ctx).
		Joins("JOIN listings ON listings.listing_id = listing_events.listing_id").
		Where("listings.dealer_id = ?", dealerID).
		Order(`listing_events."createdAt" DESC`).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
