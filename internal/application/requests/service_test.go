package requests

import (
	"context"
	"testing"

	"automind-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRequestsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Listing{}, &domain.Request{}, &domain.ListingEvent{}))
	return &Service{DB: db}, db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *domain.User {
	u := &domain.User{Username: username, Role: role, UpiID: username + "@upi", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedListing(t *testing.T, db *gorm.DB, dealer *domain.User, carName, brand string, year int, listingType string, price float64) *domain.Listing {
	l := &domain.Listing{
		DealerID:    dealer.UserID,
		CarName:     carName,
		Brand:       brand,
		Year:        year,
		ListingType: listingType,
		Price:       price,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func TestCreateRequest_BuyOnSellListing(t *testing.T) {
	svc, db := setupRequestsTest(t)
	dealer := seedUser(t, db, "dealer1", "Car Dealer")
	customer := seedUser(t, db, "customer1", "Customer")
	listing := seedListing(t, db, dealer, "Civic", "Honda", 2019, domain.ListingSell, 800000)

	req, err := svc.CreateRequest(context.Background(), customer.UserID, listing.ListingID, domain.RequestBuy)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, req.Status)
	assert.Equal(t, dealer.UserID, req.DealerID)

	var eventCount int64
	db.Model(&domain.ListingEvent{}).
		Where("listing_id = ? AND event_type = ?", listing.ListingID, domain.EventRequested).
		Count(&eventCount)
	assert.Equal(t, int64(1), eventCount)
}

func TestCreateRequest_DuplicatePending(t *testing.T) {
	svc, db := setupRequestsTest(t)
	dealer := seedUser(t, db, "dealer1", "Car Dealer")
	customer := seedUser(t, db, "customer1", "Customer")
	listing := seedListing(t, db, dealer, "Civic", "Honda", 2019, domain.ListingSell, 800000)

	_, err := svc.CreateRequest(context.Background(), customer.UserID, listing.ListingID, domain.RequestBuy)
	require.NoError(t, err)

	_, err = svc.CreateRequest(context.Background(), customer.UserID, listing.ListingID, domain.RequestBuy)
	assert.ErrorIs(t, err, ErrDuplicatePending)

	var count int64
	db.Model(&domain.Request{}).Where("listing_id = ?", listing.ListingID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateRequest_AllowedAfterRejection(t *testing.T) {
	svc, db := setupRequestsTest(t)
	dealer := seedUser(t, db, "dealer1", "Car Dealer")
	customer := seedUser(t, db, "customer1", "Customer")
	listing := seedListing(t, db, dealer, "Civic", "Honda", 2019, domain.ListingSell, 800000)

	first, err := svc.CreateRequest(context.Background(), customer.UserID, listing.ListingID, domain.RequestBuy)
	require.NoError(t, err)
	_, err = svc.Respond(context.Background(), dealer.UserID, first.RequestID, false)
	require.NoError(t, err)

	// Only a Pending request blocks a new one.
	_, err = svc.CreateRequest(context.Background(), customer.UserID, listing.ListingID, domain.RequestBuy)
	assert.NoError(t, err)
}

func TestCreateRequest_KindMismatch(t *testing.T) {
	svc, db := setupRequestsTest(t)
	dealer := seedUser(t, db, "dealer1", "Car Dealer")
	customer := seedUser(t, db, "customer1", "Customer")
	sell := seedListing(t, db, dealer, "Civic", "Honda", 2019, domain.ListingSell, 800000)
	rent := seedListing(t, db, dealer, "Swift", "Maruti", 2021, domain.ListingRent, 1200)

	_, err := svc.CreateRequest(context.Background(), customer.UserID, sell.ListingID, domain.RequestRent)
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = svc.CreateRequest(context.Background(), customer.UserID, rent.ListingID, domain.RequestBuy)
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = svc.CreateRequest(context.Background(), customer.UserID, rent.ListingID, domain.RequestRent)
	assert.NoError(t, err)
}

func TestCreateRequest_ListingNotFound(t *testing.T) {
	svc, db := setupRequestsTest(t)
	customer := seedUser(t, db, "customer1", "Customer")

	_, err := svc.CreateRequest(context.Background(), customer.UserID, uuid.New(), domain.RequestBuy)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestCreateRequest_OwnListing(t *testing.T) {
	svc, db := setupRequestsTest(t)
	dealer := seedUser(t, db, "dealer1", "Car Dealer")
	listing := seedListing(t, db, dealer, "Civic", "Honda", 2019, domain.ListingSell, 800000)

	_, err := svc.CreateRequest(context.Background(), dealer.UserID, listing.ListingID, domain.RequestBuy)
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestRespond_AcceptThenTerminal(t *testing.T) {
	svc, db := setupRequestsTest(t)
	dealer := seedUser(t, db, "dealer1", "Car Dealer")
	customer := seedUser(t, db, "customer1", "Customer")
	listing := seedListing(t, db, dealer, "Civic", "Honda", 2019, domain.ListingSell, 800000)

	req, err := svc.CreateRequest(context.Background(), customer.UserID, listing.ListingID, domain.RequestBuy)
	require.NoError(t, err)

	updated, err := svc.Respond(context.Background(), dealer.UserID, req.RequestID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, updated.Status)

	var eventCount int64
	db.Model(&domain.ListingEvent{}).
		Where("listing_id = ? AND event_type = ?", listing.ListingID, domain.EventAccepted).
		Count(&eventCount)
	assert.Equal(t, int64(1), eventCount)

	// Accepted is terminal in both directions.
	_, err = svc.Respond(context.Background(), dealer.UserID, req.RequestID, false)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.Respond(context.Background(), dealer.UserID, req.RequestID, true)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRespond_OnlyOwningDealer(t *testing.T) {
	svc, db := setupRequestsTest(t)
	dealer := seedUser(t, db, "dealer1", "Car Dealer")
	other := seedUser(t, db, "dealer2", "Car Dealer")
	customer := seedUser(t, db, "customer1", "Customer")
	listing := seedListing(t, db, dealer, "Civic", "Honda", 2019, domain.ListingSell, 800000)

	req, err := svc.CreateRequest(context.Background(), customer.UserID, listing.ListingID, domain.RequestBuy)
	require.NoError(t, err)

	_, err = svc.Respond(context.Background(), other.UserID, req.RequestID, true)
	assert.ErrorIs(t, err, ErrForbidden)

	var stored domain.Request
	require.NoError(t, db.Where("request_id = ?", req.RequestID).First(&stored).Error)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestRespond_NotFound(t *testing.T) {
	svc, db := setupRequestsTest(t)
	dealer := seedUser(t, db, "dealer1", "Car Dealer")

	_, err := svc.Respond(context.Background(), dealer.UserID, uuid.New(), true)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestGetDealerRequests_StatusFilter(t *testing.T) {
	svc, db := setupRequestsTest(t)
	dealer := seedUser(t, db, "dealer1", "Car Dealer")
	c1 := seedUser(t, db, "customer1", "Customer")
	c2 := seedUser(t, db, "customer2", "Customer")
	listing := seedListing(t, db, dealer, "Civic", "Honda", 2019, domain.ListingSell, 800000)

	r1, err := svc.CreateRequest(context.Background(), c1.UserID, listing.ListingID, domain.RequestBuy)
	require.NoError(t, err)
	_, err = svc.CreateRequest(context.Background(), c2.UserID, listing.ListingID, domain.RequestBuy)
	require.NoError(t, err)
	_, err = svc.Respond(context.Background(), dealer.UserID, r1.RequestID, true)
	require.NoError(t, err)

	all, err := svc.GetDealerRequests(context.Background(), dealer.UserID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Civic", all[0].CarName)

	accepted, err := svc.GetDealerRequests(context.Background(), dealer.UserID, domain.StatusAccepted)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, r1.RequestID, accepted[0].RequestID)
	assert.Equal(t, "customer1", accepted[0].CustomerName)

	pending, err := svc.GetDealerRequests(context.Background(), dealer.UserID, domain.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestCreateRequest_PendingUniqueIndexHoldsUnderRace(t *testing.T) {
	svc, db := setupRequestsTest(t)
	dealer := seedUser(t, db, "dealer1", "Car Dealer")
	customer := seedUser(t, db, "customer1", "Customer")
	listing := seedListing(t, db, dealer, "Civic", "Honda", 2019, domain.ListingSell, 800000)

	_, err := svc.CreateRequest(context.Background(), customer.UserID, listing.ListingID, domain.RequestBuy)
	require.NoError(t, err)

	// A racing creator that passed the pre-insert lookup would issue this
	// insert; the partial unique index must reject it at the store level.
	racer := &domain.Request{
		ListingID: listing.ListingID, CustomerID: customer.UserID, DealerID: dealer.UserID,
		RequestType: domain.RequestBuy, Status: domain.StatusPending,
	}
	assert.Error(t, db.Create(racer).Error)

	var count int64
	db.Model(&domain.Request{}).
		Where("listing_id = ? AND customer_id = ? AND status = ?",
			listing.ListingID, customer.UserID, domain.StatusPending).
		Count(&count)
	assert.Equal(t, int64(1), count)

	// The index only covers Pending rows: settled requests do not block
	// inserts for the same pair.
	settled := &domain.Request{
		ListingID: listing.ListingID, CustomerID: customer.UserID, DealerID: dealer.UserID,
		RequestType: domain.RequestBuy, Status: domain.StatusRejected,
	}
	assert.NoError(t, db.Create(settled).Error)
}
