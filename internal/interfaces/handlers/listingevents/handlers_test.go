package listingevents

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	lesvc "automind-backend/internal/application/listingevents"
	listsvc "automind-backend/internal/application/listings"
	reqsvc "automind-backend/internal/application/requests"
	"automind-backend/internal/domain"
	"automind-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupEventsTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Listing{}, &domain.Request{}, &domain.ListingEvent{}))
	return &Handlers{Service: &lesvc.Service{DB: db}}, db
}

func sessionAs(userID uuid.UUID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": userID.String(),
			"role":    role,
		})
		return c.Next()
	}
}

func TestGetMyEvents_FullLifecycle(t *testing.T) {
	h, db := setupEventsTest(t)
	ctx := context.Background()

	dealer := &domain.User{Username: "dealer1", Role: constants.Dealer, UpiID: "d@upi", PasswordHash: "x"}
	require.NoError(t, db.Create(dealer).Error)
	customer := &domain.User{Username: "customer1", Role: constants.Customer, UpiID: "c@upi", PasswordHash: "x"}
	require.NoError(t, db.Create(customer).Error)

	ls := &listsvc.Service{DB: db}
	listing, err := ls.CreateListing(ctx, listsvc.CreateListingInput{
		DealerID: dealer.UserID, CarName: "Civic", Brand: "Honda", Year: 2019,
		ListingType: domain.ListingSell, Price: 800000,
	})
	require.NoError(t, err)

	rs := &reqsvc.Service{DB: db}
	request, err := rs.CreateRequest(ctx, customer.UserID, listing.ListingID, domain.RequestBuy)
	require.NoError(t, err)
	_, err = rs.Respond(ctx, dealer.UserID, request.RequestID, true)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(sessionAs(dealer.UserID, constants.Dealer))
	app.Get("/get-my-events", h.GetMyEvents)

	resp, err := app.Test(httptest.NewRequest("GET", "/get-my-events", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data := result["data"].([]interface{})
	require.Len(t, data, 3)

	types := map[string]bool{}
	for _, e := range data {
		types[e.(map[string]interface{})["event_type"].(string)] = true
	}
	assert.True(t, types[domain.EventCreated])
	assert.True(t, types[domain.EventRequested])
	assert.True(t, types[domain.EventAccepted])
}

func TestGetMyEvents_OnlyOwnListings(t *testing.T) {
	h, db := setupEventsTest(t)

	dealer := &domain.User{Username: "dealer1", Role: constants.Dealer, UpiID: "d@upi", PasswordHash: "x"}
	require.NoError(t, db.Create(dealer).Error)
	other := &domain.User{Username: "dealer2", Role: constants.Dealer, UpiID: "o@upi", PasswordHash: "x"}
	require.NoError(t, db.Create(other).Error)

	listing := &domain.Listing{DealerID: other.UserID, CarName: "Swift", Brand: "Maruti", Year: 2021, ListingType: domain.ListingRent, Price: 1200}
	require.NoError(t, db.Create(listing).Error)
	require.NoError(t, db.Create(&domain.ListingEvent{ListingID: listing.ListingID, EventType: domain.EventCreated}).Error)

	app := fiber.New()
	app.Use(sessionAs(dealer.UserID, constants.Dealer))
	app.Get("/get-my-events", h.GetMyEvents)

	resp, err := app.Test(httptest.NewRequest("GET", "/get-my-events", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data, _ := result["data"].([]interface{})
	assert.Len(t, data, 0)
}
