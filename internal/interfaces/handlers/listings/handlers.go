package listings

import (
	"errors"

	listsvc "automind-backend/internal/application/listings"
	"automind-backend/internal/middleware"
	"automind-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *listsvc.Service
}

// actorID resolves the caller's user id from the session.
func actorID(c *fiber.Ctx) (uuid.UUID, error) {
	user, ok := middleware.GetUser(c).(map[string]interface{})
	if !ok {
		return uuid.Nil, errors.New("not authenticated")
	}
	idStr, _ := user["user_id"].(string)
	return uuid.Parse(idStr)
}

// POST /api/v1/listings/create-listing — 201 with { success, message, data }
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	dealerID, err := actorID(c)
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	var body struct {
		CarName     string  `json:"car_name"`
		Brand       string  `json:"brand"`
		Year        int     `json:"year"`
		ListingType string  `json:"listing_type"`
		Price       float64 `json:"price"`
		PhotoURL    string  `json:"photo_url"`
		Description string  `json:"description"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.ErrorKind(c, "Invalid request body", fiber.StatusBadRequest, response.KindValidationError)
	}

	listing, err := h.Service.CreateListing(c.Context(), listsvc.CreateListingInput{
		DealerID:    dealerID,
		CarName:     body.CarName,
		Brand:       body.Brand,
		Year:        body.Year,
		ListingType: body.ListingType,
		Price:       body.Price,
		PhotoURL:    body.PhotoURL,
		Description: body.Description,
	})
	if err != nil {
		switch err {
		case listsvc.ErrMissingCarFields, listsvc.ErrInvalidYear,
			listsvc.ErrInvalidListingType, listsvc.ErrInvalidPrice:
			return response.ErrorKind(c, err.Error(), fiber.StatusBadRequest, response.KindValidationError)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// GET /api/v1/listings/get-all-listings — marketplace view for all roles
func (h *Handlers) GetAllListings(c *fiber.Ctx) error {
	listings, err := h.Service.GetAllListings(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listings fetched successfully", listings, nil)
}

// GET /api/v1/listings/get-my-listings — dealer's own listings with pending counts
func (h *Handlers) GetMyListings(c *fiber.Ctx) error {
	dealerID, err := actorID(c)
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	listings, err := h.Service.GetDealerListings(c.Context(), dealerID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Dealer listings fetched successfully", listings, nil)
}

// POST /api/v1/listings/delete-listing — owner only, cascades requests and events
func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	dealerID, err := actorID(c)
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	var body struct {
		ListingID string `json:"listing_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return response.ErrorKind(c, "listing_id is required", fiber.StatusBadRequest, response.KindValidationError)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.ErrorKind(c, "Invalid listing_id format", fiber.StatusBadRequest, response.KindValidationError)
	}

	if err := h.Service.DeleteListing(c.Context(), dealerID, listingID); err != nil {
		switch err {
		case listsvc.ErrListingNotFound:
			return response.ErrorKind(c, err.Error(), fiber.StatusNotFound, response.KindNotFound)
		case listsvc.ErrForbidden:
			return response.ErrorKind(c, err.Error(), fiber.StatusForbidden, response.KindForbidden)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Listing deleted successfully", nil, nil)
}
