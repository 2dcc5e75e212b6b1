package requests

import (
	"errors"

	reqsvc "automind-backend/internal/application/requests"
	"automind-backend/internal/domain"
	"automind-backend/internal/middleware"
	"automind-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *reqsvc.Service
}

func actorID(c *fiber.Ctx) (uuid.UUID, error) {
	user, ok := middleware.GetUser(c).(map[string]interface{})
	if !ok {
		return uuid.Nil, errors.New("not authenticated")
	}
	idStr, _ := user["user_id"].(string)
	return uuid.Parse(idStr)
}

// createStatus maps request-creation errors to HTTP status and kind.
var createStatus = map[error]struct {
	Code int
	Kind string
}{
	reqsvc.ErrListingNotFound:  {fiber.StatusNotFound, response.KindNotFound},
	reqsvc.ErrDuplicatePending: {fiber.StatusConflict, response.KindDuplicatePending},
	reqsvc.ErrKindMismatch:     {fiber.StatusBadRequest, response.KindKindMismatch},
	reqsvc.ErrSelfRequest:      {fiber.StatusForbidden, response.KindForbidden},
}

// POST /api/v1/requests/create-request — customer requests a listing
func (h *Handlers) CreateRequest(c *fiber.Ctx) error {
	customerID, err := actorID(c)
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	var body struct {
		ListingID   string `json:"listing_id"`
		RequestType string `json:"request_type"`
	}
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" || body.RequestType == "" {
		return response.ErrorKind(c, "listing_id and request_type are required", fiber.StatusBadRequest, response.KindValidationError)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.ErrorKind(c, "Invalid listing_id format", fiber.StatusBadRequest, response.KindValidationError)
	}
	if body.RequestType != domain.RequestBuy && body.RequestType != domain.RequestRent {
		return response.ErrorKind(c, "request_type must be Buy or Rent", fiber.StatusBadRequest, response.KindValidationError)
	}

	req, err := h.Service.CreateRequest(c.Context(), customerID, listingID, body.RequestType)
	if err != nil {
		if m, ok := createStatus[err]; ok {
			return response.ErrorKind(c, err.Error(), m.Code, m.Kind)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Request submitted successfully", req, nil)
}

// GET /api/v1/requests/get-requests — dealer inbox, optional ?status= filter
func (h *Handlers) GetRequests(c *fiber.Ctx) error {
	dealerID, err := actorID(c)
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	status := c.Query("status")
	if status != "" && status != domain.StatusPending && status != domain.StatusAccepted && status != domain.StatusRejected {
		return response.ErrorKind(c, "Invalid status filter", fiber.StatusBadRequest, response.KindValidationError)
	}
	views, err := h.Service.GetDealerRequests(c.Context(), dealerID, status)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Requests fetched successfully", views, nil)
}

// GET /api/v1/requests/accepted-history — dealer's accepted requests
func (h *Handlers) AcceptedHistory(c *fiber.Ctx) error {
	dealerID, err := actorID(c)
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	views, err := h.Service.GetDealerRequests(c.Context(), dealerID, domain.StatusAccepted)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Accepted requests fetched successfully", views, nil)
}

// POST /api/v1/requests/respond — accept or reject a pending request
func (h *Handlers) Respond(c *fiber.Ctx) error {
	dealerID, err := actorID(c)
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	var body struct {
		RequestID string `json:"request_id"`
		Decision  string `json:"decision"`
	}
	if err := c.BodyParser(&body); err != nil || body.RequestID == "" || body.Decision == "" {
		return response.ErrorKind(c, "request_id and decision are required", fiber.StatusBadRequest, response.KindValidationError)
	}
	requestID, err := uuid.Parse(body.RequestID)
	if err != nil {
		return response.ErrorKind(c, "Invalid request_id format", fiber.StatusBadRequest, response.KindValidationError)
	}
	if body.Decision != "accept" && body.Decision != "reject" {
		return response.ErrorKind(c, "decision must be accept or reject", fiber.StatusBadRequest, response.KindValidationError)
	}

	req, err := h.Service.Respond(c.Context(), dealerID, requestID, body.Decision == "accept")
	if err != nil {
		switch err {
		case reqsvc.ErrRequestNotFound:
			return response.ErrorKind(c, err.Error(), fiber.StatusNotFound, response.KindNotFound)
		case reqsvc.ErrForbidden:
			return response.ErrorKind(c, err.Error(), fiber.StatusForbidden, response.KindForbidden)
		case reqsvc.ErrInvalidTransition:
			return response.ErrorKind(c, err.Error(), fiber.StatusConflict, response.KindInvalidTransition)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Request "+req.Status, req, nil)
}
