package listingevents

import (
	"errors"

	eventsvc "automind-backend/internal/application/listingevents"
	"automind-backend/internal/middleware"
	"automind-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *eventsvc.Service
}

func actorID(c *fiber.Ctx) (uuid.UUID, error) {
	user, ok := middleware.GetUser(c).(map[string]interface{})
	if !ok {
		return uuid.Nil, errors.New("not authenticated")
	}
	idStr, _ := user["user_id"].(string)
	return uuid.Parse(idStr)
}

// GET /api/v1/listing-events/get-my-events — audit feed for a dealer's listings
func (h *Handlers) GetMyEvents(c *fiber.Ctx) error {
	dealerID, err := actorID(c)
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	events, err := h.Service.GetDealerEvents(c.Context(), dealerID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listing events fetched successfully", events, nil)
}
