package messages

import (
	"errors"

	msgsvc "automind-backend/internal/application/messages"
	"automind-backend/internal/middleware"
	"automind-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *msgsvc.Service
}

func actorID(c *fiber.Ctx) (uuid.UUID, error) {
	user, ok := middleware.GetUser(c).(map[string]interface{})
	if !ok {
		return uuid.Nil, errors.New("not authenticated")
	}
	idStr, _ := user["user_id"].(string)
	return uuid.Parse(idStr)
}

// POST /api/v1/messages/send
func (h *Handlers) Send(c *fiber.Ctx) error {
	senderID, err := actorID(c)
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	var body struct {
		ReceiverID string `json:"receiver_id"`
		Content    string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil || body.ReceiverID == "" {
		return response.ErrorKind(c, "receiver_id and content are required", fiber.StatusBadRequest, response.KindValidationError)
	}
	receiverID, err := uuid.Parse(body.ReceiverID)
	if err != nil {
		return response.ErrorKind(c, "Invalid receiver_id format", fiber.StatusBadRequest, response.KindValidationError)
	}

	msg, err := h.Service.Send(c.Context(), senderID, receiverID, body.Content)
	if err != nil {
		switch err {
		case msgsvc.ErrReceiverNotFound:
			return response.ErrorKind(c, err.Error(), fiber.StatusNotFound, response.KindNotFound)
		case msgsvc.ErrEmptyContent:
			return response.ErrorKind(c, err.Error(), fiber.StatusBadRequest, response.KindValidationError)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Message sent", msg, nil)
}

// GET /api/v1/messages/conversation?user_id=
func (h *Handlers) Conversation(c *fiber.Ctx) error {
	userID, err := actorID(c)
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	otherStr := c.Query("user_id")
	if otherStr == "" {
		return response.ErrorKind(c, "user_id is required", fiber.StatusBadRequest, response.KindValidationError)
	}
	otherID, err := uuid.Parse(otherStr)
	if err != nil {
		return response.ErrorKind(c, "Invalid user_id format", fiber.StatusBadRequest, response.KindValidationError)
	}
	msgs, err := h.Service.Conversation(c.Context(), userID, otherID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Conversation fetched successfully", msgs, nil)
}
