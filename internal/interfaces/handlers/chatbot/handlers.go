package chatbot

import (
	"strings"

	chatsvc "automind-backend/internal/application/chatbot"
	"automind-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *chatsvc.Service
}

// POST /api/v1/chat
func (h *Handlers) Chat(c *fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Message) == "" {
		return response.ErrorKind(c, "message is required", fiber.StatusBadRequest, response.KindValidationError)
	}

	reply, err := h.Service.Chat(c.Context(), body.Message)
	if err != nil {
		if err == chatsvc.ErrUnavailable {
			return response.Error(c, err.Error(), fiber.StatusServiceUnavailable, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Reply generated", fiber.Map{"reply": reply}, nil)
}
