package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrUnavailable = errors.New("Chatbot service is currently unavailable")

// Service wraps the user message in the automotive-assistant prompt and
// delegates to the configured Responder.
type Service struct {
	Responder Responder
}

const promptTemplate = `You are an AI assistant for AutoMind, a car price prediction platform.
You help users with car-related questions, pricing information, vehicle specifications,
buying and selling advice, car maintenance tips, and general automotive knowledge.

User's question: %s

Please provide a helpful, accurate, and detailed response. If the question is about car pricing,
you can mention that AutoMind provides AI-powered price predictions. Keep your response
conversational and informative.`

// Chat answers one user message. An unconfigured responder yields
// ErrUnavailable, not a fault.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("Please provide a message")
	}
	if s.Responder == nil {
		return "", ErrUnavailable
	}
	return s.Responder.Generate(ctx, fmt.Sprintf(promptTemplate, message))
}
