package messages

import (
	"context"
	"errors"
	"strings"
	"time"

	"automind-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReceiverNotFound = errors.New("Receiver not found")
	ErrEmptyContent     = errors.New("Message content is required")
)

type Service struct {
	DB *gorm.DB
}

// Send stores a direct message. Content must be non-empty and the receiver
// must exist.
func (s *Service) Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	var receiver domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", receiverID).First(&receiver).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}
	m := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// MessageView is one conversation entry with both participants resolved.
type MessageView struct {
	MessageID        uuid.UUID `json:"message_id"`
	SenderID         uuid.UUID `json:"sender_id"`
	ReceiverID       uuid.UUID `json:"receiver_id"`
	Content          string    `json:"content"`
	CreatedAt        time.Time `json:"createdAt"`
	SenderUsername   string    `json:"sender_username"`
	SenderRole       string    `json:"sender_role"`
	SenderUpi        string    `json:"sender_upi"`
	ReceiverUsername string    `json:"receiver_username"`
	ReceiverRole     string    `json:"receiver_role"`
	ReceiverUpi      string    `json:"receiver_upi"`
}

// Conversation returns the full thread between two users, oldest first.
func (s *Service) Conversation(ctx context.Context, userID, otherID uuid.UUID) ([]MessageView, error) {
	var views []MessageView
	err := s.DB.WithContext(ctx).Model(&domain.Message{}).
		Select(`messages.*,
			su.username AS sender_username, su.role AS sender_role, su.upi_id AS sender_upi,
			ru.username AS receiver_username, ru.role AS receiver_role, ru.upi_id AS receiver_upi`).
		Joins("JOIN users su ON su.user_id = messages.sender_id").
		Joins("JOIN users ru ON ru.user_id = messages.receiver_id").
		Where("(messages.sender_id = ? AND messages.receiver_id = ?) OR (messages.sender_id = ? AND messages.receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order(`messages."createdAt" ASC`).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
