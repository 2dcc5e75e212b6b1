package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a direct message between two users.
type Message struct {
	MessageID  uuid.UUID `gorm:"column:message_id;type:uuid;primaryKey" json:"message_id"`
	SenderID   uuid.UUID `gorm:"column:sender_id;type:uuid;not null;index" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"column:receiver_id;type:uuid;not null;index" json:"receiver_id"`
	Content    string    `gorm:"column:content;not null" json:"content"`
	CreatedAt  time.Time `gorm:"column:createdAt" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}

// BeforeCreate sets message_id if not already set.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	return nil
}
