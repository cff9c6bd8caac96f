package store

import (
	"time"
)

// Conversation is one chat thread with the assistant
type Conversation struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Title        string    `json:"title"`
	Model        string    `json:"model"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Messages []ChatMessage `json:"messages,omitempty" gorm:"foreignKey:ConversationID"`
}

// ChatMessage is a single turn in a conversation
type ChatMessage struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	ConversationID string    `gorm:"index:idx_conv_created" json:"conversation_id"`
	Role           string    `json:"role"` // user, assistant
	Content        string    `json:"content" gorm:"type:text"`
	Fallback       bool      `json:"fallback"` // true when the static failure text was substituted
	LatencyMs      int       `json:"latency_ms"`
	CreatedAt      time.Time `gorm:"index:idx_conv_created" json:"created_at"`
}

// Profile is the user's identity card data (single user, self-hosted)
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"-"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
