// internal/domain/notification/entity.go
package notification

import "time"

// Notification types
const (
	TypeEmail = "EMAIL"
	TypeSMS   = "SMS"
	TypePush  = "PUSH"
)

// Notification is a message addressed to a user
type Notification struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	UserID    string     `gorm:"not null;size:64;index" json:"user_id"`
	Type      string     `gorm:"size:20;not null" json:"type"`
	Subject   string     `gorm:"size:255" json:"subject"`
	Content   string     `gorm:"type:text" json:"content"`
	Sent      bool       `gorm:"default:false;index" json:"sent"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

// TableName overrides the table name
func (Notification) TableName() string {
	return "notifications"
}
