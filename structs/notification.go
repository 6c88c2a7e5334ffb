package structs

import "time"

// NotificationType is the severity of a notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationWarning NotificationType = "WARNING"
	NotificationError   NotificationType = "ERROR"
)

type Notification struct {
	ID         string           `json:"id"`
	UserID     string           `json:"userId"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Type       NotificationType `json:"type"`
	Read       bool             `json:"read"`
	ReadAt     *time.Time       `json:"readAt"`
	EntityType *string          `json:"entityType"` // Task | Team
	EntityID   *string          `json:"entityId"`
	Metadata   map[string]any   `json:"metadata"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// UnreadCount is the payload of GET /notifications/unread-count.
type UnreadCount struct {
	Count int `json:"count"`
}
