package models

import "time"

// NotificationType is the closed set of events that produce a notification
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

// Valid reports whether t is a known notification type
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationComment, NotificationFollow:
		return true
	}
	return false
}

// Notification is a durable record of a social event. Rows are created
// only as a side effect of like/comment/follow, never by a client call.
// Lifecycle: created(unread) -> read, or deleted from either state.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"index"` // recipient
	SenderID  uint             `json:"sender_id" gorm:"index"`
	PostID    *uint            `json:"post_id,omitempty"` // nil for follow events
	Type      NotificationType `json:"type" gorm:"type:varchar(20);index"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}

// SubscribeRequest registers a push endpoint descriptor for the caller
type SubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required"`
	Token    string `json:"token" validate:"required"`
}
