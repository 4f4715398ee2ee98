package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nailit-app/backend/internal/models"
	"github.com/nailit-app/backend/internal/repositories"
	"github.com/nailit-app/backend/pkg/push"
)

// Notifier records social-event notifications and delivers them to the
// recipient's push subscription. The database row is the durable record;
// push delivery is best-effort and never fails the triggering request.
type Notifier struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	registry      *push.Registry
	sender        push.Sender
}

// New creates a Notifier. sender may be nil when push is disabled.
func New(
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	registry *push.Registry,
	sender push.Sender,
) *Notifier {
	return &Notifier{
		notifications: notifRepo,
		users:         userRepo,
		registry:      registry,
		sender:        sender,
	}
}

// Message renders the display string for an event
func Message(kind models.NotificationType, senderUsername string) string {
	switch kind {
	case models.NotificationLike:
		return fmt.Sprintf("%s liked your post", senderUsername)
	case models.NotificationComment:
		return fmt.Sprintf("%s commented on your post", senderUsername)
	case models.NotificationFollow:
		return fmt.Sprintf("%s started following you", senderUsername)
	}
	return ""
}

// Build composes the notification row for an event. Returns nil when the
// sender is the recipient: self-events produce no notification at all.
func (n *Notifier) Build(kind models.NotificationType, senderID, recipientID uint, postID *uint) (*models.Notification, error) {
	if senderID == recipientID {
		return nil, nil
	}
	sender, err := n.users.GetUserByID(senderID)
	if err != nil {
		return nil, err
	}
	return &models.Notification{
		UserID:    recipientID,
		SenderID:  senderID,
		PostID:    postID,
		Type:      kind,
		Message:   Message(kind, sender.Username),
		CreatedAt: time.Now(),
	}, nil
}

// Record writes the notification row first, then pushes. Used on the
// like/comment paths where the row is not tied to another write.
func (n *Notifier) Record(kind models.NotificationType, senderID, recipientID uint, postID *uint) error {
	notification, err := n.Build(kind, senderID, recipientID, postID)
	if err != nil || notification == nil {
		return err
	}
	if err := n.notifications.CreateNotification(notification); err != nil {
		return err
	}
	n.Push(notification)
	return nil
}

// Push delivers a recorded notification to the recipient's subscription.
// Failures are logged and swallowed.
func (n *Notifier) Push(notification *models.Notification) {
	if notification == nil || n.sender == nil {
		return
	}
	sub, ok := n.registry.Get(notification.UserID)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := n.sender.Send(ctx, sub, "Nail It", notification.Message); err != nil {
		log.Printf("Push delivery to user %d failed: %v", notification.UserID, err)
	}
}
