package push

import (
	"context"
	"fmt"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Subscription is an opaque browser/device push descriptor for one user.
type Subscription struct {
	Endpoint string `json:"endpoint"`
	Token    string `json:"token"`
}

// Sender delivers a notification to a single subscription. Delivery is
// best-effort everywhere; callers log and swallow errors.
type Sender interface {
	Send(ctx context.Context, sub Subscription, title, body string) error
}

// Registry holds push subscriptions in process memory keyed by user id.
// Last write wins; entries are replaced whole, never partially mutated.
// Subscriptions are lost on restart, which is the documented contract.
type Registry struct {
	mu   sync.RWMutex
	subs map[uint]Subscription
}

// NewRegistry creates an empty subscription registry
func NewRegistry() *Registry {
	return &Registry{subs: make(map[uint]Subscription)}
}

// Set registers or overwrites the subscription for a user
func (r *Registry) Set(userID uint, sub Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[userID] = sub
}

// Get returns the subscription for a user, if one is registered
func (r *Registry) Get(userID uint) (Subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[userID]
	return sub, ok
}

// FCMSender delivers notifications through Firebase Cloud Messaging
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender initializes the Firebase app and messaging client
func NewFCMSender(ctx context.Context, credentialsPath string) (*FCMSender, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase messaging client: %w", err)
	}

	return &FCMSender{client: client}, nil
}

func (s *FCMSender) Send(ctx context.Context, sub Subscription, title, body string) error {
	msg := &messaging.Message{
		Token: sub.Token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	_, err := s.client.Send(ctx, msg)
	return err
}
