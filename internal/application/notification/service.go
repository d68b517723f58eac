package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind classifies a notification for client-side rendering
type Kind string

const (
	KindAppointmentCreated   Kind = "appointment_created"
	KindAppointmentCancelled Kind = "appointment_cancelled"
	KindAppointmentReminder  Kind = "appointment_reminder"
	KindQuotationSent        Kind = "quotation_sent"
	KindCardAssigned         Kind = "card_assigned"
)

// Notification is a message addressed to one user
type Notification struct {
	ID        uuid.UUID              `json:"id"`
	UserID    uuid.UUID              `json:"user_id"`
	Kind      Kind                   `json:"kind"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

// Publisher pushes a notification to any live connection the user has.
// The websocket hub implements this; delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, n Notification)
}

// maxFeedSize bounds the per-user in-memory feed
const maxFeedSize = 100

// Service fans notifications out to connected clients and keeps a bounded
// in-memory feed per user so the bell menu survives a page reload.
type Service struct {
	mu        sync.RWMutex
	feeds     map[uuid.UUID][]Notification
	publisher Publisher
	logger    *zap.Logger
}

// NewService creates a notification service. The publisher may be nil, in
// which case notifications are only kept in the feed.
func NewService(publisher Publisher, logger *zap.Logger) *Service {
	return &Service{
		feeds:     make(map[uuid.UUID][]Notification),
		publisher: publisher,
		logger:    logger,
	}
}

// Notify records a notification for the user and pushes it to live connections
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, kind Kind, title, message string, data map[string]interface{}) Notification {
	n := Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	feed := append(s.feeds[userID], n)
	if len(feed) > maxFeedSize {
		feed = feed[len(feed)-maxFeedSize:]
	}
	s.feeds[userID] = feed
	s.mu.Unlock()

	if s.publisher != nil {
		s.publisher.Publish(ctx, n)
	}

	s.logger.Debug("Notification dispatched",
		zap.String("user_id", userID.String()),
		zap.String("kind", string(kind)))
	return n
}

// NotifyMany sends the same notification to several users
func (s *Service) NotifyMany(ctx context.Context, userIDs []uuid.UUID, kind Kind, title, message string, data map[string]interface{}) {
	for _, id := range userIDs {
		s.Notify(ctx, id, kind, title, message, data)
	}
}

// List returns the user's feed, newest first
func (s *Service) List(userID uuid.UUID) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	feed := s.feeds[userID]
	out := make([]Notification, len(feed))
	for i, n := range feed {
		out[len(feed)-1-i] = n
	}
	return out
}

// UnreadCount returns the number of unread notifications for the user
func (s *Service) UnreadCount(userID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.feeds[userID] {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks a single notification as read
func (s *Service) MarkRead(userID, notificationID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	feed := s.feeds[userID]
	for i := range feed {
		if feed[i].ID == notificationID {
			feed[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead marks the user's entire feed as read
func (s *Service) MarkAllRead(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	feed := s.feeds[userID]
	for i := range feed {
		feed[i].Read = true
	}
}
