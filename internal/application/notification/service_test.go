package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturingPublisher struct {
	published []Notification
}

func (p *capturingPublisher) Publish(_ context.Context, n Notification) {
	p.published = append(p.published, n)
}

func TestNotifyPushesAndRecords(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewService(pub, zap.NewNop())
	user := uuid.New()

	n := svc.Notify(context.Background(), user, KindAppointmentCreated, "New appointment", "Intro call at 10:00", map[string]interface{}{"date": "2026-09-01"})

	require.Len(t, pub.published, 1)
	assert.Equal(t, n.ID, pub.published[0].ID)

	feed := svc.List(user)
	require.Len(t, feed, 1)
	assert.Equal(t, KindAppointmentCreated, feed[0].Kind)
	assert.False(t, feed[0].Read)
	assert.Equal(t, 1, svc.UnreadCount(user))
}

func TestListIsNewestFirst(t *testing.T) {
	svc := NewService(nil, zap.NewNop())
	user := uuid.New()

	for i := 0; i < 3; i++ {
		svc.Notify(context.Background(), user, KindAppointmentReminder, fmt.Sprintf("reminder %d", i), "", nil)
	}

	feed := svc.List(user)
	require.Len(t, feed, 3)
	assert.Equal(t, "reminder 2", feed[0].Title)
	assert.Equal(t, "reminder 0", feed[2].Title)
}

func TestFeedIsBounded(t *testing.T) {
	svc := NewService(nil, zap.NewNop())
	user := uuid.New()

	for i := 0; i < maxFeedSize+25; i++ {
		svc.Notify(context.Background(), user, KindAppointmentReminder, fmt.Sprintf("n%d", i), "", nil)
	}

	feed := svc.List(user)
	assert.Len(t, feed, maxFeedSize)
	// Oldest entries were evicted
	assert.Equal(t, fmt.Sprintf("n%d", maxFeedSize+24), feed[0].Title)
}

func TestMarkRead(t *testing.T) {
	svc := NewService(nil, zap.NewNop())
	user := uuid.New()

	n1 := svc.Notify(context.Background(), user, KindCardAssigned, "a", "", nil)
	svc.Notify(context.Background(), user, KindCardAssigned, "b", "", nil)

	assert.True(t, svc.MarkRead(user, n1.ID))
	assert.False(t, svc.MarkRead(user, uuid.New()))
	assert.Equal(t, 1, svc.UnreadCount(user))

	svc.MarkAllRead(user)
	assert.Equal(t, 0, svc.UnreadCount(user))
}

func TestFeedsAreIsolatedPerUser(t *testing.T) {
	svc := NewService(nil, zap.NewNop())
	alice := uuid.New()
	bob := uuid.New()

	svc.Notify(context.Background(), alice, KindQuotationSent, "q", "", nil)

	assert.Len(t, svc.List(alice), 1)
	assert.Empty(t, svc.List(bob))
}
