package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/application/notification"
	"github.com/OpianKyle/opianrer-sub001/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Frame is the envelope for every message on the presence socket
type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Wire frame types. Clients send join and heartbeat; everything else is
// pushed by the server.
const (
	FrameJoin                    = "join"
	FrameHeartbeat               = "heartbeat"
	FrameHeartbeatAck            = "heartbeat_ack"
	FramePresenceState           = "presence_state"
	FramePresenceUpdate          = "presence_update"
	FrameAppointmentNotification = "appointment_notification"
	FrameError                   = "error"
)

// PresenceUpdate tells clients a user went online or offline
type PresenceUpdate struct {
	UserID uuid.UUID `json:"user_id"`
	Online bool      `json:"online"`
}

// PresenceState is the full roster sent to a freshly connected client
type PresenceState struct {
	Online []uuid.UUID `json:"online"`
}

// peer is one live websocket connection
type peer struct {
	userID uuid.UUID

	mu  sync.Mutex
	enc *json.Encoder
}

func (p *peer) writeFrame(f Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enc.Encode(f)
}

// Hub tracks which users have live connections and fans out presence
// updates and notifications. A user is online while at least one of
// their connections has heartbeated recently.
type Hub struct {
	mu       sync.Mutex
	peers    map[uuid.UUID]map[*peer]struct{}
	lastSeen map[uuid.UUID]time.Time

	cfg    config.PresenceConfig
	logger *zap.Logger
	stop   chan struct{}
	once   sync.Once
}

// NewHub creates a presence hub and starts its offline reaper
func NewHub(cfg config.PresenceConfig, logger *zap.Logger) *Hub {
	h := &Hub{
		peers:    make(map[uuid.UUID]map[*peer]struct{}),
		lastSeen: make(map[uuid.UUID]time.Time),
		cfg:      cfg,
		logger:   logger,
		stop:     make(chan struct{}),
	}
	go h.reap()
	return h
}

// Close stops the offline reaper
func (h *Hub) Close() {
	h.once.Do(func() { close(h.stop) })
}

// Online returns the users currently considered online
func (h *Hub) Online() []uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.onlineLocked()
}

func (h *Hub) onlineLocked() []uuid.UUID {
	online := make([]uuid.UUID, 0, len(h.peers))
	for userID := range h.peers {
		online = append(online, userID)
	}
	return online
}

// join registers a connection and broadcasts the user coming online.
// The new peer receives the current roster first.
func (h *Hub) join(p *peer) {
	h.mu.Lock()
	_, wasOnline := h.peers[p.userID]
	if h.peers[p.userID] == nil {
		h.peers[p.userID] = make(map[*peer]struct{})
	}
	h.peers[p.userID][p] = struct{}{}
	h.lastSeen[p.userID] = time.Now()
	roster := h.onlineLocked()
	h.mu.Unlock()

	_ = p.writeFrame(Frame{Type: FramePresenceState, Payload: mustJSON(PresenceState{Online: roster})})

	if !wasOnline {
		h.broadcast(Frame{Type: FramePresenceUpdate, Payload: mustJSON(PresenceUpdate{UserID: p.userID, Online: true})})
		h.logger.Debug("User online", zap.String("user_id", p.userID.String()))
	}
}

// leave unregisters a connection and broadcasts the user going offline
// when it was their last one.
func (h *Hub) leave(p *peer) {
	h.mu.Lock()
	delete(h.peers[p.userID], p)
	wentOffline := len(h.peers[p.userID]) == 0
	if wentOffline {
		delete(h.peers, p.userID)
		delete(h.lastSeen, p.userID)
	}
	h.mu.Unlock()

	if wentOffline {
		h.broadcast(Frame{Type: FramePresenceUpdate, Payload: mustJSON(PresenceUpdate{UserID: p.userID, Online: false})})
		h.logger.Debug("User offline", zap.String("user_id", p.userID.String()))
	}
}

// heartbeat refreshes the user's liveness window
func (h *Hub) heartbeat(userID uuid.UUID) {
	h.mu.Lock()
	if _, ok := h.peers[userID]; ok {
		h.lastSeen[userID] = time.Now()
	}
	h.mu.Unlock()
}

// reap drops users whose connections went silent past the configured
// window. Closing a laptop lid rarely closes the TCP connection.
func (h *Hub) reap() {
	ticker := time.NewTicker(h.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			h.reapSilent(time.Now())
		}
	}
}

func (h *Hub) reapSilent(now time.Time) {
	h.mu.Lock()
	var silent []uuid.UUID
	for userID, seen := range h.lastSeen {
		if now.Sub(seen) > h.cfg.OfflineAfter {
			silent = append(silent, userID)
		}
	}
	for _, userID := range silent {
		delete(h.peers, userID)
		delete(h.lastSeen, userID)
	}
	h.mu.Unlock()

	for _, userID := range silent {
		h.broadcast(Frame{Type: FramePresenceUpdate, Payload: mustJSON(PresenceUpdate{UserID: userID, Online: false})})
		h.logger.Debug("User reaped as offline", zap.String("user_id", userID.String()))
	}
}

// broadcast sends a frame to every connected peer
func (h *Hub) broadcast(f Frame) {
	h.mu.Lock()
	var targets []*peer
	for _, conns := range h.peers {
		for p := range conns {
			targets = append(targets, p)
		}
	}
	h.mu.Unlock()

	for _, p := range targets {
		_ = p.writeFrame(f)
	}
}

// Publish delivers a notification to the addressed user's live
// connections. Delivery is best effort; the in-memory feed is the
// durable side of the notification service.
func (h *Hub) Publish(ctx context.Context, n notification.Notification) {
	h.mu.Lock()
	var targets []*peer
	for p := range h.peers[n.UserID] {
		targets = append(targets, p)
	}
	h.mu.Unlock()

	frame := Frame{Type: FrameAppointmentNotification, Payload: mustJSON(n)}
	for _, p := range targets {
		_ = p.writeFrame(frame)
	}
}

func mustJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

// Ensure Hub implements Publisher
var _ notification.Publisher = (*Hub)(nil)
