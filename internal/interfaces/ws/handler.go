package ws

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

// Handler upgrades /ws requests and feeds connections into the hub
type Handler struct {
	hub        *Hub
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewHandler creates a presence websocket handler
func NewHandler(hub *Hub, jwtService *auth.JWTService, logger *zap.Logger) *Handler {
	return &Handler{
		hub:        hub,
		jwtService: jwtService,
		logger:     logger,
	}
}

// ServeHTTP authenticates the request and hands the connection to the
// hub. Browsers cannot set headers on websocket dials, so the access
// token is also accepted as a query parameter.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := tokenFromRequest(r)
	if token == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	claims, err := h.jwtService.ValidateAccessToken(token)
	if err != nil {
		h.logger.Debug("Websocket auth rejected", zap.Error(err))
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	websocket.Handler(func(conn *websocket.Conn) {
		h.serve(conn, userID)
	}).ServeHTTP(w, r)
}

// serve runs one connection's read loop until it closes
func (h *Handler) serve(conn *websocket.Conn, userID uuid.UUID) {
	defer conn.Close()

	// The HTTP server's read/write timeouts would otherwise apply to
	// this hijacked connection and cut it off mid-session.
	_ = conn.SetDeadline(time.Time{})

	p := &peer{
		userID: userID,
		enc:    json.NewEncoder(conn),
	}
	h.hub.join(p)
	defer h.hub.leave(p)

	decoder := json.NewDecoder(conn)
	for {
		var frame Frame
		if err := decoder.Decode(&frame); err != nil {
			if !errors.Is(err, io.EOF) {
				h.logger.Debug("Websocket read failed",
					zap.String("user_id", userID.String()),
					zap.Error(err))
			}
			return
		}

		switch frame.Type {
		case FrameJoin:
			// The connection is already registered, so an explicit join
			// just refreshes liveness and resends the roster.
			h.hub.heartbeat(userID)
			_ = p.writeFrame(Frame{Type: FramePresenceState, Payload: mustJSON(PresenceState{Online: h.hub.Online()})})
		case FrameHeartbeat:
			h.hub.heartbeat(userID)
			_ = p.writeFrame(Frame{Type: FrameHeartbeatAck})
		default:
			_ = p.writeFrame(Frame{Type: FrameError, Payload: mustJSON(map[string]string{
				"code":    "INVALID_ARGUMENT",
				"message": "unsupported frame type",
			})})
		}
	}
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
