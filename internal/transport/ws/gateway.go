package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-trust/internal/core/domain"
	"github.com/arklim/social-platform-trust/internal/core/port"
	"github.com/arklim/social-platform-trust/internal/infra/config"
	"github.com/arklim/social-platform-trust/internal/infra/security"
	"github.com/arklim/social-platform-trust/internal/usecase"
)

// Gateway upgrades authenticated clients to websocket connections and runs
// the room-scoped chat protocol over them. The handshake reuses the exact
// session verification the HTTP middleware applies; an unverified credential
// is refused with a plain 401 before the upgrade.
type Gateway struct {
	sessions   *usecase.SessionService
	users      port.UserRepository
	events     port.EventRepository
	messages   port.MessageRepository
	publisher  port.EventPublisher
	registry   *registry
	cfg        config.GatewaySettings
	sessionCfg config.SessionSettings
	logger     *zap.Logger
}

// NewGateway wires the realtime gateway.
func NewGateway(
	sessions *usecase.SessionService,
	users port.UserRepository,
	events port.EventRepository,
	messages port.MessageRepository,
	publisher port.EventPublisher,
	cfg config.GatewaySettings,
	sessionCfg config.SessionSettings,
	logger *zap.Logger,
) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gateway{
		sessions:   sessions,
		users:      users,
		events:     events,
		messages:   messages,
		publisher:  publisher,
		registry:   newRegistry(),
		cfg:        cfg,
		sessionCfg: sessionCfg,
		logger:     logger,
	}
}

// ServeHTTP performs the authenticated handshake and runs the connection's
// read loop until the peer goes away.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := security.ParseCookies(r.Header.Get("Cookie"))[g.sessionCfg.CookieName]

	identity, err := g.sessions.Verify(raw)
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	// The credential can outlive the account. Refuse subjects that no
	// longer exist; a lookup failure refuses too.
	if g.users != nil {
		exists, err := g.users.Exists(r.Context(), identity.SubjectID)
		if err != nil {
			g.logger.Warn("subject lookup failed on handshake",
				zap.String("subject_id", identity.SubjectID),
				zap.Error(err),
			)
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !exists {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
	}

	opts := &websocket.AcceptOptions{}
	if len(g.cfg.AllowedOrigins) > 0 {
		opts.OriginPatterns = g.cfg.AllowedOrigins
	}

	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		g.logger.Debug("websocket accept failed", zap.Error(err))
		return
	}

	c := newClient(uuid.NewString(), identity, conn, g.cfg.WriteTimeout)

	g.logger.Info("realtime connection opened",
		zap.String("connection_id", c.id),
		zap.String("subject_id", identity.SubjectID),
	)

	g.serve(r.Context(), c)
}

func (g *Gateway) serve(ctx context.Context, c *client) {
	defer func() {
		g.registry.leaveAll(c)
		_ = c.ws.Close(websocket.StatusNormalClosure, "closed")
		g.logger.Info("realtime connection closed", zap.String("connection_id", c.id))
	}()

	for {
		var env Envelope
		if err := wsjson.Read(ctx, c.ws, &env); err != nil {
			return
		}

		switch env.Event {
		case EventJoinRoom:
			g.handleJoin(ctx, c, env.Data)
		case EventSendMessage:
			g.handleSend(ctx, c, env.Data)
		default:
			g.sendError(ctx, c, "unknown event")
		}
	}
}

// handleJoin adds the client to the room and replays recent history to the
// joiner only. The replay is delivered oldest-first so clients append in
// display order.
func (g *Gateway) handleJoin(ctx context.Context, c *client, data json.RawMessage) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil || strings.TrimSpace(payload.EventID) == "" {
		g.sendError(ctx, c, "eventId is required")
		return
	}

	exists, err := g.events.Exists(ctx, payload.EventID)
	if err != nil {
		g.logger.Warn("event lookup failed on join",
			zap.String("event_id", payload.EventID),
			zap.Error(err),
		)
		g.sendError(ctx, c, "could not join room")
		return
	}
	if !exists {
		g.sendError(ctx, c, "event not found")
		return
	}

	g.registry.join(payload.EventID, c)

	limit := g.cfg.HistoryLimit
	if limit <= 0 {
		limit = 50
	}

	history, err := g.messages.ListRecent(ctx, payload.EventID, limit)
	if err != nil {
		g.logger.Warn("history replay failed",
			zap.String("event_id", payload.EventID),
			zap.Error(err),
		)
		g.sendError(ctx, c, "could not load history")
		return
	}

	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	env, err := newEnvelope(EventRecentMessages, history)
	if err != nil {
		g.sendError(ctx, c, "could not load history")
		return
	}
	if err := c.send(ctx, env); err != nil {
		return
	}

	if g.publisher != nil {
		evt := domain.ChatRoomJoinedEvent{
			EventID:   uuid.NewString(),
			RoomID:    payload.EventID,
			SubjectID: c.identity.SubjectID,
			JoinedAt:  time.Now().UTC(),
		}
		if err := g.publisher.PublishChatRoomJoined(ctx, evt); err != nil && !errors.Is(err, context.Canceled) {
			g.logger.Warn("publish room joined failed", zap.Error(err))
		}
	}
}

// handleSend persists the message and broadcasts it to the room. The room
// mutex is held across persist and broadcast; two racing senders therefore
// reach every member in the same storage order.
func (g *Gateway) handleSend(ctx context.Context, c *client, data json.RawMessage) {
	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.sendError(ctx, c, "malformed payload")
		return
	}

	content := strings.TrimSpace(payload.Content)
	if payload.EventID == "" || content == "" {
		g.sendError(ctx, c, "eventId and content are required")
		return
	}
	if max := g.cfg.MaxMessageLength; max > 0 && len(content) > max {
		g.sendError(ctx, c, "message too long")
		return
	}

	exists, err := g.events.Exists(ctx, payload.EventID)
	if err != nil {
		g.logger.Warn("event lookup failed on send",
			zap.String("event_id", payload.EventID),
			zap.Error(err),
		)
		g.sendError(ctx, c, "could not send message")
		return
	}
	if !exists {
		g.sendError(ctx, c, "event not found")
		return
	}

	r := g.registry.get(payload.EventID)

	r.mu.Lock()
	message, err := g.messages.Create(ctx, payload.EventID, c.identity.SubjectID, content)
	if err != nil {
		r.mu.Unlock()
		g.logger.Error("message persist failed",
			zap.String("event_id", payload.EventID),
			zap.Error(err),
		)
		g.sendError(ctx, c, "could not send message")
		return
	}

	env, envErr := newEnvelope(EventNewMessage, message)
	if envErr == nil {
		for member := range r.members {
			if err := member.send(ctx, env); err != nil {
				g.logger.Debug("broadcast write failed",
					zap.String("connection_id", member.id),
					zap.Error(err),
				)
			}
		}
	}
	r.mu.Unlock()

	if g.publisher != nil {
		evt := domain.ChatMessageCreatedEvent{
			EventID:   uuid.NewString(),
			MessageID: message.ID,
			RoomID:    message.EventID,
			AuthorID:  message.AuthorID,
			CreatedAt: message.CreatedAt,
		}
		if err := g.publisher.PublishChatMessageCreated(ctx, evt); err != nil && !errors.Is(err, context.Canceled) {
			g.logger.Warn("publish message created failed", zap.Error(err))
		}
	}
}

func (g *Gateway) sendError(ctx context.Context, c *client, message string) {
	if err := c.send(ctx, errorEnvelope(message)); err != nil {
		g.logger.Debug("error write failed",
			zap.String("connection_id", c.id),
			zap.Error(err),
		)
	}
}
