package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/arklim/social-platform-trust/internal/core/domain"
)

// client is one authenticated realtime connection. Writes are serialized
// through a mutex so room broadcasts and request-scoped errors never
// interleave frames.
type client struct {
	id           string
	identity     *domain.Identity
	ws           *websocket.Conn
	writeTimeout time.Duration

	writeMu sync.Mutex
}

func newClient(id string, identity *domain.Identity, ws *websocket.Conn, writeTimeout time.Duration) *client {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &client{
		id:           id,
		identity:     identity,
		ws:           ws,
		writeTimeout: writeTimeout,
	}
}

// send writes one envelope with a bounded deadline. A slow or dead peer
// fails its own write; the caller decides whether to drop the connection.
func (c *client) send(ctx context.Context, env Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	writeCtx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	return wsjson.Write(writeCtx, c.ws, env)
}
