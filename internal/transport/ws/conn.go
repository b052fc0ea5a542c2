// Package ws provides the WebSocket transport for the chat client using gobwas/ws.
//
// Frames carry the same newline-terminated lines as the TCP transport, for
// deployments where the chat server sits behind a WebSocket proxy.
package ws

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// Conn adapts a WebSocket connection to transport.Conn.
type Conn struct {
	conn    net.Conn
	writeMu sync.Mutex

	readMu  sync.Mutex
	pending []string
}

// Dial connects to the server at url (e.g. "ws://127.0.0.1:7777/").
func Dial(ctx context.Context, url string) (*Conn, error) {
	conn, _, _, err := ws.Dial(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	return NewConn(conn), nil
}

// NewConn wraps an established client-side WebSocket connection.
func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn}
}

// SendLine implements transport.Conn. Each line travels in its own text frame.
func (c *Conn) SendLine(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := wsutil.WriteClientText(c.conn, []byte(line+"\n")); err != nil {
		return fmt.Errorf("failed to send line: %w", err)
	}
	return nil
}

// RecvLine implements transport.Conn. A single frame may carry several
// lines; surplus lines are buffered for subsequent calls.
func (c *Conn) RecvLine() (string, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	for len(c.pending) == 0 {
		data, err := wsutil.ReadServerText(c.conn)
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimRight(line, "\r")
			if line != "" {
				c.pending = append(c.pending, line)
			}
		}
	}

	line := c.pending[0]
	c.pending = c.pending[1:]
	return line, nil
}

// Close implements transport.Conn.
func (c *Conn) Close() error {
	_ = wsutil.WriteClientMessage(c.conn, ws.OpClose, nil)
	return c.conn.Close()
}

// RemoteAddr implements transport.Conn.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
