// Package tcp provides the TCP transport for the chat client.
package tcp

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
)

// Conn adapts net.Conn to transport.Conn with newline framing.
type Conn struct {
	conn   net.Conn
	reader *bufio.Reader
	mu     sync.Mutex
}

// Dial connects to the server at address ("host:port").
func Dial(address string) (*Conn, error) {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	return NewConn(conn), nil
}

// NewConn wraps an established net.Conn.
func NewConn(conn net.Conn) *Conn {
	return &Conn{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

// SendLine implements transport.Conn. The mutex keeps concurrent senders
// from interleaving partial lines.
func (c *Conn) SendLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("failed to send line: %w", err)
	}
	return nil
}

// RecvLine implements transport.Conn.
func (c *Conn) RecvLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close implements transport.Conn.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// RemoteAddr implements transport.Conn.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
