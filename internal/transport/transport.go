// Package transport provides the line-oriented connection to the chat server.
package transport

// Conn abstracts a bidirectional line stream for both TCP and WebSocket.
// This interface isolates transport details from the session logic.
type Conn interface {
	// SendLine appends a newline and writes the line. Implementations
	// serialize writes so tokens of one command cannot interleave with
	// another.
	SendLine(line string) error

	// RecvLine blocks until one complete line arrives, with the trailing
	// newline stripped. Returns io.EOF when the peer closes.
	RecvLine() (string, error)

	// Close closes the connection.
	Close() error

	// RemoteAddr returns the server address for logging.
	RemoteAddr() string
}
