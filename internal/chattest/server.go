// Package chattest provides a scripted chat server for end-to-end tests.
//
// The server records every line a client sends and answers from a script:
// each known request line maps to zero or more reply lines. Tests can also
// push unsolicited lines, which is how server-initiated events are played.
package chattest

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// Server is a single scripted TCP chat endpoint listening on a random port.
type Server struct {
	listener net.Listener
	quit     chan struct{}
	wg       sync.WaitGroup

	mu       sync.Mutex
	script   map[string][]string
	received []string
	conns    []net.Conn
}

// New creates a stopped Server with an empty script.
func New() *Server {
	return &Server{
		quit:   make(chan struct{}),
		script: make(map[string][]string),
	}
}

// Reply registers the lines to send back whenever exactly request is
// received. Later registrations for the same request overwrite earlier ones.
func (s *Server) Reply(request string, responses ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script[request] = responses
}

// Start begins accepting connections.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("failed to start scripted server: %w", err)
	}
	s.listener = listener

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener and all connections and waits for the loops.
func (s *Server) Stop() {
	close(s.quit)
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Lock()
	for _, conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// Push writes unsolicited lines to every connected client.
func (s *Server) Push(lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.conns {
		for _, line := range lines {
			fmt.Fprintf(conn, "%s\n", line)
		}
	}
}

// Received returns a copy of every line received so far, in arrival order.
func (s *Server) Received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.received...)
}

// WaitFor blocks until a line equal to want has been received, or the
// timeout elapses. It reports whether the line arrived.
func (s *Server) WaitFor(want string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, line := range s.Received() {
			if line == want {
				return true
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return
			default:
				continue
			}
		}

		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		s.mu.Lock()
		s.received = append(s.received, line)
		responses := s.script[line]
		s.mu.Unlock()

		for _, response := range responses {
			if _, err := fmt.Fprintf(conn, "%s\n", response); err != nil {
				return
			}
		}
	}
}
