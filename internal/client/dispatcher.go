package client

import (
	"errors"
	"io"
	"net"
	"sync"

	"github.com/rs/zerolog/log"

	"chatabc/internal/session"
	"chatabc/internal/transport"
	"chatabc/pkg/protocol"
)

// Dispatcher consumes the inbound line stream on its own goroutine and
// marshals each relevant event's state mutation onto the UI event loop.
type Dispatcher struct {
	conn   transport.Conn
	sess   *session.Session
	ui     UI
	poster Poster

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// NewDispatcher creates a Dispatcher over an established connection.
func NewDispatcher(conn transport.Conn, sess *session.Session, ui UI, poster Poster) *Dispatcher {
	return &Dispatcher{
		conn:   conn,
		sess:   sess,
		ui:     ui,
		poster: poster,
		done:   make(chan struct{}),
	}
}

// Start launches the receive loop.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.receiveLoop()
}

// Stop closes the connection to unblock the receive loop and waits for it
// to exit.
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		close(d.done)
		_ = d.conn.Close()
	})
	d.wg.Wait()
}

// receiveLoop blocks on the inbound stream until the peer closes or the
// socket errors. There is no reconnect; the client keeps its current view.
func (d *Dispatcher) receiveLoop() {
	defer d.wg.Done()

	for {
		line, err := d.conn.RecvLine()
		if err != nil {
			select {
			case <-d.done:
			default:
				if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
					log.Debug().Msg("server closed the connection")
				} else {
					log.Error().Err(err).Msg("error reading from server")
				}
			}
			return
		}

		event := protocol.ParseEvent(line)
		if event.Kind == protocol.EventUnknown {
			log.Debug().Str("line", line).Msg("dropping unrecognized event")
			continue
		}

		select {
		case <-d.done:
			return
		default:
		}

		d.poster.Post(func() {
			d.apply(event)
		})
	}
}

// apply runs on the UI event loop. The view relevance check happens here,
// after marshalling, since the view may have changed since the line arrived.
func (d *Dispatcher) apply(event protocol.Event) {
	switch event.Kind {
	case protocol.EventRoomList:
		if d.sess.View() != session.ViewRoomList {
			return
		}
		d.sess.SetRooms(event.Names)
		d.ui.RenderRoomList(d.sess.Rooms(), d.sess.Username())

	case protocol.EventAttendances:
		if d.sess.View() != session.ViewRoom {
			return
		}
		// An empty payload clears the list and revokes editability.
		d.sess.SetParticipants(event.Names)
		d.ui.SetEditorField(d.sess.EditorHolder())
		d.ui.SetDocumentEditable(d.sess.Editable())

	case protocol.EventMessage:
		if d.sess.View() != session.ViewRoom {
			return
		}
		d.ui.SetDocument(event.Body)
	}
}
