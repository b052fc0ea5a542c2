package client

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"chatabc/internal/session"
	"chatabc/internal/transport"
	"chatabc/pkg/protocol"
)

// Controller translates user intents into outbound commands and view
// transitions. Every method must be called on the UI event loop; the
// concrete UI's widget handlers already run there.
type Controller struct {
	conn transport.Conn
	sess *session.Session
	ui   UI
}

// NewController creates a Controller over an established connection.
func NewController(conn transport.Conn, sess *session.Session, ui UI) *Controller {
	return &Controller{conn: conn, sess: sess, ui: ui}
}

// Start shows the initial login view.
func (c *Controller) Start() {
	c.ui.RenderLogin()
}

// Login claims the given identity and moves to the room list. An empty or
// whitespace-bearing username keeps the login view and shows a validation
// message.
func (c *Controller) Login(username string) {
	username = strings.TrimSpace(username)
	if username == "" {
		c.ui.ShowError("Please enter a valid username.")
		return
	}
	if strings.ContainsFunc(username, unicode.IsSpace) {
		c.ui.ShowError("Username must not contain spaces.")
		return
	}

	c.send(protocol.Login(username))
	c.sess.Login(username)
	c.send(protocol.ListRooms())
	c.ui.RenderRoomList(c.sess.Rooms(), username)
}

// Logout releases the identity and returns to the login view. The transport
// stays open so the user can log in again.
func (c *Controller) Logout() {
	if c.sess.View() != session.ViewRoomList {
		return
	}
	c.send(protocol.Logout(c.sess.Username()))
	c.sess.Logout()
	c.ui.RenderLogin()
}

// Refresh requests the authoritative room list.
func (c *Controller) Refresh() {
	if c.sess.View() != session.ViewRoomList {
		return
	}
	c.send(protocol.ListRooms())
}

// CreateRoom prompts for a room name, creates it, and refreshes the list.
// The new room shows up locally right away; the server's list_rooms reply
// overwrites the list either way.
func (c *Controller) CreateRoom() {
	if c.sess.View() != session.ViewRoomList {
		return
	}
	c.ui.PromptRoomName(func(name string) {
		name = strings.TrimSpace(strings.ReplaceAll(name, "\n", ""))
		if name == "" {
			return
		}
		c.send(protocol.Create(name))
		c.sess.AddRoomOptimistic(name)
		c.ui.RenderRoomList(c.sess.Rooms(), c.sess.Username())
		c.send(protocol.ListRooms())
	})
}

// JoinRoom enters the given room. The document stays non-editable until the
// first attendances event names the editor-holder.
func (c *Controller) JoinRoom(room string) {
	if c.sess.View() != session.ViewRoomList {
		return
	}
	c.sess.EnterRoom(room)
	c.send(protocol.Join(room, c.sess.Username()))
	c.send(protocol.Editor(room))
	c.send(protocol.FetchFile(room))
	c.ui.RenderRoom(room, c.sess.Username())
	c.ui.SetDocument("")
	c.ui.SetEditorField("")
	c.ui.SetDocumentEditable(false)
}

// Leave exits the current room and returns to the room list.
func (c *Controller) Leave() {
	if c.sess.View() != session.ViewRoom {
		return
	}
	c.send(protocol.Leave(c.sess.Room(), c.sess.Username()))
	c.sess.LeaveRoom()
	c.send(protocol.ListRooms())
	c.ui.RenderRoomList(c.sess.Rooms(), c.sess.Username())
}

// Send submits the whole document. The client does not echo locally; the
// content reappears as the server's message event.
func (c *Controller) Send() {
	if c.sess.View() != session.ViewRoom {
		return
	}
	body := strings.TrimRightFunc(c.ui.GetDocument(), unicode.IsSpace)
	if body == "" {
		return
	}
	c.send(protocol.Message(c.sess.Room(), c.sess.Username(), protocol.EncodeBody(body)))
}

// Save asks the server to persist the current room's document.
func (c *Controller) Save() {
	if c.sess.View() != session.ViewRoom {
		return
	}
	c.send(protocol.Save(c.sess.Room()))
}

// ShowParticipants requests a fresh participant list and shows the cached
// one.
func (c *Controller) ShowParticipants() {
	if c.sess.View() != session.ViewRoom {
		return
	}
	c.send(protocol.Attendances(c.sess.Room()))
	c.ui.ShowInfo("Participants: " + strings.Join(c.sess.Participants(), ", "))
}

// send writes one command. Mid-session write failures are best-effort: they
// are logged and otherwise swallowed.
func (c *Controller) send(cmd protocol.Command) {
	if err := c.conn.SendLine(cmd.Encode()); err != nil {
		log.Error().Err(err).Str("verb", cmd.Verb).Msg("failed to send command")
	}
}
