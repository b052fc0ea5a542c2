// Package session holds the client-side view state for one server connection.
package session

import "github.com/samber/lo"

// View represents which of the three screens the client is showing.
type View int

const (
	ViewLogin View = iota
	ViewRoomList
	ViewRoom
)

// String returns the string representation of View.
func (v View) String() string {
	switch v {
	case ViewLogin:
		return "LOGIN_VIEW"
	case ViewRoomList:
		return "ROOM_LIST"
	case ViewRoom:
		return "ROOM"
	}
	return "UNKNOWN"
}

// Session is the single shared mutable record of the client. All mutations
// happen on the UI loop, so no lock is needed; readers on the same loop see
// consistent state by construction.
type Session struct {
	username     string
	view         View
	room         string
	rooms        []string
	participants []string
}

// New creates a Session in the login view with no identity.
func New() *Session {
	return &Session{view: ViewLogin}
}

// Username returns the logged-in identity, or "" before login.
func (s *Session) Username() string { return s.username }

// View returns the current view state.
func (s *Session) View() View { return s.view }

// Room returns the current room, or "" outside the room view.
func (s *Session) Room() string { return s.room }

// Rooms returns a copy of the known room list.
func (s *Session) Rooms() []string {
	return append([]string(nil), s.rooms...)
}

// Participants returns a copy of the current room's participant list.
// Element 0, when present, is the editor-holder.
func (s *Session) Participants() []string {
	return append([]string(nil), s.participants...)
}

// EditorHolder returns the participant authorized to edit the document,
// or "" while the list is unknown or empty.
func (s *Session) EditorHolder() string {
	if len(s.participants) == 0 {
		return ""
	}
	return s.participants[0]
}

// Editable reports whether the local user currently holds the editor role.
func (s *Session) Editable() bool {
	return s.username != "" && s.EditorHolder() == s.username
}

// Login records the claimed identity and moves to the room list.
func (s *Session) Login(username string) {
	s.username = username
	s.view = ViewRoomList
}

// Logout clears the identity and returns to the login view. The transport
// stays open.
func (s *Session) Logout() {
	s.username = ""
	s.room = ""
	s.rooms = nil
	s.participants = nil
	s.view = ViewLogin
}

// EnterRoom moves to the room view. The participant list starts empty; the
// editor-holder is unknown until the first attendances event.
func (s *Session) EnterRoom(room string) {
	s.room = room
	s.participants = nil
	s.view = ViewRoom
}

// LeaveRoom returns to the room list and clears per-room state.
func (s *Session) LeaveRoom() {
	s.room = ""
	s.participants = nil
	s.view = ViewRoomList
}

// SetRooms replaces the room list wholesale with the server's ordering.
func (s *Session) SetRooms(rooms []string) {
	s.rooms = append([]string(nil), rooms...)
}

// AddRoomOptimistic inserts a just-created room locally so it shows up
// before the authoritative list_rooms refresh overwrites the list.
func (s *Session) AddRoomOptimistic(room string) {
	if lo.Contains(s.rooms, room) {
		return
	}
	s.rooms = append(s.rooms, room)
}

// SetParticipants replaces the participant list wholesale. The first entry
// is the editor-holder.
func (s *Session) SetParticipants(participants []string) {
	s.participants = append([]string(nil), participants...)
}
