// Package protocol implements the text codec for the ChatABC wire protocol.
//
// Every frame is a single UTF-8 line terminated by '\n'. Tokens are separated
// by single spaces and the first token is the verb. Message bodies carry the
// whole shared document with ";;;" standing in for embedded newlines.
package protocol

import "strings"

// NewlineSurrogate is the reserved sequence that encodes '\n' inside a
// message body, since the framing itself is newline-delimited.
const NewlineSurrogate = ";;;"

// Command is an outbound client-to-server frame.
type Command struct {
	Verb string
	Args []string
}

// Encode renders the command as a single wire line without the trailing
// newline; the transport appends it.
func (c Command) Encode() string {
	if len(c.Args) == 0 {
		return c.Verb
	}
	return c.Verb + " " + strings.Join(c.Args, " ")
}

// Login claims the given identity.
func Login(username string) Command {
	return Command{Verb: "login", Args: []string{username}}
}

// Logout releases the given identity.
func Logout(username string) Command {
	return Command{Verb: "logout", Args: []string{username}}
}

// ListRooms requests the current room set.
func ListRooms() Command {
	return Command{Verb: "list_rooms"}
}

// Create creates a new room. Literal newlines would break the framing and
// are stripped from the name.
func Create(room string) Command {
	room = strings.ReplaceAll(room, "\n", "")
	return Command{Verb: "create", Args: []string{room}}
}

// Join enters a room.
func Join(room, username string) Command {
	return Command{Verb: "join", Args: []string{room, username}}
}

// Leave exits a room.
func Leave(room, username string) Command {
	return Command{Verb: "leave", Args: []string{room, username}}
}

// Editor declares editor interest in a room.
func Editor(room string) Command {
	return Command{Verb: "editor", Args: []string{room}}
}

// FetchFile requests a room's current document.
func FetchFile(room string) Command {
	return Command{Verb: "fetch_file", Args: []string{room}}
}

// Save asks the server to persist a room's document.
func Save(room string) Command {
	return Command{Verb: "save", Args: []string{room}}
}

// Attendances requests a room's participant list.
func Attendances(room string) Command {
	return Command{Verb: "attendances", Args: []string{room}}
}

// Message submits the full document for a room. The body must already be
// surrogate-encoded (see EncodeBody).
func Message(room, username, body string) Command {
	return Command{Verb: "message", Args: []string{room, username, body}}
}

// EncodeBody replaces every newline in user-authored text with the wire
// surrogate so the document fits on one line.
func EncodeBody(text string) string {
	return strings.ReplaceAll(text, "\n", NewlineSurrogate)
}

// DecodeBody reverses EncodeBody.
func DecodeBody(body string) string {
	return strings.ReplaceAll(body, NewlineSurrogate, "\n")
}
