package protocol

import "strings"

// EventKind represents the kind of server-pushed event.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventRoomList
	EventAttendances
	EventMessage
)

// String returns the string representation of EventKind.
func (k EventKind) String() string {
	switch k {
	case EventRoomList:
		return "LIST_ROOMS"
	case EventAttendances:
		return "ATTENDANCES"
	case EventMessage:
		return "MESSAGE"
	default:
		return "UNKNOWN"
	}
}

// Event is an inbound server-to-client frame, classified by its verb.
//
// For EventRoomList, Names holds the room names; for EventAttendances it
// holds the participants with the editor-holder first. For EventMessage,
// Body holds the decoded document text (surrogates already reversed); an
// empty Body means the document was cleared.
type Event struct {
	Kind  EventKind
	Names []string
	Body  string
}

// ParseEvent classifies a raw wire line. Unknown verbs yield EventUnknown
// rather than an error; the dispatcher drops them silently.
func ParseEvent(line string) Event {
	line = strings.TrimRight(line, "\r\n")
	verb, rest, _ := strings.Cut(line, " ")

	switch verb {
	case "list_rooms":
		return Event{Kind: EventRoomList, Names: splitNames(rest)}
	case "attendances":
		return Event{Kind: EventAttendances, Names: splitNames(rest)}
	case "message":
		return Event{Kind: EventMessage, Body: DecodeBody(rest)}
	default:
		return Event{Kind: EventUnknown}
	}
}

// splitNames tokenizes a space-separated payload, tolerating runs of spaces
// and returning nil for an empty payload.
func splitNames(payload string) []string {
	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return nil
	}
	return fields
}
