// Package client implements the session protocol engine: the view controller
// driven by user intents and the dispatcher driven by server events.
package client

// UI is the abstract rendering surface the engine drives. A concrete
// implementation owns the widgets; the engine only ever calls it from the
// UI event loop.
type UI interface {
	// RenderLogin shows the login screen.
	RenderLogin()

	// RenderRoomList shows the room list screen.
	RenderRoomList(rooms []string, username string)

	// RenderRoom shows the room screen with an empty, non-editable document.
	RenderRoom(room, username string)

	// SetDocument replaces the shared document text.
	SetDocument(text string)

	// GetDocument returns the current document text.
	GetDocument() string

	// SetEditorField surfaces the editor-holder's name. Display only; the
	// engine never reads it back.
	SetEditorField(text string)

	// SetDocumentEditable toggles whether the local user may edit the
	// document.
	SetDocumentEditable(editable bool)

	// PromptRoomName asks the user for a new room name and invokes submit
	// with the entered text. A cancelled prompt never invokes submit.
	PromptRoomName(submit func(name string))

	// ShowInfo displays an informational message.
	ShowInfo(text string)

	// ShowError displays a validation or failure message.
	ShowError(text string)
}

// Poster marshals a closure onto the UI event loop. The receive loop uses it
// so that all state mutations happen on a single writer.
type Poster interface {
	Post(fn func())
}
