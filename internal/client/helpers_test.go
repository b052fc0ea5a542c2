package client_test

import (
	"io"
	"sync"

	"chatabc/internal/client"
	"chatabc/internal/session"
)

// fakeConn records outbound lines and feeds inbound ones from a channel.
type fakeConn struct {
	mu       sync.Mutex
	sent     []string
	incoming chan string
	once     sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{incoming: make(chan string, 16)}
}

func (f *fakeConn) SendLine(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, line)
	return nil
}

func (f *fakeConn) RecvLine() (string, error) {
	line, ok := <-f.incoming
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.incoming) })
	return nil
}

func (f *fakeConn) RemoteAddr() string { return "fake" }

func (f *fakeConn) sentLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

// fakeUI records every call the engine makes.
type fakeUI struct {
	mu sync.Mutex

	screen      string // "login", "rooms", "room"
	rooms       []string
	username    string
	room        string
	document    string
	editorField string
	editable    bool
	infos       []string
	errs        []string

	promptName string
	promptOK   bool
}

func (f *fakeUI) RenderLogin() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screen = "login"
}

func (f *fakeUI) RenderRoomList(rooms []string, username string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screen = "rooms"
	f.rooms = append([]string(nil), rooms...)
	f.username = username
}

func (f *fakeUI) RenderRoom(room, username string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screen = "room"
	f.room = room
	f.username = username
}

func (f *fakeUI) SetDocument(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.document = text
}

func (f *fakeUI) GetDocument() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.document
}

func (f *fakeUI) SetEditorField(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editorField = text
}

func (f *fakeUI) SetDocumentEditable(editable bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editable = editable
}

func (f *fakeUI) PromptRoomName(submit func(string)) {
	f.mu.Lock()
	ok, name := f.promptOK, f.promptName
	f.mu.Unlock()
	if ok {
		submit(name)
	}
}

func (f *fakeUI) ShowInfo(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infos = append(f.infos, text)
}

func (f *fakeUI) ShowError(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, text)
}

func (f *fakeUI) snapshot() fakeUI {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeUI{
		screen:      f.screen,
		rooms:       append([]string(nil), f.rooms...),
		username:    f.username,
		room:        f.room,
		document:    f.document,
		editorField: f.editorField,
		editable:    f.editable,
		infos:       append([]string(nil), f.infos...),
		errs:        append([]string(nil), f.errs...),
	}
}

// serialPoster runs posted closures inline under one lock, standing in for
// the single-threaded UI event loop.
type serialPoster struct {
	mu sync.Mutex
}

func (p *serialPoster) Post(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn()
}

var _ client.Poster = (*serialPoster)(nil)
var _ client.UI = (*fakeUI)(nil)

// loggedIn builds a controller already past the login screen.
func loggedIn(conn *fakeConn, ui *fakeUI) (*client.Controller, *session.Session) {
	sess := session.New()
	ctl := client.NewController(conn, sess, ui)
	ctl.Start()
	ctl.Login("alice")
	return ctl, sess
}
