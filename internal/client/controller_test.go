package client_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chatabc/internal/client"
	"chatabc/internal/session"
)

func TestController_StartShowsLogin(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	ctl := client.NewController(conn, session.New(), ui)

	ctl.Start()

	require.Equal(t, "login", ui.snapshot().screen)
}

func TestController_Login(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	sess := session.New()
	ctl := client.NewController(conn, sess, ui)
	ctl.Start()

	ctl.Login("alice")

	require.Equal(t, []string{"login alice", "list_rooms"}, conn.sentLines())
	require.Equal(t, session.ViewRoomList, sess.View())
	require.Equal(t, "alice", sess.Username())
	require.Equal(t, "rooms", ui.snapshot().screen)
	require.Equal(t, "alice", ui.snapshot().username)
}

func TestController_Login_TrimsSurroundingSpace(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	sess := session.New()
	ctl := client.NewController(conn, sess, ui)
	ctl.Start()

	ctl.Login("  alice  ")

	require.Equal(t, "alice", sess.Username())
	require.Contains(t, conn.sentLines(), "login alice")
}

func TestController_Login_RejectsEmptyUsername(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	sess := session.New()
	ctl := client.NewController(conn, sess, ui)
	ctl.Start()

	ctl.Login("   ")

	require.Empty(t, conn.sentLines())
	require.Equal(t, session.ViewLogin, sess.View())
	require.NotEmpty(t, ui.snapshot().errs)
	require.Equal(t, "login", ui.snapshot().screen)
}

func TestController_Login_RejectsWhitespaceInUsername(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	sess := session.New()
	ctl := client.NewController(conn, sess, ui)
	ctl.Start()

	ctl.Login("al ice")

	require.Empty(t, conn.sentLines())
	require.Equal(t, session.ViewLogin, sess.View())
	require.NotEmpty(t, ui.snapshot().errs)
}

func TestController_Logout(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	ctl, sess := loggedIn(conn, ui)

	ctl.Logout()

	require.Contains(t, conn.sentLines(), "logout alice")
	require.Equal(t, session.ViewLogin, sess.View())
	require.Empty(t, sess.Username())
	require.Equal(t, "login", ui.snapshot().screen)
}

func TestController_Refresh(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	ctl, _ := loggedIn(conn, ui)

	before := len(conn.sentLines())
	ctl.Refresh()

	sent := conn.sentLines()
	require.Len(t, sent, before+1)
	require.Equal(t, "list_rooms", sent[len(sent)-1])
}

func TestController_CreateRoom(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{promptOK: true, promptName: "dev"}
	ctl, sess := loggedIn(conn, ui)

	ctl.CreateRoom()

	sent := conn.sentLines()
	require.Contains(t, sent, "create dev")
	// The refresh follows the create.
	require.Equal(t, "list_rooms", sent[len(sent)-1])
	// The new room shows locally before the authoritative reply.
	require.Contains(t, sess.Rooms(), "dev")
	require.Contains(t, ui.snapshot().rooms, "dev")
}

func TestController_CreateRoom_CancelledPromptIsNoOp(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{promptOK: false}
	ctl, _ := loggedIn(conn, ui)

	before := len(conn.sentLines())
	ctl.CreateRoom()

	require.Len(t, conn.sentLines(), before)
}

func TestController_CreateRoom_BlankNameIsNoOp(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{promptOK: true, promptName: "   "}
	ctl, _ := loggedIn(conn, ui)

	before := len(conn.sentLines())
	ctl.CreateRoom()

	require.Len(t, conn.sentLines(), before)
}

func TestController_CreateRoom_StripsNewlines(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{promptOK: true, promptName: "dev\nroom"}
	ctl, sess := loggedIn(conn, ui)

	ctl.CreateRoom()

	require.Contains(t, conn.sentLines(), "create devroom")
	require.Contains(t, sess.Rooms(), "devroom")
}

func TestController_JoinRoom(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	ctl, sess := loggedIn(conn, ui)
	ui.SetDocument("stale")

	ctl.JoinRoom("general")

	sent := conn.sentLines()
	require.Equal(t, []string{
		"login alice",
		"list_rooms",
		"join general alice",
		"editor general",
		"fetch_file general",
	}, sent)

	require.Equal(t, session.ViewRoom, sess.View())
	require.Equal(t, "general", sess.Room())
	require.Empty(t, sess.Participants())

	snap := ui.snapshot()
	require.Equal(t, "room", snap.screen)
	require.Equal(t, "general", snap.room)
	require.Empty(t, snap.document)
	require.Empty(t, snap.editorField)
	require.False(t, snap.editable)
}

func TestController_Leave(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	ctl, sess := loggedIn(conn, ui)
	ctl.JoinRoom("general")

	ctl.Leave()

	sent := conn.sentLines()
	require.Contains(t, sent, "leave general alice")
	require.Equal(t, "list_rooms", sent[len(sent)-1])
	require.Equal(t, session.ViewRoomList, sess.View())
	require.Empty(t, sess.Room())
	require.Equal(t, "rooms", ui.snapshot().screen)
}

func TestController_Send(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	ctl, _ := loggedIn(conn, ui)
	ctl.JoinRoom("general")
	ui.SetDocument("line1\nline2")

	ctl.Send()

	sent := conn.sentLines()
	require.Equal(t, "message general alice line1;;;line2", sent[len(sent)-1])
	// No local echo: the document only changes on the server's message event.
	require.Equal(t, "line1\nline2", ui.GetDocument())
}

func TestController_Send_TrimsTrailingWhitespace(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	ctl, _ := loggedIn(conn, ui)
	ctl.JoinRoom("general")
	ui.SetDocument("hello \n")

	ctl.Send()

	sent := conn.sentLines()
	require.Equal(t, "message general alice hello", sent[len(sent)-1])
}

func TestController_Send_EmptyDocumentIsNoOp(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	ctl, _ := loggedIn(conn, ui)
	ctl.JoinRoom("general")
	ui.SetDocument("  \n ")

	before := len(conn.sentLines())
	ctl.Send()

	require.Len(t, conn.sentLines(), before)
}

func TestController_Save(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	ctl, _ := loggedIn(conn, ui)
	ctl.JoinRoom("general")

	ctl.Save()

	sent := conn.sentLines()
	require.Equal(t, "save general", sent[len(sent)-1])
}

func TestController_ShowParticipants(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	ctl, sess := loggedIn(conn, ui)
	ctl.JoinRoom("general")
	sess.SetParticipants([]string{"alice", "bob"})

	ctl.ShowParticipants()

	sent := conn.sentLines()
	require.Equal(t, "attendances general", sent[len(sent)-1])
	require.Equal(t, []string{"Participants: alice, bob"}, ui.snapshot().infos)
}

func TestController_RoomIntentsIgnoredOutsideRoomView(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{}
	ctl, _ := loggedIn(conn, ui)
	ui.SetDocument("text")

	before := len(conn.sentLines())
	ctl.Send()
	ctl.Save()
	ctl.Leave()
	ctl.ShowParticipants()

	require.Len(t, conn.sentLines(), before)
}

func TestController_ListIntentsIgnoredOutsideRoomListView(t *testing.T) {
	conn := newFakeConn()
	ui := &fakeUI{promptOK: true, promptName: "dev"}
	ctl, _ := loggedIn(conn, ui)
	ctl.JoinRoom("general")

	before := len(conn.sentLines())
	ctl.Refresh()
	ctl.CreateRoom()
	ctl.JoinRoom("random")
	ctl.Logout()

	require.Len(t, conn.sentLines(), before)
}
