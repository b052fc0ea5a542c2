// Package ui renders the three client screens with tview.
//
// The tview event loop is the single writer of the session state: widget
// handlers run on it, and the dispatcher reaches it through Post, which maps
// to Application.QueueUpdateDraw.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"chatabc/internal/client"
)

const (
	pageLogin    = "login"
	pageRoomList = "rooms"
	pageRoom     = "room"
	pagePrompt   = "prompt"
	pageModal    = "modal"
)

// UI implements client.UI and client.Poster on top of tview.
type UI struct {
	app   *tview.Application
	pages *tview.Pages
	ctl   *client.Controller

	loginForm *tview.Form
	nameField *tview.InputField

	roomList  *tview.List
	userLabel *tview.TextView

	roomTitle   *tview.TextView
	document    *tview.TextArea
	editorField *tview.InputField

	focus tview.Primitive
}

// New builds the widget tree. SetController must be called before Run.
func New() *UI {
	u := &UI{
		app:   tview.NewApplication(),
		pages: tview.NewPages(),
	}
	u.buildLogin()
	u.buildRoomList()
	u.buildRoom()
	return u
}

// SetController wires the intents the widgets invoke.
func (u *UI) SetController(ctl *client.Controller) {
	u.ctl = ctl
}

// Run starts the tview event loop and blocks until the application stops.
func (u *UI) Run() error {
	return u.app.SetRoot(u.pages, true).EnableMouse(true).Run()
}

// Stop terminates the event loop.
func (u *UI) Stop() {
	u.app.Stop()
}

// Post implements client.Poster by queueing the closure onto the tview
// event loop, followed by a redraw.
func (u *UI) Post(fn func()) {
	u.app.QueueUpdateDraw(fn)
}

// RenderLogin implements client.UI.
func (u *UI) RenderLogin() {
	u.nameField.SetText("")
	u.switchTo(pageLogin, u.loginForm)
}

// RenderRoomList implements client.UI.
func (u *UI) RenderRoomList(rooms []string, username string) {
	u.userLabel.SetText("Logged in as: " + username)
	u.roomList.Clear()
	for _, room := range rooms {
		room := room
		u.roomList.AddItem(room, "", 0, func() {
			u.ctl.JoinRoom(room)
		})
	}
	u.switchTo(pageRoomList, u.roomList)
}

// RenderRoom implements client.UI.
func (u *UI) RenderRoom(room, username string) {
	u.roomTitle.SetText(fmt.Sprintf("%s: %s", room, username))
	u.switchTo(pageRoom, u.document)
}

// SetDocument implements client.UI.
func (u *UI) SetDocument(text string) {
	u.document.SetText(text, false)
}

// GetDocument implements client.UI.
func (u *UI) GetDocument() string {
	return u.document.GetText()
}

// SetEditorField implements client.UI.
func (u *UI) SetEditorField(text string) {
	u.editorField.SetText(text)
}

// SetDocumentEditable implements client.UI.
func (u *UI) SetDocumentEditable(editable bool) {
	u.document.SetDisabled(!editable)
}

// PromptRoomName implements client.UI with a modal form.
func (u *UI) PromptRoomName(submit func(name string)) {
	form := tview.NewForm()
	form.AddInputField("Room name", "", 24, nil, nil)
	form.AddButton("Create", func() {
		name := form.GetFormItem(0).(*tview.InputField).GetText()
		u.pages.RemovePage(pagePrompt)
		u.restoreFocus()
		submit(name)
	})
	form.AddButton("Cancel", func() {
		u.pages.RemovePage(pagePrompt)
		u.restoreFocus()
	})
	form.SetBorder(true)
	form.SetTitle(" New Room ")
	form.SetButtonsAlign(tview.AlignCenter)

	u.pages.AddPage(pagePrompt, center(form, 40, 7), true, true)
	u.app.SetFocus(form)
}

// ShowInfo implements client.UI.
func (u *UI) ShowInfo(text string) {
	u.showModal(text)
}

// ShowError implements client.UI.
func (u *UI) ShowError(text string) {
	u.showModal(text)
}

func (u *UI) showModal(text string) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			u.pages.RemovePage(pageModal)
			u.restoreFocus()
		})
	u.pages.AddPage(pageModal, modal, true, true)
	u.app.SetFocus(modal)
}

func (u *UI) switchTo(page string, focus tview.Primitive) {
	u.focus = focus
	u.pages.SwitchToPage(page)
	u.app.SetFocus(focus)
}

func (u *UI) restoreFocus() {
	if u.focus != nil {
		u.app.SetFocus(u.focus)
	}
}

func (u *UI) buildLogin() {
	u.nameField = tview.NewInputField().
		SetLabel("Enter Username: ").
		SetFieldWidth(20)
	u.loginForm = tview.NewForm().
		AddFormItem(u.nameField).
		AddButton("Login", func() {
			u.ctl.Login(u.nameField.GetText())
		})
	u.loginForm.SetBorder(true)
	u.loginForm.SetTitle(" ChatABC ")
	u.loginForm.SetButtonsAlign(tview.AlignCenter)

	u.pages.AddPage(pageLogin, center(u.loginForm, 44, 7), true, true)
}

func (u *UI) buildRoomList() {
	u.userLabel = tview.NewTextView().SetTextAlign(tview.AlignRight)
	u.roomList = tview.NewList().ShowSecondaryText(false)
	u.roomList.SetBorder(true)
	u.roomList.SetTitle(" Rooms ")

	logout := tview.NewButton("Logout").SetSelectedFunc(func() {
		u.ctl.Logout()
	})
	refresh := tview.NewButton("Refresh").SetSelectedFunc(func() {
		u.ctl.Refresh()
	})
	create := tview.NewButton("Create New Room").SetSelectedFunc(func() {
		u.ctl.CreateRoom()
	})

	top := tview.NewFlex().
		AddItem(logout, 10, 0, false).
		AddItem(u.userLabel, 0, 1, false).
		AddItem(refresh, 11, 0, false)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 1, 0, false).
		AddItem(u.roomList, 0, 1, true).
		AddItem(create, 1, 0, false)

	// Keyboard shortcuts mirror the buttons.
	flex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlR:
			u.ctl.Refresh()
			return nil
		case tcell.KeyCtrlN:
			u.ctl.CreateRoom()
			return nil
		}
		return event
	})

	u.pages.AddPage(pageRoomList, flex, true, false)
}

func (u *UI) buildRoom() {
	u.roomTitle = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	u.document = tview.NewTextArea()
	u.document.SetDisabled(true)
	u.document.SetBorder(true)
	u.editorField = tview.NewInputField().
		SetLabel("Editor: ")
	u.editorField.SetDisabled(true)

	leave := tview.NewButton("Leave Room").SetSelectedFunc(func() {
		u.ctl.Leave()
	})
	participants := tview.NewButton("Show Participants").SetSelectedFunc(func() {
		u.ctl.ShowParticipants()
	})
	save := tview.NewButton("Save").SetSelectedFunc(func() {
		u.ctl.Save()
	})
	send := tview.NewButton("Send").SetSelectedFunc(func() {
		u.ctl.Send()
	})

	top := tview.NewFlex().
		AddItem(leave, 12, 0, false).
		AddItem(u.roomTitle, 0, 1, false).
		AddItem(participants, 19, 0, false)

	bottom := tview.NewFlex().
		AddItem(save, 6, 0, false).
		AddItem(u.editorField, 0, 1, false).
		AddItem(send, 6, 0, false)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 1, 0, false).
		AddItem(u.document, 0, 1, true).
		AddItem(bottom, 1, 0, false)

	flex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlS:
			u.ctl.Save()
			return nil
		case tcell.KeyCtrlD:
			u.ctl.Send()
			return nil
		case tcell.KeyCtrlP:
			u.ctl.ShowParticipants()
			return nil
		case tcell.KeyEscape:
			u.ctl.Leave()
			return nil
		}
		return event
	})

	u.pages.AddPage(pageRoom, flex, true, false)
}

// center wraps p in a flex so it floats in the middle of the screen.
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}

var (
	_ client.UI     = (*UI)(nil)
	_ client.Poster = (*UI)(nil)
)
