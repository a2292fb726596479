package main

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	app             *tview.Application
	pages           *tview.Pages
	textArea        *tview.TextArea
	textView        *tview.TextView
	position        *tview.TextView
	helpView        *tview.TextView
	flex            *tview.Flex
	indexPickWindow *tview.InputField
	deleteMode      = false
	helpText        = `
[yellow]Enter[white]: send msg & speak
[yellow]Alt+Enter[white]: newline in input
[yellow]PgUp/Down[white]: switch focus
[yellow]F1[white]: pick voice
[yellow]F2[white]: replay last msg
[yellow]F3[white]: delete msg by id
[yellow]F4[white]: replay msg by id
[yellow]F5[white]: toggle auto-speak
[yellow]F6[white]: stop speaking
[yellow]F7[white]: copy last msg to clipboard (linux xclip)
[yellow]F8[white]: export transcript
[yellow]F9[white]: clear transcript
[yellow]F10[white]: settings
[yellow]F12[white]: this help

Press Enter to go back
`
)

func init() {
	theme, ok := colorschemes[cfg.ColorScheme]
	if !ok {
		theme = colorschemes["default"]
	}
	tview.Styles = theme
	app = tview.NewApplication()
	pages = tview.NewPages()
	textArea = tview.NewTextArea().
		SetPlaceholder("Type a line to speak...")
	textArea.SetBorder(true).SetTitle("input")
	textView = tview.NewTextView().
		SetDynamicColors(true).
		SetChangedFunc(func() {
			app.Draw()
		})
	textView.SetBorder(true).SetTitle("transcript")
	focusSwitcher[textArea] = textView
	focusSwitcher[textView] = textArea
	position = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(textView, 0, 40, false).
		AddItem(textArea, 0, 10, true).
		AddItem(position, 0, 1, false)
	indexPickWindow = tview.NewInputField().
		SetLabel("Enter a msg id: ").
		SetFieldWidth(4).
		SetAcceptanceFunc(tview.InputFieldInteger).
		SetDoneFunc(func(key tcell.Key) {
			pages.RemovePage("getIndex")
		})
	indexPickWindow.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() != tcell.KeyEnter {
			return event
		}
		si := indexPickWindow.GetText()
		id, err := strconv.Atoi(si)
		if err != nil {
			logger.Error("failed to convert provided id", "error", err, "si", si)
			return event
		}
		msg, ok := mgr.ByID(uint32(id))
		if !ok {
			logger.Warn("no message with given id", "id", id)
			return event
		}
		if deleteMode {
			mgr.Delete(msg.ID)
			redrawTranscript()
		} else {
			mgr.Speak(msg.Text)
		}
		updateStatusLine()
		return event
	})
	helpView = tview.NewTextView().SetDynamicColors(true).SetText(helpText).SetDoneFunc(func(key tcell.Key) {
		pages.RemovePage("helpView")
	})
	helpView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc, tcell.KeyEnter:
			return event
		}
		return nil
	})
	textArea.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEnter {
			// Alt+Enter keeps the default behavior: a literal newline
			if event.Modifiers()&tcell.ModAlt != 0 {
				return event
			}
			sendMessage()
			return nil
		}
		return event
	})
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			showVoiceSelectionPopup()
			return nil
		case tcell.KeyF2:
			if msg, ok := mgr.Last(); ok {
				mgr.Speak(msg.Text)
				updateStatusLine()
			}
			return nil
		case tcell.KeyF3:
			deleteMode = true
			pages.AddPage("getIndex", indexPickWindow, true, true)
			return nil
		case tcell.KeyF4:
			deleteMode = false
			pages.AddPage("getIndex", indexPickWindow, true, true)
			return nil
		case tcell.KeyF5:
			mgr.AutoSpeak = !mgr.AutoSpeak
			updateStatusLine()
			return nil
		case tcell.KeyF6:
			mgr.Stop()
			updateStatusLine()
			return nil
		case tcell.KeyF7:
			msg, ok := mgr.Last()
			if !ok {
				return nil
			}
			if err := copyToClipboard(msg.Text); err != nil {
				logger.Error("failed to copy to clipboard", "error", err)
				return nil
			}
			notification := fmt.Sprintf("msg %d was copied to the clipboard", msg.ID)
			if err := notifyUser("copied", notification); err != nil {
				logger.Error("failed to send notification", "error", err)
			}
			return nil
		case tcell.KeyF8:
			exportTranscript()
			return nil
		case tcell.KeyF9:
			showClearConfirmModal()
			return nil
		case tcell.KeyF10:
			showSettingsTable()
			return nil
		case tcell.KeyF12:
			pages.AddPage("helpView", helpView, true, true)
			return nil
		case tcell.KeyPgUp, tcell.KeyPgDn:
			currentF := app.GetFocus()
			app.SetFocus(focusSwitcher[currentF])
			return nil
		}
		return event
	})
	updateStatusLine()
	go pollWatcher(ctx)
	if startupErr != "" {
		go app.QueueUpdateDraw(func() {
			showFailurePopup(fmt.Errorf("%s", startupErr))
		})
	}
}

func sendMessage() {
	msg, ok := mgr.Submit(textArea.GetText())
	if !ok {
		return
	}
	fmt.Fprintf(textView, "%s\n", msg.ViewLine())
	textView.ScrollToEnd()
	textArea.SetText("", true)
	updateStatusLine()
}
