package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func centerModal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// showVoiceSelectionPopup creates a modal popup to pick the voice used
// for the next utterances
func showVoiceSelectionPopup() {
	if len(voices) == 0 {
		logger.Warn("empty voice list", "provider", provider.Name())
		message := "No voices enumerated. The speech service may be unavailable."
		if err := notifyUser("Empty list", message); err != nil {
			logger.Error("failed to send notification", "error", err)
		}
		return
	}
	voiceListWidget := tview.NewList().ShowSecondaryText(false).
		SetSelectedBackgroundColor(tcell.ColorGray)
	voiceListWidget.SetTitle("Select Voice").SetBorder(true)
	for i, v := range voices {
		if v.ID == mgr.VoiceID {
			voiceListWidget.SetCurrentItem(i)
		}
		voiceListWidget.AddItem(v.Display(), "", 0, nil)
	}
	voiceListWidget.SetSelectedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		mgr.VoiceID = voices[index].ID
		cfg.TTS_VOICE = mgr.VoiceID
		pages.RemovePage("voiceSelectionPopup")
		updateStatusLine()
	})
	voiceListWidget.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			pages.RemovePage("voiceSelectionPopup")
			return nil
		}
		return event
	})
	pages.AddPage("voiceSelectionPopup", centerModal(voiceListWidget, 60, 20), true, true)
	app.SetFocus(voiceListWidget)
}

// showFailurePopup surfaces a captured utterance failure as a
// dismissible notification
func showFailurePopup(err error) {
	failureModal := tview.NewModal().
		SetText("speech failed: " + err.Error()).
		AddButtons([]string{"dismiss"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			pages.RemovePage("failureModal")
			app.SetFocus(textArea)
		})
	pages.AddPage("failureModal", failureModal, true, true)
}

func showClearConfirmModal() {
	if mgr.Count() == 0 {
		return
	}
	clearModal := tview.NewModal().
		SetText("Clear the whole transcript? This cannot be undone.").
		AddButtons([]string{"clear", "cancel"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if buttonLabel == "clear" {
				mgr.Clear()
				redrawTranscript()
				updateStatusLine()
			}
			pages.RemovePage("clearModal")
			app.SetFocus(textArea)
		})
	pages.AddPage("clearModal", clearModal, true, true)
}
