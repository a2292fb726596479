package main

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"mouthpiece/transcript"
)

const settingsPage = "settings"

// Define constants for cell types
const (
	CellTypeCheckbox  = "checkbox"
	CellTypeInput     = "input"
	CellTypeListPopup = "listpopup"
)

// CellData holds additional data for each cell
type CellData struct {
	Type     string
	Options  []string
	OnChange interface{}
}

// makeSettingsTable creates the table with the speak settings; changes
// take effect immediately
func makeSettingsTable() *tview.Table {
	table := tview.NewTable().
		SetBorders(true).
		SetSelectable(true, false).
		SetSelectedStyle(tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite))
	table.SetTitle("Settings (Press 'x' to exit)").
		SetTitleAlign(tview.AlignLeft)
	row := 0
	headerCell := tview.NewTableCell(fmt.Sprintf("Speech settings; provider: %s", provider.Name())).
		SetTextColor(tcell.ColorYellow).
		SetAlign(tview.AlignLeft).
		SetSelectable(false)
	table.SetCell(row, 0, headerCell)
	table.SetCell(row, 1,
		tview.NewTableCell("press 'x' to exit").
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	row++
	cellData := make(map[string]*CellData)
	addCheckboxRow := func(label string, initialValue bool, onChange func(bool)) {
		table.SetCell(row, 0,
			tview.NewTableCell(label).
				SetTextColor(tcell.ColorWhite).
				SetAlign(tview.AlignLeft).
				SetSelectable(false))
		valueText := "No"
		if initialValue {
			valueText = "Yes"
		}
		table.SetCell(row, 1, tview.NewTableCell(valueText).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignCenter))
		cellData[fmt.Sprintf("checkbox_%d", row)] = &CellData{
			Type:     CellTypeCheckbox,
			OnChange: onChange,
		}
		row++
	}
	addListPopupRow := func(label string, options []string, initialValue string, onChange func(string)) {
		table.SetCell(row, 0,
			tview.NewTableCell(label).
				SetTextColor(tcell.ColorWhite).
				SetAlign(tview.AlignLeft).
				SetSelectable(false))
		table.SetCell(row, 1, tview.NewTableCell(initialValue).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignCenter))
		cellData[fmt.Sprintf("listpopup_%d", row)] = &CellData{
			Type:     CellTypeListPopup,
			Options:  options,
			OnChange: onChange,
		}
		row++
	}
	addInputRow := func(label string, initialValue string, onChange func(string)) {
		table.SetCell(row, 0,
			tview.NewTableCell(label).
				SetTextColor(tcell.ColorWhite).
				SetAlign(tview.AlignLeft).
				SetSelectable(false))
		table.SetCell(row, 1, tview.NewTableCell(initialValue).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignCenter))
		cellData[fmt.Sprintf("input_%d", row)] = &CellData{
			Type:     CellTypeInput,
			OnChange: onChange,
		}
		row++
	}
	addCheckboxRow("Auto-speak on submit", mgr.AutoSpeak, func(checked bool) {
		mgr.AutoSpeak = checked
		updateStatusLine()
	})
	logLevels := []string{"Debug", "Info", "Warn"}
	addListPopupRow("Set log level", logLevels, GetLogLevel(), func(option string) {
		setLogLevel(option)
		updateStatusLine()
	})
	voiceLabels := make([]string, 0, len(voices))
	currentVoice := mgr.VoiceID
	for _, v := range voices {
		voiceLabels = append(voiceLabels, v.Display())
		if v.ID == mgr.VoiceID {
			currentVoice = v.Display()
		}
	}
	addListPopupRow("Voice", voiceLabels, currentVoice, func(option string) {
		for _, v := range voices {
			if v.Display() == option {
				mgr.VoiceID = v.ID
				cfg.TTS_VOICE = v.ID
				break
			}
		}
		updateStatusLine()
	})
	addInputRow(fmt.Sprintf("Rate, wpm (%d-%d)", transcript.RateMin, transcript.RateMax),
		strconv.Itoa(mgr.Rate), func(text string) {
			if val, err := strconv.Atoi(text); err == nil {
				mgr.Rate = transcript.ClampRate(val)
				cfg.TTS_RATE = mgr.Rate
			}
			updateStatusLine()
		})
	addInputRow("Volume, % (0-100)", strconv.Itoa(volumePercent()), func(text string) {
		if val, err := strconv.Atoi(text); err == nil {
			mgr.Volume = transcript.VolumeFromPercent(val)
			cfg.TTS_VOLUME = volumePercent()
		}
		updateStatusLine()
	})
	table.SetSelectedFunc(func(selectedRow, selectedCol int) {
		if selectedCol != 1 {
			if table.GetRowCount() > selectedRow && table.GetColumnCount() > 1 {
				table.Select(selectedRow, 1)
			}
			return
		}
		cell := table.GetCell(selectedRow, selectedCol)
		if data := cellData[fmt.Sprintf("checkbox_%d", selectedRow)]; data != nil && data.Type == CellTypeCheckbox {
			if onChange, ok := data.OnChange.(func(bool)); ok {
				newValue := cell.Text == "No"
				onChange(newValue)
				if newValue {
					cell.SetText("Yes")
				} else {
					cell.SetText("No")
				}
			}
			return
		}
		if data := cellData[fmt.Sprintf("listpopup_%d", selectedRow)]; data != nil && data.Type == CellTypeListPopup {
			if onChange, ok := data.OnChange.(func(string)); ok && data.Options != nil {
				optList := tview.NewList().ShowSecondaryText(false).
					SetSelectedBackgroundColor(tcell.ColorGray)
				optList.SetTitle("Select an option").SetBorder(true)
				for i, opt := range data.Options {
					if opt == cell.Text {
						optList.SetCurrentItem(i)
					}
					optList.AddItem(opt, "", 0, nil)
				}
				optList.SetSelectedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
					onChange(mainText)
					cell.SetText(mainText)
					pages.RemovePage("optListPopup")
				})
				optList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
					if event.Key() == tcell.KeyEscape {
						pages.RemovePage("optListPopup")
						return nil
					}
					return event
				})
				pages.AddPage("optListPopup", centerModal(optList, 60, 20), true, true)
				app.SetFocus(optList)
			}
			return
		}
		if data := cellData[fmt.Sprintf("input_%d", selectedRow)]; data != nil && data.Type == CellTypeInput {
			if onChange, ok := data.OnChange.(func(string)); ok {
				inputFld := tview.NewInputField()
				inputFld.SetLabel("Edit value: ")
				inputFld.SetText(cell.Text)
				inputFld.SetDoneFunc(func(key tcell.Key) {
					if key == tcell.KeyEnter {
						newText := inputFld.GetText()
						onChange(newText)
						cell.SetText(newText)
					}
					pages.RemovePage("editModal")
				})
				pages.AddPage("editModal", centerModal(inputFld, 40, 3), true, true)
				app.SetFocus(inputFld)
			}
			return
		}
	})
	table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'x' {
			pages.RemovePage(settingsPage)
			return nil
		}
		return event
	})
	return table
}

func showSettingsTable() {
	pages.AddPage(settingsPage, makeSettingsTable(), true, true)
}
