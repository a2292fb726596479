package main

import (
	"github.com/rivo/tview"
)

var (
	indexLine     = "F12 to show keys help; speaking: %v; voice: %s; rate: %d; vol: %d%%; auto-speak: %v; msgs: %d; log: %s"
	focusSwitcher = map[tview.Primitive]tview.Primitive{}
)

func main() {
	pages.AddPage("main", flex, true, true)
	if err := app.SetRoot(pages,
		true).EnableMouse(true).EnablePaste(true).Run(); err != nil {
		logger.Error("failed to start tview app", "error", err)
	}
	// bounded join on the active utterance, then the worker is abandoned
	mgr.Stop()
	cancel()
}
