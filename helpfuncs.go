package main

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

func copyToClipboard(text string) error {
	cmd := exec.Command("xclip", "-selection", "clipboard")
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func notifyUser(topic, message string) error {
	cmd := exec.Command("notify-send", topic, message)
	return cmd.Run()
}

func updateStatusLine() {
	position.SetText(makeStatusLine())
}

func makeStatusLine() string {
	voice := mgr.VoiceID
	if voice == "" {
		voice = "engine default"
	}
	return fmt.Sprintf(indexLine, mgr.Speaking(), voice, mgr.Rate,
		volumePercent(), mgr.AutoSpeak, mgr.Count(), GetLogLevel())
}

func volumePercent() int {
	return int(mgr.Volume*100 + 0.5)
}

func redrawTranscript() {
	var sb strings.Builder
	for _, msg := range mgr.Messages() {
		sb.WriteString(msg.ViewLine())
		sb.WriteByte('\n')
	}
	textView.SetText(sb.String())
	textView.ScrollToEnd()
}

func setLogLevel(sl string) {
	switch sl {
	case "Debug":
		logLevel.Set(-4)
	case "Info":
		logLevel.Set(0)
	case "Warn":
		logLevel.Set(4)
	}
}

// GetLogLevel returns the current log level as a string
func GetLogLevel() string {
	switch logLevel.Level() {
	case -4:
		return "Debug"
	case 4:
		return "Warn"
	default:
		return "Info"
	}
}

func defaultExportPath() string {
	if cfg.ExportPath != "" {
		return cfg.ExportPath
	}
	return fmt.Sprintf("transcript_%d.txt", time.Now().Unix())
}

func exportTranscript() {
	if mgr.Count() == 0 {
		if err := notifyUser("export", "nothing to export"); err != nil {
			logger.Error("failed to send notification", "error", err)
		}
		return
	}
	path := defaultExportPath()
	if err := mgr.ExportToFile(path); err != nil {
		logger.Error("failed to export transcript", "error", err, "path", path)
		showFailurePopup(err)
		return
	}
	logger.Info("exported transcript", "path", path, "msgs", mgr.Count())
	if err := notifyUser("export", "saved to "+path); err != nil {
		logger.Error("failed to send notification", "error", err)
	}
}
