package transcript

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"mouthpiece/models"
	"mouthpiece/speech"
)

// documented bounds of the rate control
const (
	RateMin = 80
	RateMax = 260
)

// ceiling on the shutdown/stop join; past it the session is abandoned
const stopTimeout = 500 * time.Millisecond

// Manager owns message history and the single active speech session.
// It is driven from the interactive goroutine only; the session worker
// never touches it.
type Manager struct {
	logger    *slog.Logger
	newEngine speech.EngineFactory

	msgs    []models.Message
	nextID  uint32
	current *speech.Session

	// speak settings, mutated by the shell controls
	VoiceID   string
	Rate      int
	Volume    float64
	AutoSpeak bool
}

func NewManager(log *slog.Logger, factory speech.EngineFactory) *Manager {
	return &Manager{
		logger:    log,
		newEngine: factory,
		nextID:    1,
		Rate:      speech.DefaultRate,
		Volume:    1.0,
		AutoSpeak: true,
	}
}

// Submit appends a message and, with auto-speak on, starts speaking it.
// Whitespace-only input is a no-op.
func (m *Manager) Submit(text string) (models.Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, false
	}
	msg := models.Message{ID: m.nextID, CreatedAt: time.Now(), Text: text}
	m.nextID++
	m.msgs = append(m.msgs, msg)
	if m.AutoSpeak {
		m.Speak(text)
	}
	return msg, true
}

// Speak replaces the active session: the outgoing one gets its cancel
// signal first and is then abandoned without waiting for teardown.
func (m *Manager) Speak(text string) *speech.Session {
	if m.current != nil {
		m.current.Cancel()
	}
	m.current = speech.Start(m.logger, m.newEngine, speech.Request{
		Text:   text,
		Voice:  m.VoiceID,
		Rate:   ClampRate(m.Rate),
		Volume: m.Volume,
	})
	return m.current
}

// Stop cancels the active session and waits briefly for it to settle.
func (m *Manager) Stop() {
	if m.current == nil {
		return
	}
	m.current.Cancel()
	if !m.current.Wait(stopTimeout) {
		m.logger.Warn("session did not settle before timeout; abandoning")
	}
}

// Poll is the non-blocking completion check the shell ticks on. Once
// the session has finished it surfaces the captured failure (nil for
// natural completion or cancellation) and clears the reference.
func (m *Manager) Poll() (done bool, err error) {
	if m.current == nil {
		return true, nil
	}
	if m.current.Running() {
		return false, nil
	}
	err = m.current.Err()
	m.current = nil
	return true, err
}

func (m *Manager) Speaking() bool {
	return m.current != nil && m.current.Running()
}

// Delete removes the message with the given id. In-flight speech is
// untouched. Reports whether a message was removed.
func (m *Manager) Delete(id uint32) bool {
	for i, msg := range m.msgs {
		if msg.ID == id {
			m.msgs = append(m.msgs[:i], m.msgs[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Manager) Clear() {
	m.msgs = m.msgs[:0]
}

func (m *Manager) Last() (models.Message, bool) {
	if len(m.msgs) == 0 {
		return models.Message{}, false
	}
	return m.msgs[len(m.msgs)-1], true
}

func (m *Manager) ByID(id uint32) (models.Message, bool) {
	for _, msg := range m.msgs {
		if msg.ID == id {
			return msg, true
		}
	}
	return models.Message{}, false
}

// Messages returns a copy of history in submission order.
func (m *Manager) Messages() []models.Message {
	return append([]models.Message(nil), m.msgs...)
}

func (m *Manager) Count() int {
	return len(m.msgs)
}

// Export writes one line per message in submission order.
func (m *Manager) Export(w io.Writer) error {
	for _, msg := range m.msgs {
		if _, err := fmt.Fprintln(w, msg.ExportLine()); err != nil {
			return fmt.Errorf("failed to write export line: %w", err)
		}
	}
	return nil
}

func (m *Manager) ExportToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()
	return m.Export(f)
}

// ClampRate pins a rate to the documented bounds; values inside the
// bounds pass through unmodified.
func ClampRate(wpm int) int {
	if wpm < RateMin {
		return RateMin
	}
	if wpm > RateMax {
		return RateMax
	}
	return wpm
}

// VolumeFromPercent maps the 0-100 volume control to engine volume.
func VolumeFromPercent(p int) float64 {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return float64(p) / 100.0
}
