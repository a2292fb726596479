package models

import (
	"fmt"
	"strings"
	"time"
)

// Message is one transcript entry. Once appended it is never mutated;
// the only way it leaves history is an explicit delete.
type Message struct {
	ID        uint32
	CreatedAt time.Time
	Text      string
}

// ViewLine formats a message for the transcript view.
func (m Message) ViewLine() string {
	return fmt.Sprintf("[%03d %s] %s", m.ID, m.CreatedAt.Format("15:04:05"), m.Text)
}

// ExportLine formats a message for the export file, with the full date.
func (m Message) ExportLine() string {
	return fmt.Sprintf("[%03d %s] %s", m.ID, m.CreatedAt.Format("2006-01-02 15:04:05"), m.Text)
}

// Voice is an engine-provided voice descriptor. Enumerated once at
// startup; referenced by ID when a session starts.
type Voice struct {
	ID        string
	Name      string
	Languages []string
}

func (v Voice) Display() string {
	if len(v.Languages) == 0 {
		return v.Name
	}
	return fmt.Sprintf("%s (%s)", v.Name, strings.Join(v.Languages, ", "))
}
