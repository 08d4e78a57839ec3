package export

import (
	"time"

	"github.com/sadopc/streakr/internal/streak"
)

// Snapshot is the streak as written to export files.
type Snapshot struct {
	Subject    string
	State      streak.State
	ExportedAt time.Time
}

func NewSnapshot(subject string, st streak.State, now time.Time) Snapshot {
	return Snapshot{Subject: subject, State: st, ExportedAt: now}
}

func (s Snapshot) lastReset() string {
	if s.State.LastReset == nil {
		return ""
	}
	return s.State.LastReset.Local().Format(time.RFC3339)
}
