package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ackModel is the transient "irritated!" window shown after a reset. It has
// no effect on the streak itself.
type ackModel struct {
	duration time.Duration
	seq      int
	active   bool
	until    time.Time
}

func newAckModel(d time.Duration) ackModel {
	return ackModel{duration: d}
}

// open shows the window and schedules its expiry. Any expiry still in
// flight from an earlier open is invalidated.
func (a *ackModel) open(now time.Time) tea.Cmd {
	a.seq++
	a.active = true
	a.until = now.Add(a.duration)
	seq := a.seq
	return tea.Tick(a.duration, func(time.Time) tea.Msg {
		return ackExpiredMsg{seq: seq}
	})
}

// cancel closes the window early.
func (a *ackModel) cancel() {
	if !a.active {
		return
	}
	a.seq++
	a.active = false
}

// expire handles a scheduled expiry. Stale messages are ignored.
func (a *ackModel) expire(msg ackExpiredMsg) bool {
	if !a.active || msg.seq != a.seq {
		return false
	}
	a.active = false
	return true
}

func (a ackModel) remaining(now time.Time) time.Duration {
	if !a.active {
		return 0
	}
	if d := a.until.Sub(now); d > 0 {
		return d
	}
	return 0
}
