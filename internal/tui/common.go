package tui

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCounter viewState = iota
	viewSettings
)

var viewNames = []string{"Counter", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// ackExpiredMsg closes the acknowledgement window opened with the same seq.
type ackExpiredMsg struct {
	seq int
}

type irritationReportedMsg struct {
	previousDays int
}

type settingsSavedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

const resetTimeLayout = "02/01/2006 15:04"

func formatLastReset(t *time.Time) string {
	if t == nil {
		return "Never"
	}
	return t.Local().Format(resetTimeLayout)
}

func dayUnit(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func formatDays(n int) string {
	return fmt.Sprintf("%d %s", n, dayUnit(n))
}

// motivation picks the line shown under the counter.
func motivation(days int, subject string) string {
	switch {
	case days == 0:
		return "Starting over... 🙄"
	case days == 1:
		return "One day of peace! 😌"
	case days < 7:
		return "Making progress! 😊"
	case days < 30:
		return "Excellent control! 🎉"
	case days < 100:
		return "A true master of patience! 🧘"
	}
	return fmt.Sprintf("LEGENDARY! %s is at peace! 👑", subject)
}

// counterColor maps the streak length to its display colour.
func counterColor(days int) lipgloss.Color {
	switch {
	case days == 0:
		return tierReset
	case days < 7:
		return tierEarly
	case days < 30:
		return tierSteady
	}
	return tierLong
}

func msToSecs(s string) string {
	if ms, err := strconv.Atoi(s); err == nil {
		return strconv.FormatFloat(float64(ms)/1000, 'f', -1, 64)
	}
	return s
}

func secsToMs(s string) string {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.Itoa(int(math.Round(secs * 1000)))
	}
	return s
}
