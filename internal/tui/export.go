package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/export"
)

// exportFormat is one way of writing a streak snapshot to disk.
type exportFormat struct {
	name  string
	ext   string
	key   key.Binding
	write func(export.Snapshot, string) error
}

var exportFormats = []exportFormat{
	{
		name:  "JSON",
		ext:   "json",
		key:   key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "json")),
		write: export.ToJSON,
	},
	{
		name:  "CSV",
		ext:   "csv",
		key:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "csv")),
		write: export.ToCSV,
	},
}

// exportPrompt asks which format to save the current streak in.
type exportPrompt struct {
	open bool
	dir  string
}

// choose returns the format bound to msg, if any.
func (p exportPrompt) choose(msg tea.KeyMsg) (exportFormat, bool) {
	for _, f := range exportFormats {
		if key.Matches(msg, f.key) {
			return f, true
		}
	}
	return exportFormat{}, false
}

// snapshotPath names the file for a snapshot taken on the given day.
func (p exportPrompt) snapshotPath(snap export.Snapshot, f exportFormat) string {
	name := fmt.Sprintf("streak-%s.%s", snap.ExportedAt.Format("2006-01-02"), f.ext)
	return filepath.Join(p.dir, name)
}

func saveSnapshot(snap export.Snapshot, f exportFormat, path string) tea.Cmd {
	return func() tea.Msg {
		if err := f.write(snap, path); err != nil {
			return statusMsg{text: fmt.Sprintf("%s export failed: %v", f.name, err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (p exportPrompt) view(width int, days, record int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Save a snapshot of the streak"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s  %s\n\n",
		lipgloss.NewStyle().Foreground(counterColor(days)).Render(formatDays(days)),
		recordStyle.Render("best "+formatDays(record)))
	for _, f := range exportFormats {
		fmt.Fprintf(&b, "  %s  %s\n", valueStyle.Render(f.key.Help().Key), textStyle.Render(f.name))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("into " + p.dir + "   esc: cancel"))
	return counterPanelStyle.Width(width - 4).Render(b.String())
}
