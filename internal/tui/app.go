package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/export"
	"github.com/sadopc/streakr/internal/store"
	"github.com/sadopc/streakr/internal/streak"
)

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	tracker *streak.Tracker
	logger  *slog.Logger
	width   int
	height  int

	activeView viewState
	showHelp   bool
	export     exportPrompt

	counter  counterModel
	settings settingsModel

	help      help.Model
	status    string
	statusErr bool
}

// NewApp builds the root model. tr must already be initialised.
func NewApp(s *store.Store, tr *streak.Tracker, logger *slog.Logger) App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := help.New()
	h.ShowAll = false

	dir, _ := os.UserHomeDir()

	return App{
		store:      s,
		tracker:    tr,
		logger:     logger,
		activeView: viewCounter,
		export:     exportPrompt{dir: dir},
		counter:    newCounterModel(s, tr),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.counter.Init(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.counter.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.export.open {
			return a.updateExport(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.export.open = true
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewCounter
			return a, a.counter.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	// The counter owns the streak and the acknowledgement window, so these
	// reach it whichever view is showing.
	case tickMsg, ackExpiredMsg, counterDataMsg:
		var cmd tea.Cmd
		a.counter, cmd = a.counter.update(msg)
		if _, ok := msg.(tickMsg); ok {
			return a, tea.Batch(tickCmd(), cmd)
		}
		return a, cmd

	case irritationReportedMsg:
		a.status, a.statusErr = fmt.Sprintf("Streak of %s reset", formatDays(msg.previousDays)), false
		a.logger.Info("irritation reported", "previous_days", msg.previousDays)
		return a, nil

	case settingsSavedMsg:
		a.status, a.statusErr = "Settings saved", false
		return a, a.counter.loadData()

	case statusMsg:
		a.status, a.statusErr = msg.text, msg.isError
		if msg.isError {
			a.logger.Error(msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status, a.statusErr = "Saved "+msg.path, false
		a.export.open = false
		a.logger.Info("exported streak", "path", msg.path)
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewCounter:
		a.counter, cmd = a.counter.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewSettings && a.settings.formActive
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewCounter:
		return a.counter.loadData()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()
	height := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	var content string
	switch {
	case a.export.open:
		st := a.tracker.State()
		content = a.export.view(a.width, st.Days, st.Record)
	case a.activeView == viewCounter:
		content = a.counter.view()
	default:
		content = a.settings.view()
	}

	body := lipgloss.NewStyle().Width(a.width).Height(height).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderHeader shows the live streak on the left and the views on the right.
func (a App) renderHeader() string {
	days := a.counter.state.Days
	left := titleStyle.Foreground(colorBrand).Render("streakr") + "  " +
		lipgloss.NewStyle().Foreground(counterColor(days)).Render("● "+formatDays(days)) +
		mutedStyle.Render("  best "+formatDays(a.counter.state.Record))

	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		style := tabStyle
		if viewState(i) == a.activeView {
			style = activeTabStyle
		}
		tabs[i] = style.Render(fmt.Sprintf("%d %s", i+1, name))
	}
	right := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	return barStyle.Render(spread(a.width-2, left, right))
}

// renderFooter pairs the key help with the latest status line.
func (a App) renderFooter() string {
	status := mutedStyle
	if a.statusErr {
		status = errorStyle
	}
	left := mutedStyle.Render(a.help.View(keys))
	return barStyle.Render(spread(a.width-2, left, status.Render(a.status)))
}

// spread lays left and right out on one line of the given width.
func spread(width int, left, right string) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, strings.Repeat(" ", gap), right)
}

func (a App) updateExport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Back) {
		a.export.open = false
		return a, nil
	}
	f, ok := a.export.choose(msg)
	if !ok {
		return a, nil
	}
	a.export.open = false
	return a, a.doExport(f)
}

// doExport snapshots the streak as it is now and writes it in the background.
func (a App) doExport(f exportFormat) tea.Cmd {
	snap := export.NewSnapshot(a.store.Subject(), a.tracker.State(), time.Now())
	return saveSnapshot(snap, f, a.export.snapshotPath(snap, f))
}
