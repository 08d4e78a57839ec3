package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/store"
	"github.com/sadopc/streakr/internal/streak"
)

type counterModel struct {
	store   *store.Store
	tracker *streak.Tracker
	width   int
	height  int

	state   streak.State
	subject string
	ack     ackModel

	chart barchart.Model
}

func newCounterModel(s *store.Store, tr *streak.Tracker) counterModel {
	c := counterModel{
		store:   s,
		tracker: tr,
		state:   tr.State(),
		subject: store.DefaultSubject,
		ack:     newAckModel(store.DefaultAckDuration),
		chart:   barchart.New(40, 8),
	}
	c.buildChart()
	return c
}

func (c counterModel) Init() tea.Cmd {
	return c.loadData()
}

func (c *counterModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.buildChart()
}

type counterDataMsg struct {
	subject     string
	ackDuration time.Duration
}

func (c counterModel) loadData() tea.Cmd {
	return func() tea.Msg {
		return counterDataMsg{
			subject:     c.store.Subject(),
			ackDuration: c.store.AckDuration(),
		}
	}
}

func (c counterModel) update(msg tea.Msg) (counterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case counterDataMsg:
		c.subject = msg.subject
		c.ack.duration = msg.ackDuration
		return c, nil

	case tickMsg:
		if st, changed := c.tracker.Refresh(); changed {
			c.state = st
			c.buildChart()
		}
		return c, nil

	case ackExpiredMsg:
		c.ack.expire(msg)
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Reset):
			return c.reportIrritation()
		case key.Matches(msg, keys.Back):
			c.ack.cancel()
			return c, nil
		}
	}
	return c, nil
}

// reportIrritation resets the streak unless the acknowledgement from the
// previous reset is still showing.
func (c counterModel) reportIrritation() (counterModel, tea.Cmd) {
	if c.ack.active {
		return c, nil
	}
	prev := c.state.Days
	st, err := c.tracker.ReportIrritation()
	c.state = st
	c.buildChart()
	ackCmd := c.ack.open(time.Now())
	if err != nil {
		return c, tea.Batch(ackCmd, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		})
	}
	return c, tea.Batch(ackCmd, func() tea.Msg {
		return irritationReportedMsg{previousDays: prev}
	})
}

func (c *counterModel) buildChart() {
	chartWidth := c.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	c.chart = barchart.New(chartWidth, 8)

	current := max(c.state.Days, 0)
	c.chart.PushAll([]barchart.BarData{
		{
			Label: "Now",
			Values: []barchart.BarValue{{
				Name:  "current",
				Value: float64(current),
				Style: lipgloss.NewStyle().Foreground(counterColor(c.state.Days)),
			}},
		},
		{
			Label: "Best",
			Values: []barchart.BarValue{{
				Name:  "record",
				Value: float64(c.state.Record),
				Style: lipgloss.NewStyle().Foreground(tierLong),
			}},
		},
	})
	c.chart.Draw()
}

func (c counterModel) view() string {
	if c.width < 20 {
		return "Terminal too small"
	}

	contentWidth := c.width - 4

	if c.ack.active {
		return c.renderAckPanel(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		c.renderCounterPanel(contentWidth),
		c.renderInfoPanel(contentWidth),
		c.renderChartPanel(contentWidth),
	)
}

func (c counterModel) renderCounterPanel(w int) string {
	inner := w - 6
	days := c.state.Days

	content := lipgloss.JoinVertical(lipgloss.Center,
		headlineStyle.Width(inner).Render("DAYS WITHOUT IRRITATING"),
		subjectStyle.Width(inner).Render(strings.ToUpper(c.subject)),
		"",
		bigNumberStyle.Width(inner).Foreground(counterColor(days)).Render(fmt.Sprintf("%d", days)),
		captionStyle.Width(inner).Render(dayUnit(days)),
		"",
		captionStyle.Width(inner).Render(motivation(days, c.subject)),
	)
	return counterPanelStyle.Width(w).Render(content)
}

func (c counterModel) renderInfoPanel(w int) string {
	label := lipgloss.NewStyle().Width(18)
	rows := []string{
		label.Render("Last reset:") + valueStyle.Render(formatLastReset(c.state.LastReset)),
		label.Render("Personal record:") + recordStyle.Render(formatDays(c.state.Record)),
		"",
		mutedStyle.Render(fmt.Sprintf("r or enter: today I irritated %s", c.subject)),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c counterModel) renderChartPanel(w int) string {
	title := titleStyle.Render("Streak vs. record")
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", c.chart.View()),
	)
}

func (c counterModel) renderAckPanel(w int) string {
	inner := w - 6
	secs := int(c.ack.remaining(time.Now()).Round(time.Second) / time.Second)
	content := lipgloss.JoinVertical(lipgloss.Center,
		errorStyle.Bold(true).Width(inner).Align(lipgloss.Center).
			Render(fmt.Sprintf("%s IRRITATED! 😤", strings.ToUpper(c.subject))),
		"",
		textStyle.Width(inner).Align(lipgloss.Center).Render("The counter was reset. 😔"),
		"",
		captionStyle.Width(inner).Render(fmt.Sprintf("closing in %ds  esc: dismiss", secs)),
	)
	return ackPanelStyle.Width(w).Render(content)
}
