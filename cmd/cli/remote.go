// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"kodibot/internal/kodi"
	"kodibot/internal/logger"
)

// actionResultMsg carries the outcome of one remote press back to the model
type actionResultMsg struct {
	action string
	reply  string
	err    error
	at     time.Time
}

// highlightExpiredMsg clears the highlight set by press number seq
type highlightExpiredMsg struct {
	seq int
}

// RemoteModel is the interactive remote screen
type RemoteModel struct {
	handlers *kodi.Handlers
	sender   string
	timeout  time.Duration
	testMode bool
	logger   zerolog.Logger

	// Remote state
	selected    string
	highlighted string
	highlight   time.Duration
	pressSeq    int
	pending     int

	// Last reply and history
	lastReply     string
	lastErr       error
	actionHistory []actionHistoryEntry

	width int
}

// NewRemoteModel creates a remote screen that sends key presses through
// handlers as run-command invocations
func NewRemoteModel(handlers *kodi.Handlers, sender string, timeout time.Duration, test bool) RemoteModel {
	return RemoteModel{
		handlers:      handlers,
		sender:        sender,
		timeout:       timeout,
		testMode:      test,
		highlight:     pressHighlight,
		logger:        logger.GetLogger("remote"),
		actionHistory: []actionHistoryEntry{},
	}
}

func (m RemoteModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses and RPC results
func (m RemoteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		action, ok := keyBindings[msg.String()]
		if !ok {
			return m, nil
		}
		m.selected = action
		m.highlighted = action
		m.pressSeq++
		m.pending++
		return m, tea.Batch(m.press(action), m.expireHighlight(m.pressSeq))

	case highlightExpiredMsg:
		if msg.seq == m.pressSeq {
			m.highlighted = ""
		}
		return m, nil

	case actionResultMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.lastReply = msg.reply
		m.lastErr = msg.err

		entry := actionHistoryEntry{
			Timestamp: msg.at,
			Action:    msg.action,
			Reply:     msg.reply,
		}
		if msg.err != nil {
			entry.Error = msg.err.Error()
		}
		m.actionHistory = append(m.actionHistory, entry)
		if len(m.actionHistory) > 50 {
			m.actionHistory = m.actionHistory[1:]
		}
		return m, nil
	}

	return m, nil
}

// expireHighlight schedules the redraw that turns the pressed button off
func (m RemoteModel) expireHighlight(seq int) tea.Cmd {
	return tea.Tick(m.highlight, func(time.Time) tea.Msg {
		return highlightExpiredMsg{seq: seq}
	})
}

// press runs one remote command word off the UI goroutine
func (m RemoteModel) press(action string) tea.Cmd {
	handlers := m.handlers
	sender := m.sender
	timeout := m.timeout
	log := m.logger

	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		message := kodi.Message{From: sender, Body: "remote " + action}
		result, err := handlers.RunCommand(ctx, message, action)

		log.Info().
			Str("action", action).
			Err(err).
			Msg("Remote button pressed")

		return actionResultMsg{
			action: action,
			reply:  kodi.Render(result),
			err:    err,
			at:     time.Now(),
		}
	}
}

// View renders the remote screen
func (m RemoteModel) View() string {
	var b strings.Builder

	title := "Kodi Remote"
	if m.testMode {
		title += testModeStyle.Render(" [TEST MODE]")
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(m.handlers.Config().Host))
	b.WriteString("\n\n")

	b.WriteString(m.renderButtons())
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderHistory())
	b.WriteString("\n")
	b.WriteString(m.renderHelpText())

	return b.String()
}

func (m RemoteModel) button(label, action string) string {
	if action != "" && action == m.highlighted {
		return remoteButtonActiveStyle.Render(label)
	}
	return remoteButtonStyle.Render(label)
}

func (m RemoteModel) renderButtons() string {
	nav := lipgloss.JoinVertical(lipgloss.Center,
		m.button("↑", "up"),
		lipgloss.JoinHorizontal(lipgloss.Center,
			m.button("←", "left"),
			m.button("OK", "select"),
			m.button("→", "right"),
		),
		m.button("↓", "down"),
	)

	playback := lipgloss.JoinHorizontal(lipgloss.Center,
		m.button("Pause", "pause"),
		m.button("Stop", "stop"),
		m.button("Mute", "mute"),
		m.button("Unmute", "unmute"),
	)

	windows := lipgloss.JoinHorizontal(lipgloss.Center,
		m.button("Back", "back"),
		m.button("Info", "info"),
		m.button("Home", "home"),
		m.button("Weather", "weather"),
	)

	library := lipgloss.JoinHorizontal(lipgloss.Center,
		m.button("Ping", "ping"),
		m.button("Scan", "scan"),
		m.button("Clean", "clean"),
	)

	return lipgloss.JoinVertical(lipgloss.Center, nav, playback, windows, library)
}

func (m RemoteModel) renderStatusBar() string {
	switch {
	case m.pending > 0:
		return headerStyle.Render(fmt.Sprintf("Sending %s...", m.selected))
	case m.lastErr != nil:
		return errorStyle.Render("Error: " + m.lastErr.Error())
	case m.lastReply != "":
		return successStyle.Render(m.lastReply)
	}
	return helpStyle.Render("Ready")
}

func (m RemoteModel) renderHistory() string {
	if len(m.actionHistory) == 0 {
		return ""
	}

	start := len(m.actionHistory) - maxHistoryLines
	if start < 0 {
		start = 0
	}

	var lines []string
	for _, entry := range m.actionHistory[start:] {
		line := fmt.Sprintf("%s %-8s ", entry.Timestamp.Format("15:04:05"), entry.Action)
		if entry.Error != "" {
			line += errorStyle.Render(entry.Error)
		} else {
			line += entry.Reply
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m RemoteModel) renderHelpText() string {
	return helpStyle.Render(
		"arrows: navigate • enter: select • backspace: back • i: info • space: pause • s: stop\n" +
			"m/u: mute/unmute • h: home • w: weather • p: ping • c: scan • x: clean • q: quit")
}
