package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const toastLifetime = 3 * time.Second

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastError
)

// toastMsg asks the shell to show a transient notification.
type toastMsg struct {
	level toastLevel
	text  string
}

type toastExpireMsg struct {
	id int
}

type toast struct {
	id    int
	level toastLevel
	text  string
}

// toastHost stacks active notifications; each one expires on its own tick.
type toastHost struct {
	toasts []toast
	nextID int
}

func showToast(level toastLevel, text string) tea.Cmd {
	return func() tea.Msg {
		return toastMsg{level: level, text: text}
	}
}

func (h *toastHost) push(msg toastMsg) tea.Cmd {
	h.nextID++
	id := h.nextID
	h.toasts = append(h.toasts, toast{id: id, level: msg.level, text: msg.text})
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastExpireMsg{id: id}
	})
}

func (h *toastHost) expire(id int) {
	kept := h.toasts[:0]
	for _, t := range h.toasts {
		if t.id != id {
			kept = append(kept, t)
		}
	}
	h.toasts = kept
}

func (h *toastHost) View() string {
	if len(h.toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(h.toasts))
	for _, t := range h.toasts {
		style := lipgloss.NewStyle().Padding(0, 1)
		switch t.level {
		case toastSuccess:
			style = style.Background(okColor).Foreground(lipgloss.Color("#FFFFFF"))
		case toastError:
			style = style.Background(errColor).Foreground(lipgloss.Color("#FFFFFF"))
		default:
			style = style.Background(dimColor).Foreground(lipgloss.Color("#FFFFFF"))
		}
		lines = append(lines, style.Render(t.text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}
