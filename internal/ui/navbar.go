package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// minimizeWidth is the terminal width below which the bar collapses to a
// burger hint and links only show in the slide-in menu.
const minimizeWidth = 72

type navItem struct {
	label  string
	to     route
	logout bool
}

// navbar is the top bar plus a slide-in menu. The link set is recomputed from
// the session on every render.
type navbar struct {
	open      bool
	minimized bool
	cursor    int
	width     int
}

func (n navbar) items(authed bool) []navItem {
	if authed {
		return []navItem{
			{label: "Home", to: routeHome},
			{label: "Developers", to: routeDevelopers},
			{label: "Chat", to: routeChat},
			{label: "Account", to: routeAccount},
			{label: "Logout", logout: true},
		}
	}
	return []navItem{
		{label: "Home", to: routeHome},
		{label: "Developers", to: routeDevelopers},
		{label: "Register", to: routeRegister},
		{label: "Login", to: routeLogin},
	}
}

func (n navbar) setWidth(width int) navbar {
	n.width = width
	n.minimized = width < minimizeWidth
	return n
}

func (n navbar) toggle(authed bool) navbar {
	n.open = !n.open
	if n.open {
		n.cursor = 0
		if max := len(n.items(authed)); n.cursor >= max {
			n.cursor = max - 1
		}
	}
	return n
}

// update handles keys while the menu is open. The second return is a command
// for the chosen item, if any.
func (n navbar) update(msg tea.KeyMsg, authed bool) (navbar, tea.Cmd) {
	items := n.items(authed)
	switch msg.Type {
	case tea.KeyUp:
		if n.cursor > 0 {
			n.cursor--
		}
	case tea.KeyDown:
		if n.cursor < len(items)-1 {
			n.cursor++
		}
	case tea.KeyEnter:
		item := items[n.cursor]
		n.open = false
		if item.logout {
			return n, func() tea.Msg { return logoutMsg{} }
		}
		to := item.to
		return n, func() tea.Msg { return navigateMsg{to: to} }
	}
	return n, nil
}

func (n navbar) View(authed bool, active route) string {
	brand := labelStyle.Foreground(lipgloss.Color("#FFFFFF")).Render(" Afya Portal ")

	var links string
	if n.minimized {
		links = hintStyle.Foreground(lipgloss.Color("#DBEAFE")).Render("≡ menu (esc)")
	} else {
		parts := make([]string, 0, 6)
		for _, item := range n.items(authed) {
			if !item.logout && item.to == active {
				parts = append(parts, navActiveStyle.Render(item.label))
				continue
			}
			parts = append(parts, navBarStyle.Render(item.label))
		}
		links = strings.Join(parts, "")
	}

	bar := lipgloss.NewStyle().
		Background(accentColor).
		Width(max(n.width, lipgloss.Width(brand+links))).
		Render(brand + links)

	if !n.open {
		return bar
	}

	items := n.items(authed)
	lines := make([]string, 0, len(items))
	for i, item := range items {
		cursor := "  "
		if i == n.cursor {
			cursor = "> "
		}
		line := cursor + item.label
		if i == n.cursor {
			line = titleStyle.Render(line)
		}
		lines = append(lines, line)
	}
	menu := cardStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, bar, menu)
}
