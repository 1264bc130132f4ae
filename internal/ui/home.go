package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// homeModel is the informational landing page. Static content only.
type homeModel struct {
	width int
}

func (m homeModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Karibu to the Afya Member Portal"))
	b.WriteString("\n\n")
	b.WriteString("Register once, then log in with a one-time code sent to your email.\n")
	b.WriteString("The assistant in the chat tab answers questions about your cover.\n\n")

	b.WriteString(labelStyle.Render("Who Qualifies to Register?"))
	b.WriteString("\nEvery resident: citizens, refugees, foreign citizens and mandate holders.\n\n")

	b.WriteString(labelStyle.Render("How to Register"))
	b.WriteString("\n")
	b.WriteString("  • Web self registration — open the Register tab and fill in your details.\n")
	b.WriteString("  • USSD self registration — dial the published USSD code and follow the prompts.\n")
	b.WriteString("  • Assisted enrolment — visit the nearest office with your documents.\n\n")

	b.WriteString(labelStyle.Render("Help & Support"))
	b.WriteString("\n")
	b.WriteString("  Talk to us.\n")
	b.WriteString("  Physical assistance: SHA Building, Community Area, Ragati Road\n")
	b.WriteString("  Telephone: 0800 720 601\n")

	content := cardStyle.Render(b.String())
	if m.width > 0 {
		return lipgloss.NewStyle().Width(m.width).Render(content)
	}
	return content
}
