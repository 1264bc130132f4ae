package ui

import "strings"

// developersModel is the informational page about the team behind the portal.
type developersModel struct{}

type developer struct {
	name string
	role string
}

var developers = []developer{
	{name: "John Doe", role: "Backend & API"},
	{name: "Jane Smith", role: "Member experience"},
	{name: "Alice Johnson", role: "Assistant & answers"},
	{name: "Phantom Green", role: "Operations"},
}

func (m developersModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Developers"))
	b.WriteString("\n\nThe portal is built and run by a small team:\n\n")
	for _, d := range developers {
		b.WriteString("  " + labelStyle.Render(d.name) + " — " + d.role + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("Questions about the API? Ask the assistant in the chat tab."))
	return cardStyle.Render(b.String())
}
