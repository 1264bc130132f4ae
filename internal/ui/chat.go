package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/afyalink/afyaterm/internal/session"
)

// fallbackAnswer replaces the bot's reply when the request fails; raw errors
// never reach the transcript.
const fallbackAnswer = "Sorry, I ran into a problem answering that. Please try again in a moment."

// widgetGreeting opens the floating widget's transcript.
const widgetGreeting = "Hello! How can I help you today?"

// chatMessage is one transcript entry.
type chatMessage struct {
	text   string
	isUser bool
}

type answerMsg struct {
	pane string
	text string
	err  error
}

// chatPane is the question/answer loop shared by the full chat page and the
// floating widget. One request at a time: the input locks while an answer is
// pending.
type chatPane struct {
	id      string
	ai      aiAPI
	session *session.Store

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	messages []chatMessage
	pending  bool
	ready    bool
}

func newChatPane(id string, ai aiAPI, sess *session.Store) chatPane {
	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 512
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return chatPane{id: id, ai: ai, session: sess, input: ti, spinner: sp}
}

func (p chatPane) resize(width, height int) chatPane {
	if !p.ready {
		p.viewport = viewport.New(width, height)
		p.ready = true
	} else {
		p.viewport.Width = width
		p.viewport.Height = height
	}
	p.input.Width = width - 4
	p.renderer = nil // rebuilt lazily for the new wrap width
	p.refresh()
	return p
}

// send appends the user's text optimistically and issues the question. A
// blank input or a pending request is a no-op.
func (p chatPane) send() (chatPane, tea.Cmd) {
	text := strings.TrimSpace(p.input.Value())
	if text == "" || p.pending {
		return p, nil
	}
	p.input.SetValue("")
	p.messages = append(p.messages, chatMessage{text: text, isUser: true})
	p.pending = true
	p.refresh()

	userID := ""
	if p.session != nil {
		if sess, ok := p.session.Current(); ok {
			userID = sess.UserID
		}
	}
	ai := p.ai
	pane := p.id
	ask := func() tea.Msg {
		answer, err := ai.Ask(context.Background(), text, userID)
		return answerMsg{pane: pane, text: answer, err: err}
	}
	return p, tea.Batch(p.spinner.Tick, ask)
}

func (p chatPane) Update(msg tea.Msg) (chatPane, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		if msg.pane != p.id {
			return p, nil
		}
		p.pending = false
		text := msg.text
		if msg.err != nil {
			text = fallbackAnswer
		}
		p.messages = append(p.messages, chatMessage{text: text})
		p.refresh()
		return p, nil

	case spinner.TickMsg:
		if !p.pending {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			return p.send()
		}
		if p.pending {
			// Input is locked for the duration of the request.
			return p, nil
		}
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)
	p.input, tiCmd = p.input.Update(msg)
	p.viewport, vpCmd = p.viewport.Update(msg)
	return p, tea.Batch(tiCmd, vpCmd)
}

// refresh re-renders the transcript into the viewport and pins the bottom.
func (p *chatPane) refresh() {
	if !p.ready {
		return
	}
	width := p.viewport.Width
	var b strings.Builder
	for _, msg := range p.messages {
		if msg.isUser {
			bubble := lipgloss.NewStyle().
				Background(accentColor).
				Foreground(lipgloss.Color("#FFFFFF")).
				Padding(0, 1).
				MaxWidth(width).
				Render(msg.text)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		} else {
			b.WriteString(p.renderMarkdown(msg.text))
		}
		b.WriteString("\n")
	}
	p.viewport.SetContent(b.String())
	p.viewport.GotoBottom()
}

// renderMarkdown formats a bot answer: headings, lists, tables, links and
// fenced code blocks with language-tagged highlighting. Falls back to the
// raw text if rendering fails.
func (p *chatPane) renderMarkdown(text string) string {
	if p.renderer == nil {
		width := p.viewport.Width
		if width < 20 {
			width = 20
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width-2),
		)
		if err != nil {
			return text
		}
		p.renderer = r
	}
	out, err := p.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n") + "\n"
}

func (p chatPane) View() string {
	if !p.ready {
		return "Initializing..."
	}
	bottom := p.input.View()
	if p.pending {
		bottom = p.spinner.View() + hintStyle.Render(" typing...")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		p.viewport.View(),
		strings.Repeat("─", max(p.viewport.Width, 1)),
		bottom,
	)
}

// chatModel is the full-page chat.
type chatModel struct {
	pane chatPane
}

func newChatModel(ai aiAPI, sess *session.Store) chatModel {
	return chatModel{pane: newChatPane("page", ai, sess)}
}

func (m chatModel) resize(width, height int) chatModel {
	m.pane = m.pane.resize(width, height)
	return m
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	var cmd tea.Cmd
	m.pane, cmd = m.pane.Update(msg)
	return m, cmd
}

func (m chatModel) View() string {
	return m.pane.View()
}

// chatWidget is the floating variant, reachable from any page.
type chatWidget struct {
	pane chatPane
	open bool
}

func newChatWidget(ai aiAPI, sess *session.Store) chatWidget {
	pane := newChatPane("widget", ai, sess)
	pane.messages = []chatMessage{{text: widgetGreeting}}
	return chatWidget{pane: pane}
}

func (w chatWidget) resize(width, height int) chatWidget {
	paneWidth := width / 2
	if paneWidth < 30 {
		paneWidth = max(width-4, 20)
	}
	paneHeight := height / 2
	if paneHeight < 8 {
		paneHeight = max(height-4, 5)
	}
	w.pane = w.pane.resize(paneWidth, paneHeight)
	return w
}

func (w chatWidget) Update(msg tea.Msg) (chatWidget, tea.Cmd) {
	var cmd tea.Cmd
	w.pane, cmd = w.pane.Update(msg)
	return w, cmd
}

func (w chatWidget) View() string {
	title := navBarStyle.Render("Afya Assistant") + hintStyle.Render(" esc to close")
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, w.pane.View()))
}
