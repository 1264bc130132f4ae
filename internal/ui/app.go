package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/afyalink/afyaterm/internal/api"
	"github.com/afyalink/afyaterm/internal/config"
	"github.com/afyalink/afyaterm/internal/session"
)

// Model is the root of the application: navigation shell, routed pages, the
// floating chat widget and the toast host.
type Model struct {
	session *session.Store
	log     *log.Logger

	route  route
	navbar navbar
	toasts toastHost
	widget chatWidget

	home       homeModel
	developers developersModel
	register   registerModel
	login      loginModel
	account    accountModel
	chat       chatModel

	width  int
	height int
	ready  bool
}

func New(cfg config.Config, sess *session.Store, client *api.Client, logger *log.Logger) Model {
	return Model{
		session:    sess,
		log:        logger,
		route:      routeHome,
		register:   newRegisterModel(client.Auth),
		login:      newLoginModel(client.Codes, client.Auth, sess, cfg.ResendCooldown),
		account:    newAccountModel(client.Users, sess),
		chat:       newChatModel(client.AI, sess),
		widget:     newChatWidget(client.AI, sess),
		developers: developersModel{},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case toastMsg:
		return m, m.toasts.push(msg)

	case toastExpireMsg:
		m.toasts.expire(msg.id)
		return m, nil

	case navigateMsg:
		return m.navigate(msg.to)

	case logoutMsg:
		if err := m.session.Delete(); err != nil {
			m.log.Error("logout failed", "err", err)
			return m, showToast(toastError, "could not clear your session")
		}
		m.route = routeHome
		return m, showToast(toastInfo, "Logged out")

	case tea.KeyMsg:
		return m.handleKey(msg)

	// Page-owned messages are routed straight to their owners.
	case registerDoneMsg:
		var cmd tea.Cmd
		m.register, cmd = m.register.Update(msg)
		return m, cmd
	case otpSentMsg, loginDoneMsg, cooldownTickMsg:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	case profileMsg:
		var cmd tea.Cmd
		m.account, cmd = m.account.Update(msg)
		return m, cmd
	case answerMsg, spinner.TickMsg:
		// Both transcript panes may have one in flight; each filters by id.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		cmds = append(cmds, cmd)
		m.widget, cmd = m.widget.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	return m.updateActive(msg)
}

func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	m.ready = true
	m.navbar = m.navbar.setWidth(width)
	m.home.width = width
	m.chat = m.chat.resize(width, max(height-3, 5))
	m.widget = m.widget.resize(width, height)
	return m
}

func (m Model) navigate(to route) (tea.Model, tea.Cmd) {
	m.route = to
	m.log.Debug("navigate", "route", int(to))
	switch to {
	case routeAccount:
		var cmd tea.Cmd
		m.account, cmd = m.account.load()
		return m, cmd
	case routeLogin:
		// The page mounts fresh on every visit, so a finished or failed
		// attempt never leaks into the next one.
		m.login = newLoginModel(m.login.codes, m.login.auth, m.login.session, m.login.cooldown)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlB:
		m.widget.open = !m.widget.open
		return m, nil
	case tea.KeyEsc:
		if m.widget.open {
			m.widget.open = false
			return m, nil
		}
		m.navbar = m.navbar.toggle(m.session.Authenticated())
		return m, nil
	}

	if m.navbar.open {
		var cmd tea.Cmd
		m.navbar, cmd = m.navbar.update(msg, m.session.Authenticated())
		return m, cmd
	}
	if m.widget.open {
		var cmd tea.Cmd
		m.widget, cmd = m.widget.Update(msg)
		return m, cmd
	}
	return m.updateActive(msg)
}

// updateActive forwards a message to the page owning the current route.
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case routeRegister:
		m.register, cmd = m.register.Update(msg)
	case routeLogin:
		m.login, cmd = m.login.Update(msg)
	case routeAccount:
		m.account, cmd = m.account.Update(msg)
	case routeChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	bar := m.navbar.View(m.session.Authenticated(), m.route)

	var page string
	switch m.route {
	case routeHome:
		page = m.home.View()
	case routeDevelopers:
		page = m.developers.View()
	case routeRegister:
		page = m.register.View()
	case routeLogin:
		page = m.login.View()
	case routeAccount:
		page = m.account.View()
	case routeChat:
		page = m.chat.View()
	}

	contentHeight := max(m.height-lipgloss.Height(bar), 1)
	if m.widget.open {
		page = lipgloss.Place(m.width, contentHeight, lipgloss.Right, lipgloss.Bottom, m.widget.View())
	}

	view := lipgloss.JoinVertical(lipgloss.Left, bar, page)
	if toasts := m.toasts.View(); toasts != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, bar,
			lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts), page)
	}
	return view
}
