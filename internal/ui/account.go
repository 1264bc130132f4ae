package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/afyalink/afyaterm/internal/api"
	"github.com/afyalink/afyaterm/internal/session"
)

type profileMsg struct {
	user *api.User
	err  error
}

// accountModel shows the member's profile, fetched by the session's user id.
// The page is reachable while logged out (the router has no guards) but then
// only renders a sign-in prompt; no unauthenticated fetch is issued.
type accountModel struct {
	users   usersAPI
	session *session.Store

	user    *api.User
	loading bool
}

func newAccountModel(users usersAPI, sess *session.Store) accountModel {
	return accountModel{users: users, session: sess}
}

// load starts the profile fetch for the current session, if any.
func (m accountModel) load() (accountModel, tea.Cmd) {
	sess, ok := m.session.Current()
	if !ok {
		m.user = nil
		return m, nil
	}
	m.loading = true
	users := m.users
	id := sess.UserID
	return m, func() tea.Msg {
		user, err := users.GetByID(context.Background(), id)
		return profileMsg{user: user, err: err}
	}
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileMsg:
		m.loading = false
		if msg.err != nil {
			return m, showToast(toastError, errText(msg.err))
		}
		m.user = msg.user
	}
	return m, nil
}

func (m accountModel) View() string {
	if !m.session.Authenticated() {
		return cardStyle.Render(
			titleStyle.Render("My Account") + "\n\n" +
				"You are not logged in.\n" +
				hintStyle.Render("Open the menu and log in to see your profile."))
	}
	if m.loading {
		return cardStyle.Render(titleStyle.Render("My Account") + "\n\n" + hintStyle.Render("Loading your profile..."))
	}
	if m.user == nil {
		return cardStyle.Render(titleStyle.Render("My Account") + "\n\n" + hintStyle.Render("Profile unavailable."))
	}

	row := func(label, value string) string {
		return labelStyle.Render(label) + "\n" + value + "\n\n"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("My Account"))
	b.WriteString("\n\n")
	b.WriteString(row("First Name", m.user.Firstname))
	b.WriteString(row("Email", m.user.Email))
	b.WriteString(row("Phone Number", m.user.Contact))
	b.WriteString(row("ID Type", m.user.IDType))
	b.WriteString(row("ID Number", m.user.IDNumber))
	b.WriteString(hintStyle.Render("Profile changes are handled at an enrolment office."))
	return cardStyle.Render(b.String())
}
