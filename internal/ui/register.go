package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/afyalink/afyaterm/internal/api"
)

// idTypes are the identification documents the portal accepts.
var idTypes = []string{"Kenyan Citizen", "Refugee", "Foreign Citizen", "Mandate"}

const (
	regFieldIDType = iota
	regFieldIDNumber
	regFieldFirstName
	regFieldPhone
	regFieldEmail
	regFieldCount
)

type registerDoneMsg struct {
	message string
	err     error
}

// registerModel is the member registration form. Validation is
// presence-only, plus the email format check; nothing is sent until every
// field passes.
type registerModel struct {
	auth authAPI

	idType    int
	idNumber  textinput.Model
	firstName textinput.Model
	phone     textinput.Model
	email     textinput.Model

	focus      int
	errors     map[int]string
	submitting bool
}

func newRegisterModel(auth authAPI) registerModel {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 64
		ti.Width = 32
		return ti
	}
	m := registerModel{
		auth:      auth,
		idType:    -1,
		idNumber:  mk("Enter your ID Number"),
		firstName: mk("Enter your First Name"),
		phone:     mk("Enter your Phone Number"),
		email:     mk("Enter your email"),
		errors:    map[int]string{},
	}
	return m
}

func (m *registerModel) inputs() []*textinput.Model {
	return []*textinput.Model{&m.idNumber, &m.firstName, &m.phone, &m.email}
}

func (m registerModel) setFocus(idx int) registerModel {
	m.focus = idx
	for i, ti := range m.inputs() {
		if i+1 == idx { // inputs start at regFieldIDNumber
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
	return m
}

// validate marks every failing field and reports whether the form may be
// submitted.
func (m *registerModel) validate() bool {
	m.errors = map[int]string{}
	if m.idType < 0 {
		m.errors[regFieldIDType] = "ID Type is required"
	}
	if strings.TrimSpace(m.idNumber.Value()) == "" {
		m.errors[regFieldIDNumber] = "ID Number is required"
	}
	if strings.TrimSpace(m.firstName.Value()) == "" {
		m.errors[regFieldFirstName] = "First Name is required"
	}
	if strings.TrimSpace(m.phone.Value()) == "" {
		m.errors[regFieldPhone] = "Phone Number is required"
	}
	if email := strings.TrimSpace(m.email.Value()); email == "" {
		m.errors[regFieldEmail] = "Email is required"
	} else if !emailRe.MatchString(email) {
		m.errors[regFieldEmail] = "Invalid email format"
	}
	return len(m.errors) == 0
}

func (m registerModel) submit() tea.Cmd {
	req := api.RegisterRequest{
		IDType:    idTypes[m.idType],
		IDNumber:  strings.TrimSpace(m.idNumber.Value()),
		Firstname: strings.TrimSpace(m.firstName.Value()),
		Contact:   strings.TrimSpace(m.phone.Value()),
		Email:     strings.TrimSpace(m.email.Value()),
	}
	auth := m.auth
	return func() tea.Msg {
		msg, err := auth.Register(context.Background(), req)
		return registerDoneMsg{message: msg, err: err}
	}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		m.submitting = false
		if msg.err != nil {
			return m, showToast(toastError, errText(msg.err))
		}
		// Clear the form; the client keeps no copy of a submitted record.
		fresh := newRegisterModel(m.auth)
		text := msg.message
		if text == "" {
			text = "Registration successful!"
		}
		return fresh, showToast(toastSuccess, text)

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			return m.setFocus((m.focus + 1) % regFieldCount), nil
		case tea.KeyShiftTab, tea.KeyUp:
			return m.setFocus((m.focus + regFieldCount - 1) % regFieldCount), nil
		case tea.KeyEnter:
			if !m.validate() {
				return m, nil
			}
			m.submitting = true
			return m, m.submit()
		case tea.KeyLeft, tea.KeyRight, tea.KeySpace:
			if m.focus == regFieldIDType {
				if msg.Type == tea.KeyLeft {
					m.idType = (m.idType + len(idTypes) - 1) % len(idTypes)
				} else {
					m.idType = (m.idType + 1) % len(idTypes)
				}
				delete(m.errors, regFieldIDType)
				return m, nil
			}
		}
		// Typing clears the field's error, like the original form.
		delete(m.errors, m.focus)
	}

	var cmd tea.Cmd
	switch m.focus {
	case regFieldIDNumber:
		m.idNumber, cmd = m.idNumber.Update(msg)
	case regFieldFirstName:
		m.firstName, cmd = m.firstName.Update(msg)
	case regFieldPhone:
		m.phone, cmd = m.phone.Update(msg)
	case regFieldEmail:
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Register"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("ID Type"))
	b.WriteString("\n")
	selected := "Select ID type"
	if m.idType >= 0 {
		selected = idTypes[m.idType]
	}
	if m.focus == regFieldIDType {
		b.WriteString(titleStyle.Render("‹ " + selected + " ›"))
		b.WriteString(hintStyle.Render("  (←/→ to change)"))
	} else {
		b.WriteString(selected)
	}
	b.WriteString(m.fieldError(regFieldIDType))

	fields := []struct {
		label string
		idx   int
		input textinput.Model
	}{
		{"ID Number", regFieldIDNumber, m.idNumber},
		{"First Name", regFieldFirstName, m.firstName},
		{"Phone Number", regFieldPhone, m.phone},
		{"Email", regFieldEmail, m.email},
	}
	for _, f := range fields {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(f.label))
		b.WriteString("\n")
		b.WriteString(f.input.View())
		b.WriteString(m.fieldError(f.idx))
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(hintStyle.Render("Submitting..."))
	} else {
		b.WriteString(hintStyle.Render("enter to submit • tab to move between fields"))
	}

	return cardStyle.Render(b.String())
}

func (m registerModel) fieldError(idx int) string {
	if text, ok := m.errors[idx]; ok {
		return "\n" + fieldErr.Render(text)
	}
	return ""
}

// errText extracts a user-facing message from a request error.
func errText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "something went wrong, please try again"
}
