package ui

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/afyalink/afyaterm/internal/api"
	"github.com/afyalink/afyaterm/internal/session"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const otpDigits = 4

type loginStage int

const (
	// stageEmail: only the email field is shown; a valid address enables
	// the explicit Get OTP action.
	stageEmail loginStage = iota
	// stageOTP: the code has been dispatched; OTP boxes and the ID number
	// field are revealed.
	stageOTP
	// stageSubmitting: credentials are in flight.
	stageSubmitting
)

type otpSentMsg struct {
	message string
	err     error
}

type loginDoneMsg struct {
	resp *api.LoginResponse
	err  error
}

type cooldownTickMsg struct{}

// loginModel drives the OTP login flow: email → code dispatch → resend
// cooldown → OTP + ID submission → session write.
type loginModel struct {
	codes   codesAPI
	auth    authAPI
	session *session.Store

	stage    loginStage
	email    textinput.Model
	otp      [otpDigits]textinput.Model
	idNumber textinput.Model

	// focus: 0..3 are the OTP boxes, otpDigits is the ID number field.
	// Only meaningful at stageOTP.
	focus int

	cooldown    time.Duration
	secondsLeft int
	sendingCode bool
	emailErr    string
	idNumberErr string
	otpErr      string
}

func newLoginModel(codes codesAPI, auth authAPI, sess *session.Store, cooldown time.Duration) loginModel {
	email := textinput.New()
	email.Placeholder = "Enter your email"
	email.CharLimit = 64
	email.Width = 32
	email.Focus()

	var otp [otpDigits]textinput.Model
	for i := range otp {
		box := textinput.New()
		box.CharLimit = 1
		box.Width = 1
		box.Prompt = ""
		otp[i] = box
	}

	idNumber := textinput.New()
	idNumber.Placeholder = "Enter your ID Number"
	idNumber.CharLimit = 32
	idNumber.Width = 32

	return loginModel{
		codes:    codes,
		auth:     auth,
		session:  sess,
		email:    email,
		otp:      otp,
		idNumber: idNumber,
		cooldown: cooldown,
	}
}

func (m loginModel) emailValue() string {
	return strings.TrimSpace(m.email.Value())
}

// resendReady reports whether the cooldown since the last dispatch has fully
// elapsed.
func (m loginModel) resendReady() bool {
	return m.secondsLeft == 0 && !m.sendingCode
}

func (m loginModel) sendCode() tea.Cmd {
	codes := m.codes
	email := m.emailValue()
	return func() tea.Msg {
		msg, err := codes.SendByEmail(context.Background(), email)
		return otpSentMsg{message: msg, err: err}
	}
}

func cooldownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return cooldownTickMsg{}
	})
}

func (m loginModel) otpValue() string {
	var b strings.Builder
	for i := range m.otp {
		b.WriteString(m.otp[i].Value())
	}
	return b.String()
}

func (m *loginModel) setOTPFocus(idx int) {
	m.focus = idx
	for i := range m.otp {
		if i == idx {
			m.otp[i].Focus()
		} else {
			m.otp[i].Blur()
		}
	}
	if idx == otpDigits {
		m.idNumber.Focus()
	} else {
		m.idNumber.Blur()
	}
}

// fillOTP distributes pasted characters left to right across the boxes and
// focuses the last filled one.
func (m *loginModel) fillOTP(runes []rune) {
	if len(runes) > otpDigits {
		runes = runes[:otpDigits]
	}
	for i, r := range runes {
		m.otp[i].SetValue(string(r))
	}
	last := len(runes)
	if last > otpDigits-1 {
		last = otpDigits - 1
	}
	m.setOTPFocus(last)
}

func (m *loginModel) validate() bool {
	m.emailErr, m.idNumberErr, m.otpErr = "", "", ""
	ok := true
	if email := m.emailValue(); email == "" {
		m.emailErr = "Email is required"
		ok = false
	} else if !emailRe.MatchString(email) {
		m.emailErr = "Invalid email format"
		ok = false
	}
	if strings.TrimSpace(m.idNumber.Value()) == "" {
		m.idNumberErr = "ID Number is required"
		ok = false
	}
	for i := range m.otp {
		if m.otp[i].Value() == "" {
			m.otpErr = "OTP is required"
			ok = false
			break
		}
	}
	return ok
}

func (m loginModel) submit() tea.Cmd {
	auth := m.auth
	req := api.LoginRequest{
		Email:    m.emailValue(),
		IDNumber: strings.TrimSpace(m.idNumber.Value()),
		OTP:      m.otpValue(),
	}
	return func() tea.Msg {
		resp, err := auth.Login(context.Background(), req)
		return loginDoneMsg{resp: resp, err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case otpSentMsg:
		m.sendingCode = false
		if msg.err != nil {
			// Revert: the OTP entry stays hidden until a send succeeds.
			if m.stage == stageEmail {
				m.secondsLeft = 0
			}
			return m, showToast(toastError, errText(msg.err))
		}
		first := m.stage == stageEmail
		m.stage = stageOTP
		m.secondsLeft = int(m.cooldown / time.Second)
		if first {
			m.email.Blur()
			m.setOTPFocus(0)
		}
		text := msg.message
		if text == "" {
			text = "OTP sent to your email"
		}
		return m, tea.Batch(showToast(toastSuccess, text), cooldownTick())

	case cooldownTickMsg:
		if m.secondsLeft > 0 {
			m.secondsLeft--
			if m.secondsLeft > 0 {
				return m, cooldownTick()
			}
		}
		return m, nil

	case loginDoneMsg:
		if msg.err != nil {
			// Back to the entry stage with credentials retained.
			m.stage = stageOTP
			return m, showToast(toastError, errText(msg.err))
		}
		data := msg.resp.Data
		if err := m.session.Save(data.Token, data.ID, data.Role); err != nil {
			m.stage = stageOTP
			return m, showToast(toastError, "could not store your session")
		}
		text := msg.resp.Message
		if text == "" {
			text = "Login successful!"
		}
		return m, tea.Batch(
			showToast(toastSuccess, text),
			func() tea.Msg { return navigateMsg{to: routeChat} },
		)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m loginModel) handleKey(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	if m.stage == stageSubmitting {
		return m, nil
	}

	if m.stage == stageEmail {
		switch msg.Type {
		case tea.KeyEnter:
			if m.sendingCode {
				// One dispatch at a time; no duplicate sends.
				return m, nil
			}
			email := m.emailValue()
			if email == "" {
				m.emailErr = "Email is required"
				return m, nil
			}
			if !emailRe.MatchString(email) {
				m.emailErr = "Invalid email format"
				return m, nil
			}
			m.sendingCode = true
			return m, m.sendCode()
		default:
			m.emailErr = ""
			var cmd tea.Cmd
			m.email, cmd = m.email.Update(msg)
			return m, cmd
		}
	}

	// stageOTP
	switch msg.Type {
	case tea.KeyEnter:
		if !m.validate() {
			return m, nil
		}
		m.stage = stageSubmitting
		return m, m.submit()

	case tea.KeyCtrlR:
		if !m.resendReady() {
			return m, nil
		}
		m.sendingCode = true
		return m, m.sendCode()

	case tea.KeyTab, tea.KeyDown:
		m.setOTPFocus((m.focus + 1) % (otpDigits + 1))
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		m.setOTPFocus((m.focus + otpDigits) % (otpDigits + 1))
		return m, nil

	case tea.KeyBackspace:
		if m.focus < otpDigits {
			m.otp[m.focus].SetValue("")
			if m.focus > 0 {
				m.setOTPFocus(m.focus - 1)
			}
			return m, nil
		}

	case tea.KeyRunes:
		if m.focus < otpDigits {
			m.otpErr = ""
			if len(msg.Runes) > 1 {
				m.fillOTP(msg.Runes)
				return m, nil
			}
			m.otp[m.focus].SetValue(string(msg.Runes))
			if m.focus < otpDigits-1 {
				m.setOTPFocus(m.focus + 1)
			}
			return m, nil
		}
	}

	if m.focus == otpDigits {
		m.idNumberErr = ""
	}
	return m.updateFocused(msg)
}

func (m loginModel) updateFocused(msg tea.Msg) (loginModel, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.stage == stageEmail:
		m.email, cmd = m.email.Update(msg)
	case m.focus == otpDigits:
		m.idNumber, cmd = m.idNumber.Update(msg)
	}
	return m, cmd
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Login"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	if m.emailErr != "" {
		b.WriteString("\n" + fieldErr.Render(m.emailErr))
	}
	b.WriteString("\n")

	switch {
	case m.stage == stageEmail && m.sendingCode:
		b.WriteString("\n" + hintStyle.Render("Sending OTP..."))
	case m.stage == stageEmail:
		b.WriteString("\n" + hintStyle.Render("enter to get an OTP"))
	default:
		b.WriteString("\n" + labelStyle.Render("OTP"))
		b.WriteString("\n")
		for i := range m.otp {
			box := "[" + m.otp[i].View() + "]"
			if m.focus == i {
				box = titleStyle.Render(box)
			}
			b.WriteString(box + " ")
		}
		if m.otpErr != "" {
			b.WriteString("\n" + fieldErr.Render(m.otpErr))
		}

		b.WriteString("\n\n" + labelStyle.Render("ID Number"))
		b.WriteString("\n")
		b.WriteString(m.idNumber.View())
		if m.idNumberErr != "" {
			b.WriteString("\n" + fieldErr.Render(m.idNumberErr))
		}

		b.WriteString("\n\n")
		switch {
		case m.stage == stageSubmitting:
			b.WriteString(hintStyle.Render("Logging in..."))
		case m.sendingCode:
			b.WriteString(hintStyle.Render("Sending OTP..."))
		case m.secondsLeft > 0:
			b.WriteString(hintStyle.Render("resend available in " + strconv.Itoa(m.secondsLeft) + "s"))
		default:
			b.WriteString(hintStyle.Render("enter to login • ctrl+r to resend the OTP"))
		}
	}

	return cardStyle.Render(b.String())
}
