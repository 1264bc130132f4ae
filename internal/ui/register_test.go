package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var errTestBoom = errors.New("boom")

func TestEmptyRegistrationBlocksSubmission(t *testing.T) {
	auth := &fakeAuth{}
	m := newRegisterModel(auth)

	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd != nil || len(auth.registered) != 0 {
		t.Fatal("no request may be issued while required fields are empty")
	}
	for _, field := range []int{regFieldIDType, regFieldIDNumber, regFieldFirstName, regFieldPhone, regFieldEmail} {
		if m.errors[field] == "" {
			t.Fatalf("expected an error for field %d", field)
		}
	}
}

func TestPartialRegistrationMarksOnlyEmptyFields(t *testing.T) {
	auth := &fakeAuth{}
	m := newRegisterModel(auth)
	m.idType = 0
	m.idNumber.SetValue("12345678")
	m.email.SetValue("invalid")

	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("submission must stay blocked")
	}
	if m.errors[regFieldIDType] != "" || m.errors[regFieldIDNumber] != "" {
		t.Fatal("filled fields must not be marked")
	}
	if m.errors[regFieldFirstName] == "" || m.errors[regFieldPhone] == "" {
		t.Fatal("empty fields must be marked")
	}
	if m.errors[regFieldEmail] != "Invalid email format" {
		t.Fatalf("expected a format error, got %q", m.errors[regFieldEmail])
	}
}

func TestValidRegistrationSubmitsContract(t *testing.T) {
	auth := &fakeAuth{regMsg: "registered"}
	m := newRegisterModel(auth)
	m.idType = 1 // Refugee
	m.idNumber.SetValue("765432")
	m.firstName.SetValue("Amina")
	m.phone.SetValue("0711000000")
	m.email.SetValue("amina@example.com")

	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	if !m.submitting {
		t.Fatal("form must lock while submitting")
	}

	done, ok := cmd().(registerDoneMsg)
	if !ok {
		t.Fatal("expected a registerDoneMsg")
	}
	if len(auth.registered) != 1 {
		t.Fatalf("expected one request, got %d", len(auth.registered))
	}
	req := auth.registered[0]
	if req.IDType != "Refugee" || req.IDNumber != "765432" || req.Firstname != "Amina" ||
		req.Contact != "0711000000" || req.Email != "amina@example.com" {
		t.Fatalf("unexpected request: %+v", req)
	}

	// Success clears the form; the client keeps no copy.
	m, _ = m.Update(done)
	if m.idNumber.Value() != "" || m.idType != -1 || m.submitting {
		t.Fatal("form must reset after a successful registration")
	}
}

func TestRegistrationFailureKeepsForm(t *testing.T) {
	auth := &fakeAuth{}
	m := newRegisterModel(auth)
	m.idType = 0
	m.idNumber.SetValue("1")
	m.firstName.SetValue("A")
	m.phone.SetValue("07")
	m.email.SetValue("a@b.co")

	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	m, _ = m.Update(registerDoneMsg{err: errTestBoom})
	if m.idNumber.Value() != "1" {
		t.Fatal("form must be retained after a failure")
	}
	if m.submitting {
		t.Fatal("form must unlock after a failure")
	}
}

func TestIDTypeCycles(t *testing.T) {
	m := newRegisterModel(&fakeAuth{})
	m.focus = regFieldIDType

	m, _ = m.Update(key(tea.KeyRight))
	if m.idType != 0 {
		t.Fatalf("expected first option, got %d", m.idType)
	}
	m, _ = m.Update(key(tea.KeyLeft))
	if m.idType != len(idTypes)-1 {
		t.Fatalf("expected wrap to last option, got %d", m.idType)
	}
}
