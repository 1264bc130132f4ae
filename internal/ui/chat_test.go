package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeAI struct {
	asked  []string
	users  []string
	answer string
	err    error
}

func (f *fakeAI) Ask(_ context.Context, query, userID string) (string, error) {
	f.asked = append(f.asked, query)
	f.users = append(f.users, userID)
	return f.answer, f.err
}

// drain runs a command tree and returns the first answerMsg it produces.
func drain(cmd tea.Cmd) (answerMsg, bool) {
	if cmd == nil {
		return answerMsg{}, false
	}
	switch msg := cmd().(type) {
	case answerMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if am, ok := c().(answerMsg); ok {
				return am, true
			}
		}
	}
	return answerMsg{}, false
}

func newTestPane(ai aiAPI) chatPane {
	pane := newChatPane("page", ai, nil)
	return pane.resize(60, 12)
}

func TestSendAppendsUserMessageImmediately(t *testing.T) {
	ai := &fakeAI{answer: "Hi there."}
	pane := newTestPane(ai)
	pane.input.SetValue("Hello")

	pane, cmd := pane.send()
	if len(pane.messages) != 1 {
		t.Fatalf("expected one transcript entry, got %d", len(pane.messages))
	}
	if msg := pane.messages[0]; msg.text != "Hello" || !msg.isUser {
		t.Fatalf("unexpected entry: %+v", msg)
	}
	if !pane.pending {
		t.Fatal("pane must be pending while the question is in flight")
	}
	if pane.input.Value() != "" {
		t.Fatal("input must clear on send")
	}

	am, ok := drain(cmd)
	if !ok {
		t.Fatal("expected an answerMsg from the command")
	}
	pane, _ = pane.Update(am)
	if len(pane.messages) != 2 {
		t.Fatalf("expected exactly one bot entry, got %d total", len(pane.messages))
	}
	if msg := pane.messages[1]; msg.isUser || msg.text != "Hi there." {
		t.Fatalf("unexpected bot entry: %+v", msg)
	}
	if pane.pending {
		t.Fatal("pane must unlock after the answer")
	}
	if len(ai.asked) != 1 || ai.asked[0] != "Hello" {
		t.Fatalf("unexpected questions: %v", ai.asked)
	}
}

func TestSendFailureAppendsFallback(t *testing.T) {
	ai := &fakeAI{err: errors.New("boom")}
	pane := newTestPane(ai)
	pane.input.SetValue("Hello")

	pane, cmd := pane.send()
	am, ok := drain(cmd)
	if !ok {
		t.Fatal("expected an answerMsg")
	}
	pane, _ = pane.Update(am)
	if len(pane.messages) != 2 {
		t.Fatalf("expected exactly one bot entry, got %d total", len(pane.messages))
	}
	if pane.messages[1].text != fallbackAnswer {
		t.Fatalf("expected the fixed fallback, got %q", pane.messages[1].text)
	}
}

func TestEmptyInputDoesNotSend(t *testing.T) {
	ai := &fakeAI{}
	pane := newTestPane(ai)
	pane.input.SetValue("   ")

	pane, cmd := pane.send()
	if cmd != nil || len(pane.messages) != 0 || pane.pending {
		t.Fatal("blank input must not send")
	}
	if len(ai.asked) != 0 {
		t.Fatal("no question may be issued")
	}
}

func TestSecondSendBlockedWhilePending(t *testing.T) {
	ai := &fakeAI{answer: "ok"}
	pane := newTestPane(ai)
	pane.input.SetValue("first")
	pane, _ = pane.send()

	pane.input.SetValue("second")
	pane, cmd := pane.send()
	if cmd != nil {
		t.Fatal("send must be disabled while a request is pending")
	}
	if len(pane.messages) != 1 {
		t.Fatalf("no second entry may be appended, got %d", len(pane.messages))
	}

	// Typing is also locked.
	pane, _ = pane.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if pane.input.Value() != "second" {
		t.Fatalf("input must not accept keys while pending, got %q", pane.input.Value())
	}
}

func TestAnswerForOtherPaneIgnored(t *testing.T) {
	pane := newTestPane(&fakeAI{})
	pane, _ = pane.Update(answerMsg{pane: "widget", text: "stray"})
	if len(pane.messages) != 0 {
		t.Fatal("answers addressed to another pane must be ignored")
	}
}

func TestWidgetOpensWithGreeting(t *testing.T) {
	w := newChatWidget(&fakeAI{}, nil)
	if len(w.pane.messages) != 1 || w.pane.messages[0].text != widgetGreeting {
		t.Fatalf("expected the greeting, got %+v", w.pane.messages)
	}
	if w.pane.messages[0].isUser {
		t.Fatal("the greeting is a bot message")
	}
}
