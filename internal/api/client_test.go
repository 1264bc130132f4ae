package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/afyalink/afyaterm/internal/session"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := session.NewStore(t.TempDir())
	return New(srv.URL, sess, log.New(io.Discard)), sess
}

func TestRegisterSendsContract(t *testing.T) {
	var got map[string]any
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/register" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad body: %v", err)
		}
		json.NewEncoder(w).Encode(Envelope{Status: "success", Message: "registered"})
	})

	msg, err := client.Auth.Register(context.Background(), RegisterRequest{
		IDType:    "Kenyan Citizen",
		IDNumber:  "12345678",
		Firstname: "Wanjiku",
		Contact:   "0700000000",
		Email:     "wanjiku@example.com",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if msg != "registered" {
		t.Fatalf("unexpected message: %s", msg)
	}
	for _, key := range []string{"idType", "id_number", "firstname", "contact", "email"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("request body missing %q: %v", key, got)
		}
	}
}

func TestLoginDecodesSessionTriple(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.OTP != "1234" || req.IDNumber != "99" {
			t.Errorf("unexpected login request: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "success",
			"message": "welcome back",
			"data":    map[string]string{"token": "tok", "id": "u-1", "role": "member"},
		})
	})

	resp, err := client.Auth.Login(context.Background(), LoginRequest{
		Email:    "a@b.co",
		IDNumber: "99",
		OTP:      "1234",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Data.Token != "tok" || resp.Data.ID != "u-1" || resp.Data.Role != "member" {
		t.Fatalf("unexpected login data: %+v", resp.Data)
	}
	if resp.Message != "welcome back" {
		t.Fatalf("unexpected message: %s", resp.Message)
	}
}

func TestServerMessageSurfacesOnError(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(Envelope{Status: "error", Message: "invalid otp"})
	})

	_, err := client.Auth.Login(context.Background(), LoginRequest{})
	if err == nil {
		t.Fatal("expected an error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "invalid otp" || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestErrorWithoutBodyGetsGenericMessage(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Codes.SendByEmail(context.Background(), "a@b.co")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != genericErrMsg {
		t.Fatalf("expected generic message, got %q", apiErr.Message)
	}
}

func TestUsersAttachesBearerToken(t *testing.T) {
	var auth string
	client, sess := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "success",
			"message": "ok",
			"data": map[string]string{
				"id": "u-1", "email": "a@b.co", "contact": "0700",
				"id_type": "Refugee", "id_number": "7", "fistname": "Amina",
			},
		})
	})
	if err := sess.Save("tok-42", "u-1", "member"); err != nil {
		t.Fatalf("session save failed: %v", err)
	}

	user, err := client.Users.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if auth != "Bearer tok-42" {
		t.Fatalf("expected bearer header, got %q", auth)
	}
	// The remote contract misspells firstname as "fistname".
	if user.Firstname != "Amina" || user.IDType != "Refugee" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUsersOmitsBearerWhenLoggedOut(t *testing.T) {
	var auth string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"status": "success", "message": "ok", "data": []any{}})
	})

	if _, err := client.Users.GetAll(context.Background()); err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if auth != "" {
		t.Fatalf("expected no Authorization header, got %q", auth)
	}
}

func TestAskReturnsAnswerText(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["query"] != "what is covered?" {
			t.Errorf("unexpected query: %v", req)
		}
		if req["user_id"] != "u-1" {
			t.Errorf("expected user_id, got %v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success", "message": "ok", "data": "Outpatient and inpatient care.",
		})
	})

	answer, err := client.AI.Ask(context.Background(), "what is covered?", "u-1")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != "Outpatient and inpatient care." {
		t.Fatalf("unexpected answer: %s", answer)
	}
}

func TestGetCodeByID(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/codes/abc" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "success", "message": "ok", "data": "4321"})
	})

	code, err := client.Codes.GetByID(context.Background(), "abc")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if code != "4321" {
		t.Fatalf("unexpected code: %s", code)
	}
}
