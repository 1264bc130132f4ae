// Package api holds the typed REST clients for the member portal backend.
//
// Four independent services hang off one base URL: auth (register/login),
// one-time codes, users (bearer-authenticated) and the AI assistant. Calls
// never retry; a failure surfaces once to the caller and any retry is a fresh
// user action.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/afyalink/afyaterm/internal/session"
)

// genericErrMsg is shown when the server gives us nothing usable.
const genericErrMsg = "something went wrong, please try again"

// APIError is a request that reached the server and came back non-2xx. The
// message is the server's own when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Client bundles the portal's sub-clients behind one base URL.
type Client struct {
	Auth  *AuthClient
	Codes *CodesClient
	Users *UsersClient
	AI    *AIClient
}

func New(baseURL string, sess *session.Store, logger *log.Logger) *Client {
	core := &core{
		baseURL: baseURL,
		// No timeout: requests wait on the network stack, matching the
		// portal's behavior. Retries are always user-initiated.
		http:    &http.Client{},
		session: sess,
		log:     logger,
	}
	return &Client{
		Auth:  &AuthClient{core: core},
		Codes: &CodesClient{core: core},
		Users: &UsersClient{core: core},
		AI:    &AIClient{core: core},
	}
}

type core struct {
	baseURL string
	http    *http.Client
	session *session.Store
	log     *log.Logger
}

// do issues one JSON request and decodes the envelope. When bearer is set the
// current session token, if any, is attached as Authorization.
func (c *core) do(ctx context.Context, method, path string, body any, bearer bool) (*Envelope, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	if bearer && c.session != nil {
		if sess, ok := c.session.Current(); ok {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	c.log.Debug("request", "method", method, "path", path, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "path", path, "request_id", reqID, "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	var env Envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && resp.StatusCode < 400 {
		return nil, decodeErr
	}

	if resp.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = genericErrMsg
		}
		c.log.Warn("server error", "path", path, "status", resp.StatusCode, "request_id", reqID, "message", msg)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return &env, nil
}
