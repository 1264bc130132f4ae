package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// CodesClient covers the one-time code service.
type CodesClient struct {
	core *core
}

// SendByEmail asks the server to email a fresh OTP. Returns the server's
// message for display.
func (c *CodesClient) SendByEmail(ctx context.Context, email string) (string, error) {
	env, err := c.core.do(ctx, http.MethodPost, "/codes", sendCodeRequest{Email: email}, false)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// GetByID fetches a previously issued code record by id.
func (c *CodesClient) GetByID(ctx context.Context, id string) (string, error) {
	env, err := c.core.do(ctx, http.MethodGet, "/codes/"+id, nil, false)
	if err != nil {
		return "", err
	}
	var code string
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &code); err != nil {
			return "", err
		}
	}
	return code, nil
}
