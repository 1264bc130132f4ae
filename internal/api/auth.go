package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// AuthClient covers registration and login.
type AuthClient struct {
	core *core
}

// Register submits a new member record. Returns the server's message.
func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) (string, error) {
	env, err := c.core.do(ctx, http.MethodPost, "/register", req, false)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Login exchanges {email, id_number, otp} for a session token.
func (c *AuthClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	env, err := c.core.do(ctx, http.MethodPost, "/login", req, false)
	if err != nil {
		return nil, err
	}
	var data LoginData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, err
		}
	}
	return &LoginResponse{Message: env.Message, Data: data}, nil
}
