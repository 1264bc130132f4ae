package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// UsersClient covers member profile lookups. Every call carries the current
// session token as a bearer credential; no other sub-client does.
type UsersClient struct {
	core *core
}

// GetByID fetches one member profile.
func (c *UsersClient) GetByID(ctx context.Context, id string) (*User, error) {
	env, err := c.core.do(ctx, http.MethodGet, "/users/"+id, nil, true)
	if err != nil {
		return nil, err
	}
	var user User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAll fetches every member profile visible to the caller.
func (c *UsersClient) GetAll(ctx context.Context) ([]User, error) {
	env, err := c.core.do(ctx, http.MethodGet, "/users", nil, true)
	if err != nil {
		return nil, err
	}
	var users []User
	if err := json.Unmarshal(env.Data, &users); err != nil {
		return nil, err
	}
	return users, nil
}
