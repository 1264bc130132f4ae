// Package ui is the terminal front end of the member portal: an application
// shell with a navigation bar, the routed pages, toast notifications and a
// floating chat widget.
package ui

import (
	"context"

	"github.com/afyalink/afyaterm/internal/api"
)

// route identifies the page currently shown.
type route int

const (
	routeHome route = iota
	routeDevelopers
	routeRegister
	routeLogin
	routeAccount
	routeChat
)

// navigateMsg switches the active page.
type navigateMsg struct {
	to route
}

// logoutMsg asks the shell to drop the session and go home.
type logoutMsg struct{}

// Narrow views of the API clients so page models can be driven by fakes in
// tests.

type authAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) (string, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
}

type codesAPI interface {
	SendByEmail(ctx context.Context, email string) (string, error)
}

type usersAPI interface {
	GetByID(ctx context.Context, id string) (*api.User, error)
}

type aiAPI interface {
	Ask(ctx context.Context, query, userID string) (string, error)
}
