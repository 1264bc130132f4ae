package api

import "encoding/json"

// Envelope is the response wrapper every portal endpoint uses.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// RegisterRequest is the body for POST /register.
type RegisterRequest struct {
	IDType    string `json:"idType"`
	IDNumber  string `json:"id_number"`
	Firstname string `json:"firstname"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
}

// LoginRequest is the body for POST /login. OTP is the four digits
// concatenated.
type LoginRequest struct {
	Email    string `json:"email"`
	IDNumber string `json:"id_number"`
	OTP      string `json:"otp"`
}

// LoginData is the payload of a successful login.
type LoginData struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Role  string `json:"role"`
}

// LoginResponse carries the login payload plus the server's message for
// display.
type LoginResponse struct {
	Message string
	Data    LoginData
}

// User is a member profile as the portal returns it. The "fistname" spelling
// is the remote contract's, not ours.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	IDType    string `json:"id_type"`
	IDNumber  string `json:"id_number"`
	Firstname string `json:"fistname"`
}

type askRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id,omitempty"`
}

type sendCodeRequest struct {
	Email string `json:"email"`
}
