// Package client is a minimal API client for the forum. Its Login call
// reproduces the frontend behavior of consulting the local throttle
// before the credentials ever leave the machine.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/KAKADIVA/testePFI/internal/throttle"
)

// Identity is the identity summary returned by login and register.
type Identity struct {
	ID           uint   `json:"id"`
	Nome         string `json:"nome"`
	Profissional bool   `json:"profissional"`
}

// ErrInvalidCredentials is the single outcome for every failed login,
// regardless of which check failed server-side.
var ErrInvalidCredentials = fmt.Errorf("e-mail ou senha inválidos")

// Client talks to a forum server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Guard   *throttle.Guard
}

// New creates a Client. guard may be nil to disable local throttling.
func New(baseURL string, guard *throttle.Guard) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{},
		Guard:   guard,
	}
}

type loginReq struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Login authenticates against the server. While the local lock window is
// active the attempt is refused without any HTTP request; failures feed
// the throttle, success resets it.
func (c *Client) Login(email, senha string) (*Identity, error) {
	if c.Guard != nil {
		if err := c.Guard.Check(); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(loginReq{Email: email, Senha: senha})
	if err != nil {
		return nil, fmt.Errorf("encode login: %w", err)
	}

	resp, err := c.HTTP.Post(c.BaseURL+"/usuarios/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("post login: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if c.Guard != nil {
			_ = c.Guard.RecordSuccess()
		}
		var id Identity
		if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
			return nil, fmt.Errorf("decode login response: %w", err)
		}
		return &id, nil

	case http.StatusUnauthorized:
		if c.Guard != nil {
			_ = c.Guard.RecordFailure()
		}
		return nil, ErrInvalidCredentials

	default:
		return nil, fmt.Errorf("login: unexpected status %d", resp.StatusCode)
	}
}
