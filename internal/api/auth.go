package api

import (
	"context"
	"net/http"

	"github.com/fracki1010/edu-cart-app/internal/domain"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Email       string `json:"email"`
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, creds Credentials) (domain.User, string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &resp); err != nil {
		return domain.User{}, "", err
	}
	user := domain.User{
		ID:       resp.ID,
		Username: resp.Username,
		Name:     resp.Name,
		Email:    resp.Email,
		Role:     resp.Role,
	}
	return user, resp.AccessToken, nil
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Register creates an account. The caller follows up with Login; the API
// does not hand out a token on registration.
func (c *Client) Register(ctx context.Context, reg Registration) (string, error) {
	var resp registerResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, reg, &resp); err != nil {
		return "", err
	}
	return resp.Username, nil
}

type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	return c.do(ctx, http.MethodPatch, "/auth/me", nil, update, nil)
}
