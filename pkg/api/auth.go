package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"campusclone/pkg/user"
)

type RegisterReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"full_name"`
}

func (c *Client) Register(ctx context.Context, req *RegisterReq) (*user.User, error) {
	u := &user.User{}
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, u)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// Login submits the credentials form-encoded, as the backend expects, and
// returns the access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp struct {
		AccessToken string `json:"access_token"`
	}

	err := c.do(ctx, http.MethodPost, "/auth/login",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &resp)
	if err != nil {
		return "", err
	}

	return resp.AccessToken, nil
}

func (c *Client) Me(ctx context.Context) (*user.User, error) {
	u := &user.User{}
	err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, u)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (c *Client) UpdateMe(ctx context.Context, patch *user.Patch) (*user.User, error) {
	u := &user.User{}
	err := c.doJSON(ctx, http.MethodPut, "/auth/me", patch, u)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// ForgotPassword asks the backend to mail reset instructions. The backend
// answers 200 whether or not the address is registered.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	payload := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}

	return c.doJSON(ctx, http.MethodPost, "/auth/change-password", payload, nil)
}
