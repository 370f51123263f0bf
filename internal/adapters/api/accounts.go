package api

import (
	"context"
	"net/http"

	"github.com/messmate/mess-client/internal/core/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegistrationRequest carries the fields the registration endpoint
// expects before OTP verification.
type RegistrationRequest struct {
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Password     string      `json:"password"`
	UserType     domain.Role `json:"user_type"`
	IsTiffinUser bool        `json:"is_tiffin_user"`
	IsMessUser   bool        `json:"is_mess_user"`
}

// Login exchanges credentials for a token pair. Persisting the pair and
// attaching the bearer is the session service's job, not the client's.
func (c *Client) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	var pair domain.TokenPair
	err := c.do(ctx, http.MethodPost, "/accounts/login/", loginRequest{Username: username, Password: password}, &pair)
	return pair, err
}

// Profile fetches the current identity using the attached bearer.
func (c *Client) Profile(ctx context.Context) (*domain.Identity, error) {
	var ident domain.Identity
	if err := c.do(ctx, http.MethodGet, "/accounts/profile/", nil, &ident); err != nil {
		return nil, err
	}
	return &ident, nil
}

func (c *Client) Register(ctx context.Context, req RegistrationRequest) error {
	return c.do(ctx, http.MethodPost, "/accounts/register/", req, nil)
}

// CompleteProfile submits the role-specific profile payload. The shape is
// owned by the backend and varies with the identity's role.
func (c *Client) CompleteProfile(ctx context.Context, profile any) error {
	return c.do(ctx, http.MethodPost, "/accounts/complete-profile/", profile, nil)
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	return c.do(ctx, http.MethodPost, "/accounts/change-password/", body, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) error {
	body := map[string]string{"phone": phone, "otp": otp}
	return c.do(ctx, http.MethodPost, "/accounts/verify-otp/", body, nil)
}

func (c *Client) ResendOTP(ctx context.Context, phone string) error {
	body := map[string]string{"phone": phone}
	return c.do(ctx, http.MethodPost, "/accounts/resend-otp/", body, nil)
}
