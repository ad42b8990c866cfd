package upstream

import (
	"context"
	"time"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

const (
	registerMutation = `mutation Register($email: String!, $password: String!, $name: String!, $adminSecret: String) {
  register(email: $email, password: $password, name: $name, adminSecret: $adminSecret) { message }
}`

	loginMutation = `mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) { accessToken }
}`

	requestPasswordResetMutation = `mutation RequestPasswordReset($email: String!) {
  requestPasswordReset(email: $email) { message }
}`

	resetPasswordMutation = `mutation ResetPassword($token: String!, $newPassword: String!) {
  resetPassword(token: $token, newPassword: $newPassword) { message }
}`

	confirmEmailMutation = `mutation ConfirmEmail($token: String!) {
  confirmEmail(token: $token) { message }
}`

	requestUnlockMutation = `mutation RequestUnlock($email: String!) {
  requestUnlock(email: $email) { message }
}`

	confirmUnlockMutation = `mutation ConfirmUnlock($token: String!) {
  confirmUnlock(token: $token) { message }
}`

	myProfileQuery = `query MyProfile {
  myProfile { id name email isLocked isEmailConfirmed createdAt oldEmail newEmail emailChangedAt role }
}`

	updateProfileMutation = `mutation UpdateProfile($name: String!) {
  updateProfile(name: $name) { message }
}`

	updatePasswordMutation = `mutation UpdatePassword($currentPassword: String!, $newPassword: String!) {
  updatePassword(currentPassword: $currentPassword, newPassword: $newPassword) { message }
}`

	requestEmailUpdateMutation = `mutation RequestEmailUpdate($password: String!, $newEmail: String!) {
  requestEmailUpdate(password: $password, newEmail: $newEmail) { message }
}`

	confirmEmailUpdateMutation = `mutation ConfirmEmailUpdate($token: String!) {
  confirmEmailUpdate(token: $token) { message }
}`

	deleteAccountMutation = `mutation DeleteAccount($password: String!) {
  deleteAccount(password: $password) { message }
}`
)

type messagePayload struct {
	Message string `json:"message"`
}

type profilePayload struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	IsLocked         bool    `json:"isLocked"`
	IsEmailConfirmed bool    `json:"isEmailConfirmed"`
	CreatedAt        float64 `json:"createdAt"`
	OldEmail         string  `json:"oldEmail"`
	NewEmail         string  `json:"newEmail"`
	EmailChangedAt   float64 `json:"emailChangedAt"`
	Role             string  `json:"role"`
}

// Register creates a new account; the message is the API's confirmation text.
func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	vars := map[string]any{
		"email":    input.Email,
		"password": input.Password,
		"name":     input.Name,
	}
	if input.AdminSecret != "" {
		vars["adminSecret"] = input.AdminSecret
	}

	var out struct {
		Register messagePayload `json:"register"`
	}
	if err := c.do(ctx, "", "Register", registerMutation, vars, &out); err != nil {
		return "", err
	}
	return out.Register.Message, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Login struct {
			AccessToken string `json:"accessToken"`
		} `json:"login"`
	}
	vars := map[string]any{"email": email, "password": password}
	if err := c.do(ctx, "", "Login", loginMutation, vars, &out); err != nil {
		return "", err
	}
	if out.Login.AccessToken == "" {
		return "", domain.NewError(domain.KindCredentialInvalid, "login returned no token")
	}
	return out.Login.AccessToken, nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var out struct {
		RequestPasswordReset messagePayload `json:"requestPasswordReset"`
	}
	err := c.do(ctx, "", "RequestPasswordReset", requestPasswordResetMutation, map[string]any{"email": email}, &out)
	return out.RequestPasswordReset.Message, err
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	var out struct {
		ResetPassword messagePayload `json:"resetPassword"`
	}
	vars := map[string]any{"token": token, "newPassword": newPassword}
	err := c.do(ctx, "", "ResetPassword", resetPasswordMutation, vars, &out)
	return out.ResetPassword.Message, err
}

func (c *Client) ConfirmEmail(ctx context.Context, token string) (string, error) {
	var out struct {
		ConfirmEmail messagePayload `json:"confirmEmail"`
	}
	err := c.do(ctx, "", "ConfirmEmail", confirmEmailMutation, map[string]any{"token": token}, &out)
	return out.ConfirmEmail.Message, err
}

func (c *Client) RequestUnlock(ctx context.Context, email string) (string, error) {
	var out struct {
		RequestUnlock messagePayload `json:"requestUnlock"`
	}
	err := c.do(ctx, "", "RequestUnlock", requestUnlockMutation, map[string]any{"email": email}, &out)
	return out.RequestUnlock.Message, err
}

func (c *Client) ConfirmUnlock(ctx context.Context, token string) (string, error) {
	var out struct {
		ConfirmUnlock messagePayload `json:"confirmUnlock"`
	}
	err := c.do(ctx, "", "ConfirmUnlock", confirmUnlockMutation, map[string]any{"token": token}, &out)
	return out.ConfirmUnlock.Message, err
}

// MyProfile fetches the caller's authoritative profile.
func (c *Client) MyProfile(ctx context.Context, bearer string) (*domain.Profile, error) {
	var out struct {
		MyProfile *profilePayload `json:"myProfile"`
	}
	if err := c.do(ctx, bearer, "MyProfile", myProfileQuery, nil, &out); err != nil {
		return nil, err
	}
	if out.MyProfile == nil {
		return nil, domain.NewError(domain.KindTokenInvalid, "profile unavailable for token")
	}

	p := out.MyProfile
	return &domain.Profile{
		ID:               p.ID,
		Name:             p.Name,
		Email:            p.Email,
		Role:             domain.ParseRole(p.Role),
		IsLocked:         p.IsLocked,
		IsEmailConfirmed: p.IsEmailConfirmed,
		CreatedAt:        unixTime(p.CreatedAt),
		OldEmail:         p.OldEmail,
		NewEmail:         p.NewEmail,
		EmailChangedAt:   unixTime(p.EmailChangedAt),
	}, nil
}

func (c *Client) UpdateProfile(ctx context.Context, bearer, name string) error {
	return c.do(ctx, bearer, "UpdateProfile", updateProfileMutation, map[string]any{"name": name}, nil)
}

func (c *Client) UpdatePassword(ctx context.Context, bearer, currentPassword, newPassword string) error {
	vars := map[string]any{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.do(ctx, bearer, "UpdatePassword", updatePasswordMutation, vars, nil)
}

func (c *Client) RequestEmailUpdate(ctx context.Context, bearer, password, newEmail string) error {
	vars := map[string]any{"password": password, "newEmail": newEmail}
	return c.do(ctx, bearer, "RequestEmailUpdate", requestEmailUpdateMutation, vars, nil)
}

func (c *Client) ConfirmEmailUpdate(ctx context.Context, bearer, token string) error {
	return c.do(ctx, bearer, "ConfirmEmailUpdate", confirmEmailUpdateMutation, map[string]any{"token": token}, nil)
}

func (c *Client) DeleteAccount(ctx context.Context, bearer, password string) error {
	return c.do(ctx, bearer, "DeleteAccount", deleteAccountMutation, map[string]any{"password": password}, nil)
}

// unixTime converts the API's unix-seconds timestamps; zero stays zero.
func unixTime(seconds float64) time.Time {
	if seconds == 0 {
		return time.Time{}
	}
	return time.Unix(int64(seconds), 0).UTC()
}
