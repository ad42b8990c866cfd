package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/api/middleware"
	"github.com/lamesa/ordering-gateway/internal/core/claims"
	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

// AuthHandler fronts the ordering API's identity surface and owns the
// session's token lifecycle.
type AuthHandler struct {
	account ports.AccountAPI
	tokens  ports.TokenStore
	reader  *claims.Reader
}

func NewAuthHandler(account ports.AccountAPI, tokens ports.TokenStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{account: account, tokens: tokens, reader: claims.NewReader(log)}
}

type registerRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	AdminSecret string `json:"admin_secret,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type loginResponse struct {
	Role string `json:"role"`
	// Home is the canonical landing path for the role, for the caller to
	// navigate to.
	Home string `json:"home"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginInfoResponse struct {
	RememberedEmail string `json:"remembered_email,omitempty"`
}

// Register creates a new account upstream.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.account.Register(c.Request().Context(), ports.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		AdminSecret: req.AdminSecret,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: message})
}

// Login exchanges credentials for an upstream bearer token and stores it for
// this browser session. The token never reaches the browser.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, err := h.account.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	sessionID := middleware.SessionID(c)
	if err := h.tokens.Set(ctx, sessionID, token); err != nil {
		return err
	}
	if req.Remember {
		if err := h.tokens.RememberEmail(ctx, sessionID, req.Email); err != nil {
			return err
		}
	}

	// Role from the claims hint only: good enough to pick a landing page,
	// the guard re-derives it authoritatively on the next navigation.
	role := domain.RoleClient
	if hint, ok := h.reader.Decode(token); ok {
		if parsed := domain.ParseRole(hint.Role); parsed.Known() {
			role = parsed
		}
	}
	return c.JSON(http.StatusOK, loginResponse{Role: string(role), Home: role.HomePath()})
}

// Logout clears the stored token.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.tokens.Clear(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// LoginInfo serves login-form prefill data.
//
// @Summary      Login form prefill
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginInfoResponse
// @Router       /auth/login-info [get]
func (h *AuthHandler) LoginInfo(c echo.Context) error {
	email, err := h.tokens.RememberedEmail(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginInfoResponse{RememberedEmail: email})
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// RequestPasswordReset asks the ordering API to email a reset link.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      emailRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Router       /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.account.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message})
}

// ResetPassword completes a password reset with the emailed token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset token and new password"
// @Success      200   {object}  messageResponse
// @Router       /auth/password-reset/confirm [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.account.ResetPassword(c.Request().Context(), req.Token, req.NewPassword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message})
}

// ConfirmAccount confirms a freshly registered account's email.
//
// @Summary      Confirm account email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Confirmation token"
// @Success      200   {object}  messageResponse
// @Router       /auth/confirm-account [post]
func (h *AuthHandler) ConfirmAccount(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.account.ConfirmEmail(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message})
}

// RequestUnlock asks the ordering API to email an account-unlock link.
//
// @Summary      Request account unlock
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      emailRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Router       /auth/unlock [post]
func (h *AuthHandler) RequestUnlock(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.account.RequestUnlock(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message})
}

// ConfirmUnlock completes an account unlock with the emailed token.
//
// @Summary      Confirm account unlock
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Unlock token"
// @Success      200   {object}  messageResponse
// @Router       /auth/unlock/confirm [post]
func (h *AuthHandler) ConfirmUnlock(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.account.ConfirmUnlock(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message})
}
