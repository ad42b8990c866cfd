package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lamesa/ordering-gateway/internal/api/middleware"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

// ProfileHandler manages the caller's own account.
type ProfileHandler struct {
	account  ports.AccountAPI
	sessions ports.SessionResolver
	tokens   ports.TokenStore
}

func NewProfileHandler(account ports.AccountAPI, sessions ports.SessionResolver, tokens ports.TokenStore) *ProfileHandler {
	return &ProfileHandler{account: account, sessions: sessions, tokens: tokens}
}

type updateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type requestEmailUpdateRequest struct {
	Password string `json:"password" validate:"required"`
	NewEmail string `json:"new_email" validate:"required,email"`
}

type confirmEmailUpdateRequest struct {
	Token string `json:"token" validate:"required"`
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// Get handles GET /profile. The resolver already memoizes the upstream
// profile, so this is usually a cache hit.
//
// @Summary      Get the caller's profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if sess.Profile != nil {
		return c.JSON(http.StatusOK, sess.Profile)
	}

	// Still pending at guard time; fetch definitively now.
	fresh, err := h.sessions.Refetch(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	if fresh.Profile == nil {
		return h.fetchDirect(c)
	}
	return c.JSON(http.StatusOK, fresh.Profile)
}

func (h *ProfileHandler) fetchDirect(c echo.Context) error {
	bearer, err := ctxBearer(c)
	if err != nil {
		return err
	}
	profile, err := h.account.MyProfile(c.Request().Context(), bearer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update handles PUT /profile.
//
// @Summary      Update the caller's display name
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "New name"
// @Success      200   {object}  domain.Profile
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bearer, err := ctxBearer(c)
	if err != nil {
		return err
	}
	if err := h.account.UpdateProfile(c.Request().Context(), bearer, req.Name); err != nil {
		return err
	}

	sess, err := h.sessions.Refetch(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	if sess.Profile == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, sess.Profile)
}

// UpdatePassword handles PUT /profile/password.
//
// @Summary      Change the caller's password
// @Tags         profile
// @Accept       json
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /profile/password [put]
func (h *ProfileHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bearer, err := ctxBearer(c)
	if err != nil {
		return err
	}

	err = h.account.UpdatePassword(c.Request().Context(), bearer, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestEmailUpdate handles POST /profile/email.
//
// @Summary      Start an email change
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      requestEmailUpdateRequest  true  "Password and new address"
// @Success      200   {object}  map[string]string
// @Router       /profile/email [post]
func (h *ProfileHandler) RequestEmailUpdate(c echo.Context) error {
	var req requestEmailUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bearer, err := ctxBearer(c)
	if err != nil {
		return err
	}

	err = h.account.RequestEmailUpdate(c.Request().Context(), bearer, req.Password, req.NewEmail)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "confirmation sent to the new address"})
}

// ConfirmEmailUpdate handles POST /profile/email/confirm.
//
// @Summary      Confirm an email change
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      confirmEmailUpdateRequest  true  "Confirmation token"
// @Success      200   {object}  map[string]string
// @Router       /profile/email/confirm [post]
func (h *ProfileHandler) ConfirmEmailUpdate(c echo.Context) error {
	var req confirmEmailUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bearer, err := ctxBearer(c)
	if err != nil {
		return err
	}

	err = h.account.ConfirmEmailUpdate(c.Request().Context(), bearer, req.Token)
	if err != nil {
		return err
	}

	// The address changed upstream; the memoized profile is stale.
	if _, err := h.sessions.Refetch(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "email updated"})
}

// Delete handles DELETE /profile. On success the local session is torn down.
//
// @Summary      Delete the caller's account
// @Tags         profile
// @Accept       json
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /profile [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	var req deleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bearer, err := ctxBearer(c)
	if err != nil {
		return err
	}
	if err := h.account.DeleteAccount(c.Request().Context(), bearer, req.Password); err != nil {
		return err
	}

	if err := h.tokens.Clear(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
