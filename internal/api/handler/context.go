package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lamesa/ordering-gateway/internal/api/middleware"
	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

// ctxSession extracts the session injected by the route guard and performs a
// fast-fail check before any upstream call: a guarded handler without a
// token means the guard did not run — reject rather than send an
// unauthenticated upstream call on a protected surface.
func ctxSession(c echo.Context) (domain.Session, error) {
	sess := middleware.Session(c)
	if !sess.Authenticated() {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}

// ctxBearer is shorthand for the guarded session's upstream credential.
func ctxBearer(c echo.Context) (string, error) {
	sess, err := ctxSession(c)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}
