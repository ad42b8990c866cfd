package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/api/metrics"
	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
	"github.com/lamesa/ordering-gateway/internal/core/service"
)

const sessionKey = "session"

const loginPath = "/login"

// Guard protects a route group with the route-guard state machine. The
// allowed list is the route's role allowlist; empty means any authenticated
// role. Every outcome is a navigation response, never a bare failure: a
// broken session resolution fails closed to the login redirect.
func Guard(sessions ports.SessionResolver, tokens ports.TokenStore, log zerolog.Logger, allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessions.Resolve(c.Request().Context(), SessionID(c))
			if err != nil {
				log.Error().Err(err).Str("path", c.Path()).Msg("session resolution failed, failing closed")
				metrics.GuardDecisionsTotal.WithLabelValues(service.DecisionLogin.String()).Inc()
				return c.Redirect(http.StatusFound, loginPath)
			}

			decision, role := service.EvaluateGuard(sess, allowed)
			metrics.GuardDecisionsTotal.WithLabelValues(decision.String()).Inc()

			switch decision {
			case service.DecisionLogin:
				return c.Redirect(http.StatusFound, loginPath)

			case service.DecisionClearAndLogin:
				if err := tokens.Clear(c.Request().Context(), SessionID(c)); err != nil {
					log.Warn().Err(err).Msg("token clear failed for invalid session")
				}
				return c.Redirect(http.StatusFound, loginPath)

			case service.DecisionWait:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusAccepted, map[string]string{"status": "verifying"})

			case service.DecisionRoleHome:
				return c.Redirect(http.StatusFound, role.HomePath())

			default:
				c.Set(sessionKey, sess)
				return next(c)
			}
		}
	}
}

// Session returns the resolved session injected by Guard. The zero session
// is returned on unguarded routes.
func Session(c echo.Context) domain.Session {
	sess, _ := c.Get(sessionKey).(domain.Session)
	return sess
}
