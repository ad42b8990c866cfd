package api

import (
	"io"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/lamesa/ordering-gateway/internal/core/ports"
	"github.com/lamesa/ordering-gateway/internal/pkg/config"
	"github.com/lamesa/ordering-gateway/pkg/logger"
)

type nilUpstream struct {
	ports.Upstream
}

type nilQueue struct{}

func (nilQueue) Enqueue(string, string) {}

func newTestRouter(t *testing.T) map[string]bool {
	t.Helper()

	logger.Reset()
	logger.Init(logger.Options{Output: io.Discard})
	t.Cleanup(logger.Reset)

	cfg := &config.Config{}
	e := NewRouter(cfg, redis.NewClient(&redis.Options{}), nilUpstream{}, nilQueue{})

	routes := make(map[string]bool)
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestRouter_MenuReadableByBothRoles(t *testing.T) {
	routes := newTestRouter(t)

	// Clients browse the menu; admins must be able to read the catalog
	// they manage, not just mutate it blind.
	for _, want := range []string{"GET /client/menu", "GET /admin/menu"} {
		if !routes[want] {
			t.Errorf("route %q not registered", want)
		}
	}
}

func TestRouter_CoreSurfaceRegistered(t *testing.T) {
	routes := newTestRouter(t)

	for _, want := range []string{
		"POST /auth/login",
		"POST /client/checkout",
		"GET /payment/result",
		"PATCH /admin/orders/:id/status",
		"GET /health",
		"GET /metrics",
	} {
		if !routes[want] {
			t.Errorf("route %q not registered", want)
		}
	}
}
