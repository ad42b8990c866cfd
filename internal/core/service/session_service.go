package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/lamesa/ordering-gateway/internal/api/metrics"
	"github.com/lamesa/ordering-gateway/internal/core/claims"
	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

const (
	defaultResolveBudget = 2 * time.Second
	fetchTimeout         = 10 * time.Second
)

// SessionService resolves the per-request session view: token presence from
// the store, a best-effort claims hint, and the authoritative profile fetch,
// memoized per session and collapsed under singleflight.
type SessionService struct {
	tokens  ports.TokenStore
	cache   ports.ProfileCache
	account ports.AccountAPI
	reader  *claims.Reader
	group   singleflight.Group
	// budget bounds how long Resolve waits for the authoritative fetch
	// before answering with a loading session. The fetch itself keeps
	// running and lands in the cache for the next request.
	budget time.Duration
	log    zerolog.Logger
}

func NewSessionService(tokens ports.TokenStore, cache ports.ProfileCache, account ports.AccountAPI, budget time.Duration, log zerolog.Logger) *SessionService {
	if budget <= 0 {
		budget = defaultResolveBudget
	}
	return &SessionService{
		tokens:  tokens,
		cache:   cache,
		account: account,
		reader:  claims.NewReader(log),
		budget:  budget,
		log:     log,
	}
}

// Resolve builds the session for sessionID.
//
// Role precedence: authoritative profile role first, claims hint while the
// fetch is pending, CLIENT as the default classification when a token exists
// but neither source produced a role after resolution settled.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (domain.Session, error) {
	token, err := s.tokens.Get(ctx, sessionID)
	if err != nil {
		return domain.Session{}, domain.WrapError(domain.KindNetworkUnreachable, "token store unavailable", err)
	}
	if token == "" {
		metrics.SessionsResolvedTotal.WithLabelValues("anonymous").Inc()
		return domain.Session{}, nil
	}

	sess := domain.Session{Token: token}
	if hint, ok := s.reader.Decode(token); ok {
		sess.Role = domain.ParseRole(hint.Role)
	}

	if profile, ok, err := s.cache.Get(ctx, sessionID); err == nil && ok {
		metrics.SessionsResolvedTotal.WithLabelValues("profile").Inc()
		sess.Profile = profile
		sess.Role = profile.Role
		return sess, nil
	} else if err != nil {
		s.log.Warn().Err(err).Msg("profile cache read failed")
	}

	return s.fetchWithinBudget(ctx, sessionID, sess), nil
}

// Refetch drops the memoized profile and resolves again.
func (s *SessionService) Refetch(ctx context.Context, sessionID string) (domain.Session, error) {
	if err := s.cache.Invalidate(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Msg("profile cache invalidation failed")
	}
	return s.Resolve(ctx, sessionID)
}

type fetchOutcome struct {
	profile *domain.Profile
	err     error
}

// fetchWithinBudget starts (or joins) the authoritative profile fetch and
// waits for it up to the resolve budget. On timeout the session is returned
// as loading with whatever role the claims hint produced.
func (s *SessionService) fetchWithinBudget(ctx context.Context, sessionID string, sess domain.Session) domain.Session {
	ch := s.group.DoChan(sessionID, func() (interface{}, error) {
		// Detached from the request context: an abandoned navigation must
		// not cancel the fetch other requests are waiting on.
		fetchCtx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		profile, err := s.account.MyProfile(fetchCtx, sess.Token)
		if err != nil {
			return fetchOutcome{err: err}, nil
		}
		if err := s.cache.Set(fetchCtx, sessionID, *profile); err != nil {
			s.log.Warn().Err(err).Msg("profile cache write failed")
		}
		return fetchOutcome{profile: profile}, nil
	})

	select {
	case <-ctx.Done():
		metrics.SessionsResolvedTotal.WithLabelValues("pending").Inc()
		sess.IsLoading = true
		return sess
	case <-time.After(s.budget):
		metrics.SessionsResolvedTotal.WithLabelValues("pending").Inc()
		sess.IsLoading = true
		return sess
	case res := <-ch:
		outcome := res.Val.(fetchOutcome)
		if outcome.err != nil {
			return s.settleFailure(sess, outcome.err)
		}
		metrics.SessionsResolvedTotal.WithLabelValues("profile").Inc()
		sess.Profile = outcome.profile
		sess.Role = outcome.profile.Role
		return sess
	}
}

// settleFailure classifies a finished-but-failed fetch. Only a definitive
// auth rejection invalidates the session; transient upstream trouble keeps
// the token and falls back to the hint, defaulting to CLIENT.
func (s *SessionService) settleFailure(sess domain.Session, err error) domain.Session {
	switch domain.KindOf(err) {
	case domain.KindTokenInvalid, domain.KindCredentialInvalid:
		metrics.SessionsResolvedTotal.WithLabelValues("invalid").Inc()
		s.log.Info().Err(err).Msg("bearer token rejected upstream")
		sess.Invalid = true
		sess.Role = domain.RoleUnknown
		sess.Profile = nil
		return sess
	default:
		metrics.SessionsResolvedTotal.WithLabelValues("hint").Inc()
		s.log.Warn().Err(err).Msg("profile fetch failed, using role fallback")
		if !sess.Role.Known() {
			sess.Role = domain.RoleClient
		}
		return sess
	}
}
