// Package service implements the business logic layer of the token gate.
// It issues fixture tokens, authorizes bearer tokens against the engine and
// keeps an audit trail of every authorization verdict.
package service

import (
	"errors"
	"log/slog"
	"time"

	"git.sr.ht/~jakintosh/tokengate/pkg/tokens"
)

var (
	ErrMissingAuthorization = errors.New("missing Authorization header")
	ErrInvalidScheme        = errors.New("invalid scheme (expected 'Bearer <token>')")
	ErrEmptyToken           = errors.New("empty token")
	ErrTokenRejected        = errors.New("token rejected")
	ErrUnknownMode          = errors.New("unknown mode")
	ErrInternal             = errors.New("internal error")
)

const (
	DefaultTokenLifetime = time.Hour
	DefaultExpiredOffset = 30 * time.Second
)

// Service coordinates token issuing and authorization. It depends on a
// VerdictStore for the audit trail and on the engine's Issuer and Validator.
type Service struct {
	verdicts       VerdictStore
	tokenIssuer    tokens.Issuer
	tokenValidator tokens.Validator
	lifetime       time.Duration
	expiredOffset  time.Duration
	now            func() time.Time
	log            *slog.Logger
}

type Option func(*Service)

// WithLifetime sets how long issued tokens stay valid.
func WithLifetime(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lifetime = d
		}
	}
}

// WithExpiredOffset sets how far in the past expired fixtures expire.
func WithExpiredOffset(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.expiredOffset = d
		}
	}
}

// WithClock must match the clock given to the validator.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func New(
	verdicts VerdictStore,
	issuer tokens.Issuer,
	validator tokens.Validator,
	opts ...Option,
) *Service {
	s := &Service{
		verdicts:       verdicts,
		tokenIssuer:    issuer,
		tokenValidator: validator,
		lifetime:       DefaultTokenLifetime,
		expiredOffset:  DefaultExpiredOffset,
		now:            time.Now,
		log:            slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service's notion of the current time.
func (s *Service) Now() time.Time {
	return s.now()
}
