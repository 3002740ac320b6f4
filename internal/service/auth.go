package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"git.sr.ht/~jakintosh/tokengate/internal/logging"
	"git.sr.ht/~jakintosh/tokengate/pkg/tokens"
)

const bearerPrefix = "Bearer "

// Authorization is an accepted bearer token and the id of its verdict.
type Authorization struct {
	Result    *tokens.Result
	VerdictID string
}

// Authorize checks an Authorization header value and validates the bearer
// token. Every attempt is recorded, accepted or not.
func (s *Service) Authorize(
	authHeader string,
) (
	*Authorization,
	error,
) {
	token, err := extractBearer(authHeader)
	if err != nil {
		s.record(OutcomeRejected, err.Error(), nil)
		return nil, err
	}

	result, err := s.tokenValidator.Validate(token)
	if err != nil {
		s.record(OutcomeRejected, err.Error(), nil)
		return nil, fmt.Errorf("%w: %w", ErrTokenRejected, err)
	}

	id := s.record(OutcomeAccepted, "", result)
	return &Authorization{Result: result, VerdictID: id}, nil
}

func extractBearer(
	authHeader string,
) (
	string,
	error,
) {
	if authHeader == "" {
		return "", ErrMissingAuthorization
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidScheme
	}
	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

// record stores a verdict. A failing audit write is logged and does not
// change the outcome of the authorization.
func (s *Service) record(
	outcome Outcome,
	reason string,
	result *tokens.Result,
) string {
	verdict := &Verdict{
		ID:      uuid.NewString(),
		Time:    s.now().UTC(),
		Outcome: outcome,
		Reason:  reason,
	}
	if result != nil {
		verdict.Subject = result.Claims.Subject()
		verdict.Nesting = result.Nesting
	}

	if s.verdicts == nil {
		return verdict.ID
	}
	if err := s.verdicts.InsertVerdict(verdict); err != nil {
		s.log.Error("failed to record verdict",
			"verdict", verdict.ID,
			"outcome", string(outcome),
			logging.Error(err),
		)
	}
	return verdict.ID
}
