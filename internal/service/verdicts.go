package service

import "fmt"

const (
	DefaultVerdictLimit = 20
	MaxVerdictLimit     = 100
)

// VerdictSummary counts stored verdicts per outcome.
type VerdictSummary struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// RecentVerdicts returns the newest verdicts first. A limit of zero or less
// selects the default; larger limits are clamped.
func (s *Service) RecentVerdicts(
	limit int,
) (
	[]Verdict,
	error,
) {
	if limit <= 0 {
		limit = DefaultVerdictLimit
	}
	if limit > MaxVerdictLimit {
		limit = MaxVerdictLimit
	}
	if s.verdicts == nil {
		return []Verdict{}, nil
	}

	verdicts, err := s.verdicts.ListVerdicts(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return verdicts, nil
}

func (s *Service) SummarizeVerdicts() (
	*VerdictSummary,
	error,
) {
	summary := &VerdictSummary{}
	if s.verdicts == nil {
		return summary, nil
	}

	var err error
	if summary.Accepted, err = s.verdicts.CountVerdicts(OutcomeAccepted); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if summary.Rejected, err = s.verdicts.CountVerdicts(OutcomeRejected); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return summary, nil
}
