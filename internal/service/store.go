package service

import "time"

type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
)

// Verdict is one recorded authorization attempt.
type Verdict struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Outcome Outcome   `json:"outcome"`
	Reason  string    `json:"reason,omitempty"`
	Subject string    `json:"subject,omitempty"`
	Nesting int       `json:"nesting"`
}

// VerdictStore handles persistence of authorization verdicts
type VerdictStore interface {
	InsertVerdict(verdict *Verdict) error
	ListVerdicts(limit int) ([]Verdict, error)
	CountVerdicts(outcome Outcome) (int, error)
}
