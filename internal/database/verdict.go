package database

import (
	"fmt"
	"time"

	"git.sr.ht/~jakintosh/tokengate/internal/service"
)

func (s *SQLiteStore) VerdictStore() service.VerdictStore {
	return s
}

func (s *SQLiteStore) InsertVerdict(
	verdict *service.Verdict,
) error {
	_, err := s.db.Exec(`
		INSERT INTO verdict (id, time, outcome, reason, subject, nesting)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6);`,
		verdict.ID,
		verdict.Time.UnixMilli(),
		string(verdict.Outcome),
		verdict.Reason,
		verdict.Subject,
		verdict.Nesting,
	)
	if err != nil {
		return fmt.Errorf("couldn't insert into verdict: %v", err)
	}
	return nil
}

// ListVerdicts returns up to limit verdicts, newest first.
func (s *SQLiteStore) ListVerdicts(
	limit int,
) (
	[]service.Verdict,
	error,
) {
	rows, err := s.db.Query(`
		SELECT id, time, outcome, reason, subject, nesting
		FROM verdict
		ORDER BY time DESC, rowid DESC
		LIMIT ?1;`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't query verdict: %v", err)
	}
	defer rows.Close()

	verdicts := []service.Verdict{}
	for rows.Next() {
		var (
			v       service.Verdict
			millis  int64
			outcome string
		)
		if err := rows.Scan(&v.ID, &millis, &outcome, &v.Reason, &v.Subject, &v.Nesting); err != nil {
			return nil, fmt.Errorf("couldn't scan verdict: %v", err)
		}
		v.Time = time.UnixMilli(millis).UTC()
		v.Outcome = service.Outcome(outcome)
		verdicts = append(verdicts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("couldn't read verdict rows: %v", err)
	}
	return verdicts, nil
}

// CountVerdicts returns how many verdicts with the outcome are stored.
func (s *SQLiteStore) CountVerdicts(
	outcome service.Outcome,
) (
	int,
	error,
) {
	row := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM verdict
		WHERE outcome=?1;`,
		string(outcome),
	)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("couldn't scan verdict count: %v", err)
	}
	return count, nil
}
