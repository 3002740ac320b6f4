package api

import (
	"net/http"
	"strconv"

	"git.sr.ht/~jakintosh/tokengate/internal/service"
)

type VerdictsResponse struct {
	Verdicts []service.Verdict      `json:"verdicts"`
	Summary  service.VerdictSummary `json:"summary"`
}

// GetVerdicts lists the most recent authorization verdicts.
func (a *API) GetVerdicts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				a.logApiErr(r, "invalid limit")
				a.writeFailure(w, http.StatusBadRequest, "Bad Request: invalid limit", a.meta(verdictAPI, r))
				return
			}
			limit = n
		}

		verdicts, err := a.service.RecentVerdicts(limit)
		if err != nil {
			a.writeError(w, r, verdictAPI, err)
			return
		}
		summary, err := a.service.SummarizeVerdicts()
		if err != nil {
			a.writeError(w, r, verdictAPI, err)
			return
		}

		meta := a.meta(verdictAPI, r)
		meta["count"] = len(verdicts)
		a.writeOK(w, http.StatusOK, meta, VerdictsResponse{Verdicts: verdicts, Summary: *summary})
	}
}
