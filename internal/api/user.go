package api

import "net/http"

type UserResponse struct {
	Token   string         `json:"token"`
	Header  map[string]any `json:"header"`
	Payload map[string]any `json:"payload"`
}

type NestedUserResponse struct {
	Token        string         `json:"token"`
	OuterHeader  map[string]any `json:"outerHeader"`
	InnerToken   string         `json:"innerToken"`
	InnerHeader  map[string]any `json:"innerHeader"`
	InnerPayload map[string]any `json:"innerPayload"`
}

// GetUser issues the fixture token selected by the "mode" query parameter.
func (a *API) GetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		issued, err := a.service.IssueToken(r.URL.Query().Get("mode"))
		if err != nil {
			a.writeError(w, r, userAPI, err)
			return
		}

		meta := a.meta(userAPI, r)
		meta["mode"] = string(issued.Mode)

		var data any
		if issued.Inner != nil {
			data = NestedUserResponse{
				Token:        issued.Token,
				OuterHeader:  issued.Header,
				InnerToken:   issued.Inner.Token,
				InnerHeader:  issued.Inner.Header,
				InnerPayload: issued.Inner.Claims,
			}
		} else {
			data = UserResponse{
				Token:   issued.Token,
				Header:  issued.Header,
				Payload: issued.Claims,
			}
		}

		a.writeOK(w, http.StatusOK, meta, data)
	}
}
