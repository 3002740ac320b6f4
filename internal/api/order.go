package api

import "net/http"

const customHeader = "Custom-Header"

type OrderResponse struct {
	API    string `json:"api"`
	Method string `json:"method"`
}

// Order is gated on the presence of Custom-Header for every method.
func (a *API) Order() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meta := a.meta(orderAPI, r)

		if r.Header.Get(customHeader) == "" {
			a.logApiErr(r, "missing "+customHeader)
			a.writeFailure(w, http.StatusForbidden, "Forbidden: missing "+customHeader, meta)
			return
		}

		data := OrderResponse{API: "order", Method: r.Method}
		switch r.Method {
		case http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete:
			a.writeOK(w, http.StatusOK, meta, data)
		case http.MethodPost:
			a.writeOK(w, http.StatusCreated, meta, data)
		default:
			a.MethodNotAllowed(orderAPI)(w, r)
		}
	}
}
