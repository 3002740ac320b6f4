package api

import "net/http"

var discountLinks = map[string]string{
	"get_user":     "GET /user",
	"get_discount": "GET /discount",
}

// GetDiscount serves the protected resource to holders of a valid bearer
// token. Any rejection is a 403 carrying the reason.
func (a *API) GetDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, err := a.service.Authorize(r.Header.Get("Authorization"))
		if err != nil {
			a.writeError(w, r, discountAPI, err)
			return
		}

		claims := auth.Result.Claims
		meta := a.meta(discountAPI, r)
		meta["authUserId"] = claims.Subject()
		meta["nesting"] = auth.Result.Nesting
		meta["verdictId"] = auth.VerdictID
		meta["links"] = discountLinks

		a.writeOK(w, http.StatusOK, meta, a.service.Discount(claims))
	}
}
