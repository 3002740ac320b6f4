package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

func (a *API) Router() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = a.NotFound()

	r.HandleFunc("/user", a.GetUser()).Methods(http.MethodGet)
	r.HandleFunc("/user", a.MethodNotAllowed(userAPI))

	r.HandleFunc("/discount", a.GetDiscount()).Methods(http.MethodGet)
	r.HandleFunc("/discount", a.MethodNotAllowed(discountAPI))

	// the header gate applies before the method is looked at
	r.HandleFunc("/order", a.Order())

	r.HandleFunc("/usertest", a.GetUserTest()).Methods(http.MethodGet)

	r.HandleFunc("/verdicts", a.GetVerdicts()).Methods(http.MethodGet)
	r.HandleFunc("/verdicts", a.MethodNotAllowed(verdictAPI))

	return stripBasePath(a.basePath, r)
}

// stripBasePath removes prefix from request paths that carry it and passes
// other paths unchanged.
func stripBasePath(
	prefix string,
	next http.Handler,
) http.Handler {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			r2 := r.Clone(r.Context())
			r2.URL.Path = strings.TrimPrefix(path, prefix)
			if r2.URL.Path == "" {
				r2.URL.Path = "/"
			}
			r2.URL.RawPath = ""
			next.ServeHTTP(w, r2)
			return
		}
		next.ServeHTTP(w, r)
	})
}
