package api

import (
	"net/http"

	"git.sr.ht/~jakintosh/tokengate/internal/resources"
	"git.sr.ht/~jakintosh/tokengate/internal/service"
)

type userTestPage struct {
	Title string
	Base  string
	Modes []string
}

// GetUserTest renders the interactive test page.
func (a *API) GetUserTest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modes := service.Modes()
		page := userTestPage{
			Title: "Token gate test page",
			Base:  a.basePath,
			Modes: make([]string, len(modes)),
		}
		for i, m := range modes {
			page.Modes[i] = string(m)
		}

		html, err := a.templates.Render(resources.LayoutTemplate, page)
		if err != nil {
			a.log.Error("failed to render test page", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(html)
	}
}
