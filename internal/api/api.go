// Package api exposes the token gate over HTTP. Every JSON endpoint answers
// with the same envelope of status, meta and data.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"git.sr.ht/~jakintosh/tokengate/internal/service"
	"git.sr.ht/~jakintosh/tokengate/pkg/tokens"
)

const (
	userAPI     = "User API: authentication"
	discountAPI = "Discount API: protected"
	orderAPI    = "Order API: headers auth"
	verdictAPI  = "Verdict API: audit"
)

// Renderer renders a named HTML template.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

type API struct {
	service   *service.Service
	templates Renderer
	basePath  string
	log       *slog.Logger
}

type Option func(*API)

func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.log = l
		}
	}
}

// WithBasePath sets the URL prefix the server is mounted under.
func WithBasePath(p string) Option {
	return func(a *API) { a.basePath = p }
}

func New(
	svc *service.Service,
	templates Renderer,
	opts ...Option,
) *API {
	a := &API{
		service:   svc,
		templates: templates,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type Status struct {
	IsOK    bool   `json:"is_ok"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Envelope struct {
	Status Status         `json:"status"`
	Meta   map[string]any `json:"meta"`
	Data   any            `json:"data"`
}

func (a *API) meta(
	serviceName string,
	r *http.Request,
) map[string]any {
	now := a.service.Now()
	return map[string]any{
		"service":       serviceName,
		"requestMethod": r.Method,
		"serverTime":    float64(now.UnixNano()) / float64(time.Second),
	}
}

func (a *API) writeOK(
	w http.ResponseWriter,
	code int,
	meta map[string]any,
	data any,
) {
	returnJson(w, code, Envelope{
		Status: Status{IsOK: true, Code: code, Message: http.StatusText(code)},
		Meta:   meta,
		Data:   data,
	})
}

func (a *API) writeFailure(
	w http.ResponseWriter,
	code int,
	message string,
	meta map[string]any,
) {
	returnJson(w, code, Envelope{
		Status: Status{IsOK: false, Code: code, Message: message},
		Meta:   meta,
		Data:   nil,
	})
}

// writeError maps a service error onto a status code and envelope.
func (a *API) writeError(
	w http.ResponseWriter,
	r *http.Request,
	serviceName string,
	err error,
) {
	meta := a.meta(serviceName, r)

	var tErr *tokens.Error
	switch {
	case errors.Is(err, service.ErrTokenRejected) && errors.As(err, &tErr):
		meta["reason"] = tErr.Error()
		meta["rootReason"] = string(tErr.Root().Reason)
		a.logApiErr(r, "token rejected", slog.String("reason", tErr.Error()))
		a.writeFailure(w, http.StatusForbidden, "Forbidden: "+tErr.Describe(), meta)

	case errors.Is(err, service.ErrMissingAuthorization),
		errors.Is(err, service.ErrInvalidScheme),
		errors.Is(err, service.ErrEmptyToken):
		a.logApiErr(r, err.Error())
		a.writeFailure(w, http.StatusForbidden, "Forbidden: "+err.Error(), meta)

	case errors.Is(err, service.ErrUnknownMode):
		a.logApiErr(r, err.Error())
		a.writeFailure(w, http.StatusBadRequest, "Bad Request: "+err.Error(), meta)

	default:
		a.log.Error("internal error",
			"method", r.Method,
			"uri", r.RequestURI,
			"error", err,
		)
		a.writeFailure(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), meta)
	}
}

// MethodNotAllowed answers any request with 405 in the envelope of serviceName.
func (a *API) MethodNotAllowed(
	serviceName string,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.logApiErr(r, "method not allowed")
		a.writeFailure(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), a.meta(serviceName, r))
	}
}

func (a *API) NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.logApiErr(r, "not found")
		a.writeFailure(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), a.meta("", r))
	}
}

func returnJson(
	w http.ResponseWriter,
	code int,
	data any,
) {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func (a *API) logApiErr(
	r *http.Request,
	msg string,
	attrs ...slog.Attr,
) {
	args := []any{
		slog.String("method", r.Method),
		slog.String("uri", r.RequestURI),
	}
	for _, attr := range attrs {
		args = append(args, attr)
	}
	a.log.Info(msg, args...)
}
