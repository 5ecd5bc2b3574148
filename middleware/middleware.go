// Package middleware records a timeline session for every HTTP request and
// prints its report once the handler returns.
package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/huangsam/chronometrist/core"
	"github.com/huangsam/chronometrist/schema"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

// Timeline returns middleware that attaches a new session to each request
// context. The report is produced with the final response status.
func Timeline(cfg core.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			s := core.NewSession(cfg, r)
			ctx := core.WithRequestID(core.WithSession(r.Context(), s), id)
			rec := newStatusRecorder(w)

			defer func() {
				if p := recover(); p != nil {
					s.Finish(http.StatusInternalServerError)
					panic(p)
				}
			}()

			next.ServeHTTP(rec, r.WithContext(ctx))
			s.Finish(rec.Status())
		})
	}
}

// Stage wraps a handler so its run time shows up as one event on the
// request timeline. Responses of 400 and above mark the event as failed.
func Stage(title string, annotations schema.Annotations) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := core.Track(r.Context(), title, annotations)
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			if status := rec.Status(); status >= http.StatusBadRequest {
				h.Error(&schema.EventError{Code: status, Message: http.StatusText(status)})
				return
			}
			h.End()
		})
	}
}

// Chain applies middlewares so the first one is the outermost.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
