package serve

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	zl "github.com/rs/zerolog"

	"recognition.dev/cheers/metrics"
	"recognition.dev/cheers/util/log"
)

// contextLogger is http middleware that inserts a contextual logger into
// the http.Request's Context.
func contextLogger(next http.Handler) http.Handler {
	return &contextLoggerHandler{next: next}
}

type contextLoggerHandler struct {
	next  http.Handler
	reqID uint64
}

func (c *contextLoggerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lc := log.Default().With().Str("req", r.URL.String()).Uint64("rid", atomic.AddUint64(&c.reqID, 1))
	l := lc.Logger()
	ctx := context.WithValue(r.Context(), loggerKey{}, l)
	r = r.WithContext(ctx)
	c.next.ServeHTTP(w, r)
}

type loggerKey struct{}

func logger(r *http.Request) zl.Logger {
	i := r.Context().Value(loggerKey{})
	if i != nil {
		l, ok := i.(zl.Logger)
		if ok {
			return l
		}
	}
	l := log.Default()
	l.Error().Msgf("zlogger missing from request context for %s (this is expected in unit tests)", r.URL)
	return l
}

// panicCatcher is http middleware that recovers from panics, logs them, and
// turns them into 500s.
func panicCatcher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := logger(r)
		defer func() {
			err := recover()
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				l.Error().Msgf("Handler panicked: %#v", err)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// instrument is router middleware that records request counts and latency
// per route template.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if cr := mux.CurrentRoute(r); cr != nil {
			if t, err := cr.GetPathTemplate(); err == nil {
				route = t
			}
		}
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		metrics.RecordHTTPRequest(r.Method, route, sw.status, time.Since(start))
		l := logger(r)
		l.Debug().Str("route", route).Int("status", sw.status).Dur("dur", time.Since(start)).Msg("Handled")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (s *statusWriter) WriteHeader(code int) {
	if !s.wrote {
		s.status = code
		s.wrote = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusWriter) Write(b []byte) (int, error) {
	s.wrote = true
	return s.ResponseWriter.Write(b)
}
