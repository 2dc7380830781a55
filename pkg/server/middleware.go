package server

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	pserrors "github.com/m3org/petspec/pkg/errors"
)

// middleware wraps a handler with one cross-cutting concern.
type middleware func(http.HandlerFunc) http.HandlerFunc

// chain wraps h so that the first middleware sees the request first.
func chain(h http.HandlerFunc, mws ...middleware) http.HandlerFunc {
	for _, mw := range slices.Backward(mws) {
		h = mw(h)
	}
	return h
}

// withMiddleware wraps an API handler. Logging sits outside recovery so a
// recovered panic is logged with its 500 status, and outside version and
// rate limit checks so their rejections are logged too.
func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return chain(handler,
		s.metricsMiddleware,
		s.requestIDMiddleware,
		s.loggingMiddleware,
		s.panicRecoveryMiddleware,
		s.versionMiddleware,
		s.rateLimitMiddleware,
		s.bodyLimitMiddleware,
	)
}

// requestIDMiddleware keeps a valid X-Request-Id from the client or
// generates one.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-Id", requestID)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		next(w, r.WithContext(ctx))
	}
}

// loggingMiddleware logs one line per request once the response is done,
// including any attributes handlers added with Annotate.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)
		notes := &annotations{}
		ctx := context.WithValue(r.Context(), contextKeyAnnotations, notes)

		next(rec, r.WithContext(ctx))

		level := slog.LevelDebug
		switch {
		case rec.status >= http.StatusInternalServerError:
			level = slog.LevelError
		case rec.status >= http.StatusBadRequest:
			level = slog.LevelInfo
		}

		args := []any{
			"requestID", RequestID(ctx),
			"method", r.Method,
			"route", routeLabel(r),
			"path", r.URL.Path,
			"apiVersion", rec.Header().Get("X-API-Version"),
			"status", rec.status,
			"bytes", rec.bytes,
			"duration", time.Since(start).String(),
		}
		slog.Log(ctx, level, "request completed", append(args, notes.list()...)...)
	}
}

// panicRecoveryMiddleware turns a handler panic into a 500 response.
func (s *Server) panicRecoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			panicRecoveries.Inc()
			slog.Error("panic recovered",
				"error", fmt.Sprint(v),
				"requestID", RequestID(r.Context()),
				"route", routeLabel(r),
				"stack", string(debug.Stack()),
			)
			WriteError(w, r, http.StatusInternalServerError, pserrors.ErrCodeInternal,
				"Internal server error", true, nil)
		}()
		next(w, r)
	}
}

// versionMiddleware reports the API version of the matched route and
// rejects clients asking for a different one with 406.
func (s *Server) versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := routeAPIVersion(r.Pattern)
		if version == "" {
			version = DefaultAPIVersion
		}

		if want := requestedAPIVersion(r.Header.Get("Accept")); want != "" && want != version {
			WriteError(w, r, http.StatusNotAcceptable, pserrors.ErrCodeNotAcceptable,
				"Unsupported API version", false, map[string]any{
					"requested": want,
					"served":    version,
				})
			return
		}

		w.Header().Set("X-API-Version", version)
		ctx := context.WithValue(r.Context(), contextKeyAPIVersion, version)
		next(w, r.WithContext(ctx))
	}
}

// rateLimitMiddleware applies the shared token bucket.
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow() {
			rateLimitRejects.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(s.config.RateLimit)))
			WriteError(w, r, http.StatusTooManyRequests, pserrors.ErrCodeRateLimitExceeded,
				"Rate limit exceeded", true, map[string]any{
					"limit": float64(s.config.RateLimit),
					"burst": s.config.RateLimitBurst,
				})
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(int(s.config.RateLimit)))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(s.rateLimiter.Tokens())))
		next(w, r)
	}
}

// retryAfterSeconds is the whole number of seconds until the bucket
// refills one token, at least 1.
func retryAfterSeconds(limit rate.Limit) int {
	if limit <= 0 || limit == rate.Inf {
		return 1
	}
	return max(1, int(math.Ceil(1/float64(limit))))
}

// bodyLimitMiddleware caps request bodies at MaxBodyBytes.
func (s *Server) bodyLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.MaxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
		}
		next(w, r)
	}
}
