package httpx

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/time/rate"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
)

// AuthSessionReader is the slice of AuthService the middleware needs.
type AuthSessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestRecorder receives per-request observations from the Metrics
// middleware.
type RequestRecorder interface {
	RecordHTTPRequest(method string, statusCode int, duration time.Duration)
}

// LoginRecorder counts sign-in outcomes.
type LoginRecorder interface {
	RecordLogin(outcome string)
}

// MutationRecorder counts successful catalog mutations.
type MutationRecorder interface {
	RecordMutation(resource, action string)
}

// MetricsRecorder is the full recording surface the router wires through to
// middleware and handlers.
type MetricsRecorder interface {
	RequestRecorder
	LoginRecorder
	MutationRecorder
}

// Metrics returns a middleware that records request counts and latency.
func Metrics(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			recorder.RecordHTTPRequest(r.Method, ww.status, time.Since(start))
		})
	}
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth returns a middleware that loads the session from the cookie
// when present. Unauthenticated requests continue without session information.
func OptionalAuth(authSvc AuthSessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session := getSessionFromRequest(r, authSvc); session != nil {
				r = r.WithContext(SetSessionInContext(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns a middleware that requires a signed-in user. Anonymous
// requests are redirected to the login page with a flash notice.
func RequireAuth(authSvc AuthSessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, authSvc)
			if session == nil || !session.Authenticated() {
				RedirectWithFlash(w, r, "/login", FlashSignInRequired)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
		})
	}
}

// getSessionFromRequest retrieves and validates a session from the request.
func getSessionFromRequest(r *http.Request, authSvc AuthSessionReader) *domainauth.Session {
	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	session, err := authSvc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		return nil
	}
	return session
}

// RateLimit returns a middleware enforcing a per-client request rate. Clients
// are keyed by remote IP; idle limiters are dropped after a few minutes.
func RateLimit(rps rate.Limit, burst int) func(http.Handler) http.Handler {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		c, ok := clients[ip]
		if !ok {
			c = &client{limiter: rate.NewLimiter(rps, burst)}
			clients[ip] = c
		}
		c.lastSeen = time.Now()

		// Opportunistic cleanup of idle entries.
		if len(clients) > 1024 {
			cutoff := time.Now().Add(-5 * time.Minute)
			for k, v := range clients {
				if v.lastSeen.Before(cutoff) {
					delete(clients, k)
				}
			}
		}
		return c.limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiterFor(ip).Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
