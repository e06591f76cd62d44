// internal/httpserver/server.go
//
// HTTP server wiring for the ninewords backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Session endpoints (optional auth): mounted under /session.
//   - Profile + daily endpoints (optional auth): /profile/me, /daily/*.
//   - Auth endpoints: /auth/* (see auth.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Guests are identified by an anonymous cookie; signing in claims their
//     progress for the account.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/singleflight"

	"github.com/robalobadob/ninewords/internal/daily"
	"github.com/robalobadob/ninewords/internal/prefs"
	"github.com/robalobadob/ninewords/internal/profile"
	"github.com/robalobadob/ninewords/internal/puzzle"
	"github.com/robalobadob/ninewords/internal/store"
)

var validate = validator.New()

// Options carries the server's collaborators. DB and Catalog are required.
type Options struct {
	DB       *sql.DB
	Catalog  puzzle.Catalog
	Sessions store.Store
	Profiles profile.Store
	Prefs    prefs.Store

	// Salt seeds the daily puzzle choice.
	Salt string
	// SettleDelay is passed to every new session.
	SettleDelay time.Duration
	// Now overrides the clock (tests).
	Now func() time.Time
}

// Server bundles router, session registry, and persistence handles.
type Server struct {
	r        *chi.Mux
	db       *sql.DB
	catalog  puzzle.Catalog
	sessions store.Store
	profiles profile.Store
	prefs    prefs.Store
	results  *daily.Store

	salt        string
	settleDelay time.Duration
	now         func() time.Time

	creating singleflight.Group
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Sessions == nil {
		opts.Sessions = store.NewMemoryStore()
	}
	if opts.Profiles == nil {
		opts.Profiles = profile.NewSQLStore(opts.DB)
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewMemory()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{
		r:           chi.NewRouter(),
		db:          opts.DB,
		catalog:     opts.Catalog,
		sessions:    opts.Sessions,
		profiles:    opts.Profiles,
		prefs:       opts.Prefs,
		results:     daily.NewStore(opts.DB),
		salt:        opts.Salt,
		settleDelay: opts.SettleDelay,
		now:         opts.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"ninewords","endpoints":["/health","/metrics","/session","/profile/me","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Handle("/metrics", promhttp.Handler())

	// Play: OPTIONAL AUTH (guests play under their anon cookie)
	s.mountSession(s.r.With(s.withOptionalAuth()))
	s.mountDaily(s.r.With(s.withOptionalAuth()))
	s.r.With(s.withOptionalAuth()).Get("/profile/me", s.handleProfile)

	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- helpers -----------------------------------

// writeError writes {"error": msg} with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// decodeValid decodes a JSON body into dst and validates its struct tags.
// An empty body decodes as the zero value.
func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
