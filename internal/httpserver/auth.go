// internal/httpserver/auth.go
//
// Player identity: accounts for returning players, an anonymous cookie for
// guests, and the hand-off between the two.
// Responsibilities:
//   - /auth/signup, /auth/login, /auth/logout, /auth/me.
//   - Resolve the caller from a Bearer header or the account cookie.
//   - Move a guest's profile and leaderboard rows to the account on sign-in.

package httpserver

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/ninewords/internal/profile"
)

var (
	errUsernameTaken = errors.New("username taken")
	errNoToken       = errors.New("no token")
)

const (
	anonCookieName = "ninewords_anon"
	anonCookieTTL  = 180 * 24 * time.Hour
)

// credentialsReq is the signup and login body.
type credentialsReq struct {
	Username string `json:"username" validate:"required,min=3,max=24"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// authUser is the signed-in caller, stored in the request context.
type authUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ctxUserKey struct{}

func userFrom(ctx context.Context) *authUser {
	u, _ := ctx.Value(ctxUserKey{}).(*authUser)
	return u
}

// mountAuthRoutes registers the account routes.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeCookie(w, accountCookieName(), "", time.Time{})
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})
	s.r.With(s.requireAuth()).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(userFrom(r.Context()))
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if !decodeValid(w, r, &body) {
		return
	}
	acct, err := s.createAccount(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, errUsernameTaken):
		writeError(w, http.StatusConflict, "Username taken")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.signIn(w, r, acct) {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"id": acct.ID, "username": acct.Username, "createdAt": acct.CreatedAt})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if !decodeValid(w, r, &body) {
		return
	}
	acct, err := s.accountWhere(r.Context(), "lower(username)=lower(?)", strings.TrimSpace(body.Username))
	if err != nil || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(body.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !s.signIn(w, r, acct) {
		return
	}
	_ = json.NewEncoder(w).Encode(authUser{ID: acct.ID, Username: acct.Username})
}

// signIn issues the account cookie and hands any guest progress over to the
// account. It writes a 500 and returns false if the token cannot be signed.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, acct *account) bool {
	tok, exp, err := issueToken(acct)
	if err != nil {
		log.Error().Err(err).Str("player", acct.ID).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	writeCookie(w, accountCookieName(), tok, exp)
	s.claimAnonProgress(r.Context(), s.ensureAnonID(w, r), acct.ID)
	return true
}

// ---------------------------------------------------------------------------
// guests

// ensureAnonID returns the guest cookie's ID, minting one on first visit.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	writeCookie(w, anonCookieName, id, time.Now().Add(anonCookieTTL))
	return id
}

// playerID is the signed-in account ID, or the guest's anon ID.
func (s *Server) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r.Context()); me != nil {
		return me.ID
	}
	return s.ensureAnonID(w, r)
}

// claimAnonProgress moves a guest profile and its leaderboard rows to an
// account that has no progress of its own yet.
func (s *Server) claimAnonProgress(ctx context.Context, anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	anon, err := s.profiles.Load(ctx, anonID)
	if err != nil {
		return
	}
	if _, err := s.profiles.Load(ctx, userID); !errors.Is(err, profile.ErrNotFound) {
		return
	}
	anon.PlayerID = userID
	if err := s.profiles.Save(ctx, anon); err != nil {
		log.Warn().Err(err).Str("player", userID).Msg("claim anon profile")
		return
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE OR IGNORE daily_results SET player_id=? WHERE player_id=?`, userID, anonID); err != nil {
		log.Warn().Err(err).Str("player", userID).Msg("claim anon results")
	}
	_ = s.sessions.Delete(ctx, anonID)
}

// ---------------------------------------------------------------------------
// accounts

// account is a row of the users table.
type account struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// createAccount checks the username, hashes the password and inserts the row.
func (s *Server) createAccount(ctx context.Context, username, pw string) (*account, error) {
	username = strings.TrimSpace(username)
	for _, c := range username {
		if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return nil, errors.New("username: letters, numbers, underscore only")
		}
	}
	if _, err := s.accountWhere(ctx, "lower(username)=lower(?)", username); err == nil {
		return nil, errUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	acct := &account{
		ID:           genID(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		acct.ID, acct.Username, acct.PasswordHash, acct.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	return acct, nil
}

// accountWhere loads the single account matching a users-table predicate.
func (s *Server) accountWhere(ctx context.Context, pred string, arg any) (*account, error) {
	var (
		a       account
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE `+pred, arg,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("no such account")
	}
	if err != nil {
		return nil, err
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &a, nil
}

// genID returns 22 URL-safe characters from 16 random bytes.
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ---------------------------------------------------------------------------
// tokens and cookies

// playerClaims carries the account ID as the subject.
type playerClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte { return []byte(getEnv("JWT_SECRET", "dev_secret_change_me")) }

func accountCookieName() string { return getEnv("COOKIE_NAME", "ninewords_token") }

// issueToken signs an HS256 token valid for JWT_EXPIRES_DAYS (default 14).
func issueToken(acct *account) (string, time.Time, error) {
	days, err := strconv.Atoi(getEnv("JWT_EXPIRES_DAYS", "14"))
	if err != nil {
		days = 14
	}
	now := time.Now()
	exp := now.Add(time.Duration(days) * 24 * time.Hour)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, playerClaims{
		Username: acct.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}).SignedString(jwtSecret())
	return tok, exp, err
}

// writeCookie sets an HttpOnly cookie on /. A zero expiry deletes it.
// Production cookies are Secure and SameSite=None so a separately hosted
// client can send them.
func writeCookie(w http.ResponseWriter, name, value string, expires time.Time) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	}
	if expires.IsZero() {
		c.MaxAge = -1
	}
	if getEnv("NODE_ENV", "") == "production" {
		c.Secure, c.SameSite = true, http.SameSiteNoneMode
	}
	http.SetCookie(w, c)
}

// authenticate resolves the caller from a Bearer header or the account
// cookie. The account must still exist.
func (s *Server) authenticate(r *http.Request) (*authUser, error) {
	raw := ""
	if a := r.Header.Get("Authorization"); len(a) > 7 && strings.EqualFold(a[:7], "bearer ") {
		raw = strings.TrimSpace(a[7:])
	} else if c, err := r.Cookie(accountCookieName()); err == nil {
		raw = c.Value
	}
	if raw == "" {
		return nil, errNoToken
	}
	var claims playerClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	acct, err := s.accountWhere(r.Context(), "id=?", claims.Subject)
	if err != nil {
		return nil, err
	}
	return &authUser{ID: acct.ID, Username: acct.Username}, nil
}

// withOptionalAuth attaches the caller when a valid token is present and
// lets guests through otherwise.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, err := s.authenticate(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth rejects callers without a valid token.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := s.authenticate(r)
			switch {
			case errors.Is(err, errNoToken):
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			case err != nil:
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
		})
	}
}
