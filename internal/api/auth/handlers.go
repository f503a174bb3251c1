package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leagueapi/internal/api/apiutil"
	"github.com/codr1/leagueapi/internal/api/authz"
	"github.com/codr1/leagueapi/internal/config"
	appdb "github.com/codr1/leagueapi/internal/db"
	dbgen "github.com/codr1/leagueapi/internal/db/generated"
	"github.com/codr1/leagueapi/internal/email"
	"github.com/codr1/leagueapi/internal/metrics"
	"github.com/codr1/leagueapi/internal/ratelimit"
)

const (
	queryTimeout      = apiutil.QueryTimeout
	maxUsernameLength = 150
	maxEmailLength    = 254
)

var (
	database    *appdb.DB
	queries     *dbgen.Queries
	appConfig   *config.Config
	emailSender email.EmailSender
	limiter     *ratelimit.Limiter
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB, cfg *config.Config, sender email.EmailSender, rl *ratelimit.Limiter) {
	if db == nil {
		return
	}
	database = db
	queries = db.Queries
	appConfig = cfg
	emailSender = sender
	limiter = rl
}

func loadQueries() *dbgen.Queries {
	return queries
}

func tokenTTL() time.Duration {
	if appConfig == nil {
		return 0
	}
	return appConfig.Auth.TokenTTL
}

func trustProxy() bool {
	return appConfig != nil && appConfig.App.TrustProxy
}

func toUserResponse(id int64, username, email string, isStaff bool) userResponse {
	return userResponse{ID: id, Username: username, Email: email, IsStaff: isStaff}
}

// allowClientIP applies the per-IP bucket and writes 429 when exhausted.
func allowClientIP(w http.ResponseWriter, r *http.Request, limitType, identifier string) bool {
	if limiter == nil {
		return true
	}
	ip := ratelimit.GetClientIP(r, trustProxy())
	result := limiter.AllowIP(ip)
	if result.Allowed {
		return true
	}
	ratelimit.LogRateLimitExceeded(limitType, identifier, ip, result.Reason)
	metrics.RecordAuthEvent("rate_limited")
	apiutil.WriteRateLimited(w, result.RetryAfter)
	return false
}

// POST /api/v1/auth/signup
func HandleSignup(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req credentialsRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if !allowClientIP(w, r, "signup", req.Username) {
		return
	}

	username, err := apiutil.RequireText(req.Username, "username", maxUsernameLength)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}
	address, err := apiutil.RequireText(req.Email, "email", maxEmailLength)
	if err != nil {
		apiutil.WriteError(w, logger, err)
		return
	}
	if _, err := mail.ParseAddress(address); err != nil {
		apiutil.WriteMessage(w, http.StatusBadRequest, "email must be a valid address")
		return
	}
	if reason := validatePassword(req.Password); reason != "" {
		apiutil.WriteMessage(w, http.StatusBadRequest, reason)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	var user dbgen.User
	var key string
	now := time.Now()
	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		var txErr error
		user, txErr = tx.Queries.CreateUser(ctx, dbgen.CreateUserParams{
			Username:     username,
			Email:        address,
			PasswordHash: hash,
			CreatedAt:    now.Unix(),
		})
		if txErr != nil {
			return txErr
		}
		key, txErr = issueToken(ctx, tx.Queries, user.ID, now)
		return txErr
	})
	if err != nil {
		if apiutil.IsUniqueViolation(err) {
			apiutil.WriteMessage(w, http.StatusBadRequest, "A user with that username already exists")
			return
		}
		logger.Error().Err(err).Str("username", ratelimit.SanitizeIdentifier(username)).Msg("Failed to create user")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	metrics.RecordAuthEvent("signup")
	logger.Info().Int64("user_id", user.ID).Msg("User signed up")

	welcome := email.BuildWelcomeEmail(appName(), user.Username, baseURL())
	email.SendWelcomeEmail(r.Context(), emailSender, user.Email, welcome, logger)

	resp := tokenResponse{Token: key, User: toUserResponse(user.ID, user.Username, user.Email, user.IsStaff)}
	if err := apiutil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to write signup response")
	}
}

// POST /api/v1/auth/login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req credentialsRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		apiutil.WriteMessage(w, http.StatusBadRequest, "username and password are required")
		return
	}

	if !allowClientIP(w, r, "login", username) {
		return
	}
	if limiter != nil {
		if result := limiter.CheckLogin(username); !result.Allowed {
			ratelimit.LogRateLimitExceeded("login", username, ratelimit.GetClientIP(r, trustProxy()), result.Reason)
			metrics.RecordAuthEvent("locked_out")
			apiutil.WriteRateLimited(w, result.RetryAfter)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	user, err := q.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Failed to load user for login")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	var valid bool
	if err != nil {
		valid = rejectUnknownUser(req.Password)
	} else {
		valid = VerifyPassword(user.PasswordHash, req.Password)
	}
	if !valid {
		if limiter != nil && limiter.RecordLoginFailure(username) {
			logger.Warn().Str("username", ratelimit.SanitizeIdentifier(username)).Msg("Login locked out after repeated failures")
		}
		metrics.RecordAuthEvent("login_failed")
		apiutil.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	key, err := issueToken(ctx, q, user.ID, time.Now())
	if err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue token")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if limiter != nil {
		limiter.ResetLogin(username)
	}
	metrics.RecordAuthEvent("login_success")

	resp := tokenResponse{Token: key, User: toUserResponse(user.ID, user.Username, user.Email, user.IsStaff)}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to write login response")
	}
}

// POST /api/v1/auth/logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, err := authz.RequireUser(r.Context())
	if err != nil {
		apiutil.WriteAuthzError(w, logger, err)
		return
	}

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if _, err := q.DeleteAuthTokensForUser(ctx, user.ID); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to delete token")
		apiutil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	metrics.RecordAuthEvent("logout")

	if err := apiutil.WriteMessage(w, http.StatusOK, "Logged out successfully"); err != nil {
		logger.Error().Err(err).Msg("Failed to write logout response")
	}
}

// GET /api/v1/auth/test-token
func HandleTestToken(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, err := authz.RequireUser(r.Context())
	if err != nil {
		apiutil.WriteAuthzError(w, logger, err)
		return
	}

	if err := apiutil.WriteMessage(w, http.StatusOK, "Login successful for "+user.Email); err != nil {
		logger.Error().Err(err).Msg("Failed to write test-token response")
	}
}

func appName() string {
	if appConfig == nil {
		return ""
	}
	return appConfig.App.Name
}

func baseURL() string {
	if appConfig == nil {
		return ""
	}
	return appConfig.App.BaseURL
}
