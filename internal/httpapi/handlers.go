package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fiaisis/fia-auth/internal/config"
	"github.com/fiaisis/fia-auth/internal/experiments"
	"github.com/fiaisis/fia-auth/internal/identity"
	"github.com/fiaisis/fia-auth/internal/metrics"
	"github.com/fiaisis/fia-auth/internal/ratelimit"
	"github.com/fiaisis/fia-auth/internal/session"
	"github.com/fiaisis/fia-auth/pkg/logger"
)

const refreshCookieName = "refresh_token"

// RefreshCookiePath scopes the refresh token cookie to the one route that
// may consume it.
const RefreshCookiePath = "/api/jwt/refresh"

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Sessions    *session.Service
	Allocations experiments.Allocations
	Limiter     *ratelimit.LoginLimiter
	Metrics     *metrics.Metrics
}

type tokenRequest struct {
	Token string `json:"token"`
}

// Authenticate logs a user in with their facility account and returns an
// access token in the body plus a refresh token cookie.
func (h Handlers) Authenticate(c *gin.Context) {
	log := logger.FromGin(c)

	var creds identity.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if creds.Username == "" || creds.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "username and password required"})
		return
	}

	if h.Limiter != nil && !h.Limiter.Allow(c.Request.Context(), creds.Username) {
		log.Warn("login attempts throttled", "username_prefix", usernamePrefix(creds.Username))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many login attempts"})
		return
	}

	log.Info("starting login", "username_prefix", usernamePrefix(creds.Username))
	result, err := h.Sessions.Login(c.Request.Context(), creds)
	if err != nil {
		h.Metrics.Logins.WithLabelValues("failure").Inc()
		if errors.Is(err, identity.ErrBadCredentials) {
			log.Info("login rejected: bad credentials", "username_prefix", usernamePrefix(creds.Username))
		} else {
			log.Error("login failed", "err", err)
		}
		forbidden(c)
		return
	}
	h.Metrics.Logins.WithLabelValues("success").Inc()
	h.Metrics.RolesResolved.WithLabelValues(string(result.Role)).Inc()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		refreshCookieName,
		result.RefreshToken,
		int(config.RefreshTokenTTL.Seconds()),
		RefreshCookiePath,
		"",
		true, // Secure
		true, // HttpOnly
	)
	c.JSON(http.StatusOK, gin.H{"token": result.AccessToken})
}

// CheckToken verifies an access token was issued by this service and has
// not expired.
func (h Handlers) CheckToken(c *gin.Context) {
	log := logger.FromGin(c)

	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	if err := h.Sessions.VerifyAccessToken(req.Token); err != nil {
		h.Metrics.TokenVerifications.WithLabelValues("failure").Inc()
		log.Info("token verification failed", "err", err)
		forbidden(c)
		return
	}
	h.Metrics.TokenVerifications.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, "ok")
}

// Refresh re-issues the access token in the body, gated on the refresh
// token cookie.
func (h Handlers) Refresh(c *gin.Context) {
	log := logger.FromGin(c)

	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil {
		h.Metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		log.Info("refresh rejected", "err", session.ErrMissingRefreshToken)
		forbidden(c)
		return
	}

	newAccess, err := h.Sessions.RefreshAccessToken(req.Token, refreshToken)
	if err != nil {
		h.Metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		log.Info("refresh rejected", "err", err)
		forbidden(c)
		return
	}
	h.Metrics.TokenRefreshes.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"token": newAccess})
}

// Experiments returns the experiment (RB) numbers for a user number. The
// route is internal and sits behind the API-key middleware.
func (h Handlers) Experiments(c *gin.Context) {
	log := logger.FromGin(c)

	userNumber, err := strconv.ParseInt(c.Query("user_number"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "user_number must be an integer"})
		return
	}

	numbers, err := h.Allocations.ExperimentsFor(c.Request.Context(), userNumber)
	if err != nil {
		log.Error("experiments lookup failed", "user_number", userNumber, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "experiments lookup failed"})
		return
	}
	c.JSON(http.StatusOK, numbers)
}

// forbidden writes the uniform auth-failure response. Malformed, expired,
// and bad-signature cases are deliberately indistinguishable to callers.
func forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
}

// usernamePrefix truncates a username for logs.
func usernamePrefix(username string) string {
	if len(username) <= 3 {
		return username
	}
	return username[:3] + "****"
}
