package handler

import (
	"errors"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/storage"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer = "laporantdx"

	ctxAdminID   = "admin_id"
	ctxSessionID = "session_id"
)

var errInvalidToken = errors.New("invalid session token")

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// generateJWT signs a session token binding the Redis session to the admin.
func (h *Handler) generateJWT(sessionID string, adminID uint, now time.Time) (string, error) {
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(adminID), 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.SessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.sessionSecret)
}

// parseJWT validates a session token and returns its session and admin ids.
func (h *Handler) parseJWT(tokenString string) (string, uint, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return h.sessionSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", 0, err
	}
	adminID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || adminID == 0 || claims.SessionID == "" {
		return "", 0, errInvalidToken
	}
	return claims.SessionID, uint(adminID), nil
}

// RequireAdmin lets a request through only with a valid, live admin session.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			h.unauthorized(c)
			return
		}
		sid, adminID, err := h.parseJWT(token)
		if err != nil {
			h.log.Debug("rejected session token", "error", err)
			h.unauthorized(c)
			return
		}
		owner, err := h.Storage.GetSession(c.Request.Context(), sid)
		if err != nil {
			if !errors.Is(err, storage.ErrSessionNotFound) {
				h.log.Error("session lookup failed", "error", err)
			}
			h.unauthorized(c)
			return
		}
		if owner != adminID {
			h.unauthorized(c)
			return
		}
		c.Set(ctxAdminID, adminID)
		c.Set(ctxSessionID, sid)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(config.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

func (h *Handler) unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": h.text(c, "unauthorized")})
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(config.SessionCookieName, value, maxAge, "/", "", h.secureCookies, true)
}
