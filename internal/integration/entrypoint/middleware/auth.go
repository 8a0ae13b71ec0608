// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey holds the uuid.UUID of the user every expense, category and
	// summary of the request is scoped to.
	UserIDKey ContextKey = "user_id"
	// TokenExpiresAtKey holds the expiry of the access token, zero when the
	// token carries none.
	TokenExpiresAtKey ContextKey = "token_expires_at"
)

const bearerScheme = "bearer"

var (
	errNoCredentials   = errors.New("authorization header is required")
	errWrongScheme     = errors.New("authorization scheme must be Bearer")
	errEmptyBearer     = errors.New("bearer token is required")
	errAnonymousClaims = errors.New("token does not identify a user")
)

// AuthMiddleware resolves the owning user of a request from its access token.
// The token service accepts the user ID from either the user_id or the sub
// claim; a token resolving to the nil UUID is rejected here.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that rejects requests without
// a valid access token and scopes the rest to the token's user.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			code := domainerror.ErrCodeInvalidToken
			if !errors.Is(err, errWrongScheme) {
				code = domainerror.ErrCodeMissingToken
			}
			abortUnauthorized(c, err.Error(), code)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err == nil && claims.UserID == uuid.Nil {
			err = errAnonymousClaims
		}
		if err != nil {
			code := domainerror.ErrCodeInvalidToken
			if errors.Is(err, domainerror.ErrExpiredToken) {
				code = domainerror.ErrCodeExpiredToken
			}
			slog.Debug("Access token rejected",
				"path", c.FullPath(),
				"code", code,
				"error", err,
			)
			abortUnauthorized(c, "Invalid or expired token", code)
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(TokenExpiresAtKey), claims.ExpiresAt)

		c.Next()
	}
}

// bearerToken extracts the credentials of an Authorization header. The scheme
// name is matched case-insensitively.
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errNoCredentials
	}

	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, bearerScheme) {
		return "", errWrongScheme
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errEmptyBearer
	}
	return token, nil
}

func abortUnauthorized(c *gin.Context, message string, code domainerror.AuthErrorCode) {
	c.Header("WWW-Authenticate", `Bearer realm="expense-tracker"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// GetTokenExpiresAtFromContext returns the expiry of the request's access token.
func GetTokenExpiresAtFromContext(c *gin.Context) (time.Time, bool) {
	expiresAt, exists := c.Get(string(TokenExpiresAtKey))
	if !exists {
		return time.Time{}, false
	}
	t, ok := expiresAt.(time.Time)
	return t, ok
}
