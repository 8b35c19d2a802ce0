package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"storeRating/domain"
	"storeRating/pkg/logger"
	"storeRating/pkg/utils"

	jsonres "storeRating/pkg/response"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextToken  = "token"
)

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	ParseJWT(tokenString string) (*utils.JWTClaims, error)
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, jsonres.Error("UNAUTHORIZED", message, nil))
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(header string) (string, bool) {
	tokenParts := strings.Fields(header)
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
		return "", false
	}
	return tokenParts[1], true
}

// authenticate verifies the header and stores user id, role and token on the
// context. On failure it returns the message to answer with.
func authenticate(c echo.Context, tokens TokenParser, header string) (string, bool) {
	tokenString, ok := bearerToken(header)
	if !ok {
		return "Invalid authorization format", false
	}

	claims, err := tokens.ParseJWT(tokenString)
	if err != nil {
		logger.Debug("Failed to parse JWT", err)
		return "Invalid or expired token", false
	}

	userID, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil || userID == 0 {
		logger.Error("Invalid user ID in token", "user_id", claims.UserID)
		return "Invalid token", false
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		logger.Error("Invalid role in token", "role", claims.Role)
		return "Invalid token", false
	}

	c.Set(ContextUserID, uint(userID))
	c.Set(ContextRole, role)
	c.Set(ContextToken, tokenString)

	return "", true
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "Missing authorization header")
			}

			if message, ok := authenticate(c, tokens, authHeader); !ok {
				return unauthorized(c, message)
			}

			return next(c)
		}
	}
}

// OptionalAuth lets anonymous requests through but still rejects a header
// that carries an invalid or expired token.
func OptionalAuth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			if message, ok := authenticate(c, tokens, authHeader); !ok {
				return unauthorized(c, message)
			}

			return next(c)
		}
	}
}

// RequireRole must run after AuthMiddleware. Callers holding none of roles get 403.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := CurrentRole(c)
			if !ok {
				return unauthorized(c, "User not authenticated")
			}

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, jsonres.Error(
				"FORBIDDEN", "Insufficient permissions", nil,
			))
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin)
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ContextUserID).(uint)
	return id, ok
}

func CurrentRole(c echo.Context) (domain.Role, bool) {
	role, ok := c.Get(ContextRole).(domain.Role)
	return role, ok
}
