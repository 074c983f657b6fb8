package middleware

import (
	"net/http"
	"strings"

	"meetning-api/core/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDContextKey = "user_id"

type Middleware struct {
	jwtSecret []byte
}

func NewMiddleware(cfg config.JWTConfig) *Middleware {
	return &Middleware{jwtSecret: []byte(cfg.Secret)}
}

// AuthMiddleware verifies the bearer token and puts the authenticated user id
// on the echo context. Tokens are accepted from the Authorization header or
// the legacy x-auth-token header.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("x-auth-token")
			if token == "" {
				authHeader := c.Request().Header.Get("Authorization")
				if strings.HasPrefix(authHeader, "Bearer ") {
					token = strings.TrimPrefix(authHeader, "Bearer ")
				}
			}

			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "No token, authorization denied",
				})
			}

			claims := &jwt.RegisteredClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return m.jwtSecret, nil
			})
			if err != nil || !parsed.Valid || claims.Subject == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Token is not valid",
				})
			}

			c.Set(userIDContextKey, claims.Subject)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id set by AuthMiddleware, or ""
// when the request was not authenticated.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)
	return id
}
