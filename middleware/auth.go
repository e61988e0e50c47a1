package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware rejects requests without a valid bearer token and exposes
// the caller's identity on the context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := parseToken(tokenStr, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth extracts the caller's identity when a valid token is present
// but lets anonymous requests through. Used on public form endpoints where a
// private form needs to know whether the viewer is authenticated.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := parseToken(tokenStr, jwtSecret); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// ParseIdentity validates a raw token string and returns the subject email.
// The websocket endpoint uses it for tokens carried as a query parameter.
func ParseIdentity(tokenStr, jwtSecret string) (string, error) {
	claims, err := parseToken(tokenStr, jwtSecret)
	if err != nil {
		return "", err
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return email, nil
}

func parseToken(tokenStr, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) {
	if email, ok := claims["sub"].(string); ok {
		c.Set("user_email", email)
	}
	if uid, ok := claims["uid"].(float64); ok {
		c.Set("user_id", uint(uid))
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("user_role", role)
	}
}
