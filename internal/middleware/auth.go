package middleware

import (
	"net/http"
	"os"
	"strings"

	"bizhive/internal/access"
	"bizhive/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessContextKey = "accessContext"

// GetJWTSecret returns the signing secret, refusing to run in release mode without one.
func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
	c.SetCookie("refresh_token", refreshToken, 3600*24*7, "/", "", secure, true)
}

// ClearTokenCookies removes access_token and refresh_token cookies
func ClearTokenCookies(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}

// bearerToken extracts the JWT from the access_token cookie, falling back to
// the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// Authenticate validates the JWT and stores the caller's identity on the
// gin context. It establishes WHO the caller is; what they may touch is
// decided by ResolveAccess.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token subject"))
			return
		}
		email, _ := claims["email"].(string)

		c.Set("userID", userID)
		c.Set("userEmail", email)

		c.Next()
	}
}

// ResolveAccess derives the caller's role and bound branch from the database
// and stores the result for handlers. Resolution happens before any handler
// runs, so every gate decision is made with complete information; the
// resolver itself fails closed, so this middleware never rejects a request.
func ResolveAccess(resolver *access.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.MustGet("userID").(uuid.UUID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Missing identity"))
			return
		}
		email := c.GetString("userEmail")

		ac := resolver.Resolve(c.Request.Context(), userID, email)
		c.Set(accessContextKey, ac)

		c.Next()
	}
}

// AccessFrom returns the resolved access context stored by ResolveAccess.
func AccessFrom(c *gin.Context) access.Context {
	ac, _ := c.MustGet(accessContextKey).(access.Context)
	return ac
}

// RequireAdmin aborts with 403 unless the resolved role is admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !AccessFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: admin role required"))
			return
		}
		c.Next()
	}
}
