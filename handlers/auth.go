package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"stargrid/config"
	"stargrid/service"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "stargrid_session"

// sessionToken extracts the bearer token from the session cookie or an
// Authorization header (the CLI uses the header).
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireAuth guards mutating routes: it fails closed with 401 when the
// session token is missing, unknown or expired.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := service.GlobalServices.Session.Validate(sessionToken(c))
		if err == nil {
			c.Next()
			return
		}
		if errors.Is(err, service.ErrUnauthorized) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Unauthorized"})
			return
		}
		log.Printf("Auth check error: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

// LoginRequest is the login payload. Username is optional: empty means the
// shared admin password.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges the admin password (or operator credentials) for a session
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	session, err := service.GlobalServices.Session.Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid password"})
			return
		}
		respondError(c, err)
		return
	}

	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	c.SetCookie(SessionCookieName, session.Token, maxAge, "/", "", config.Settings.SessionCookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": session.Token})
}

// Logout deletes the current session and clears the cookie
func Logout(c *gin.Context) {
	token := sessionToken(c)
	if token != "" {
		if err := service.GlobalServices.Session.Logout(token); err != nil {
			log.Printf("Logout error: %v", err)
		}
	}
	c.SetCookie(SessionCookieName, "", -1, "/", "", config.Settings.SessionCookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// AuthStatus reports whether the caller holds a valid session. It never
// errors; any failure reads as logged out.
func AuthStatus(c *gin.Context) {
	err := service.GlobalServices.Session.Validate(sessionToken(c))
	c.JSON(http.StatusOK, gin.H{"isLoggedIn": err == nil})
}
