package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	csrfCookieName     = "csrfToken"
	refreshCookieName  = "refreshToken"
	csrfCookieLifetime = 24 * 60 * 60
)

var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// IssueCSRFToken sets the double-submit cookie and echoes the token so the
// client can replay it in a header.
func IssueCSRFToken(c *gin.Context) {
	token := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(csrfCookieName, token, csrfCookieLifetime, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"csrfToken": token})
}

// CSRFProtection enforces the double-submit check on unsafe methods that
// ride the refresh cookie. Bearer-token requests are not cookie-borne and
// pass through.
func CSRFProtection() gin.HandlerFunc {
	return func(c *gin.Context) {
		if safeMethods[c.Request.Method] {
			c.Next()
			return
		}
		if strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
			c.Next()
			return
		}
		refresh, err := c.Cookie(refreshCookieName)
		if err != nil || refresh == "" {
			c.Next()
			return
		}

		cookie, err := c.Cookie(csrfCookieName)
		header := c.GetHeader("X-CSRF-Token")
		if header == "" {
			header = c.GetHeader("X-XSRF-Token")
		}
		if err != nil || cookie == "" || header == "" || cookie != header {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid CSRF token"})
			return
		}
		c.Next()
	}
}
