package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireSession guards operator pages with the session cookie. Browsers get
// redirected to the login form; the fetch-style endpoints under the same group
// receive the redirect too, which sends the operator back through login once
// the page reloads.
func RequireSession(signingKey, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(CookieName)
		if err != nil || cookie == "" {
			c.Redirect(http.StatusFound, "/login-page")
			c.Abort()
			return
		}
		claims, err := ParseSession(cookie, signingKey, issuer)
		if err != nil {
			c.Redirect(http.StatusFound, "/login-page")
			c.Abort()
			return
		}
		c.Set("operator", claims.Email)
		c.Next()
	}
}
