package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CookieName = "sid"
	HeaderName = "X-Session-ID"

	contextKey = "session"
	maxAge     = 30 * 24 * 60 * 60
)

// Middleware resolves the caller's session from the sid cookie or the
// X-Session-ID header, starting a new one when neither carries a valid id.
func Middleware(m *Manager, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CookieName)
		if err != nil || id == "" {
			id = c.GetHeader(HeaderName)
		}

		sess, err := m.Open(id)
		if err != nil {
			sess = m.Start()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, sess.ID, maxAge, "/", "", secure, true)
		c.Header(HeaderName, sess.ID)

		c.Set(contextKey, sess)
		c.Set("session_id", sess.ID)
		c.Next()
	}
}

// FromContext returns the session installed by Middleware, or nil.
func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*Session)
	return sess
}
