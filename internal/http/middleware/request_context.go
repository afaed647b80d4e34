package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tilemart/storefront-backend/internal/pkg/ctxutil"
)

// SessionCookie names the cookie carrying the anonymous cart session.
const SessionCookie = "cart_session"

const sessionCookieMaxAge = int(365 * 24 * time.Hour / time.Second)

// AttachRequestContext mints or restores the cart session and attaches the
// request data container every later middleware and handler mutates.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := uuid.Nil
		if raw, err := c.Cookie(SessionCookie); err == nil {
			if parsed, err := uuid.Parse(raw); err == nil {
				sessionID = parsed
			}
		}
		if sessionID == uuid.Nil {
			sessionID = uuid.New()
			c.SetCookie(SessionCookie, sessionID.String(), sessionCookieMaxAge, "/", "", false, true)
		}

		rd := &ctxutil.RequestData{SessionID: sessionID}
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}
