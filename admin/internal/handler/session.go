package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/labstack/echo/v4"
)

const (
	sessionCookieName = "admin_session"
	sessionKey        = "session"
	bearer            = "Bearer "
)

// sessionMW resolves the session id from the bearer header or the session cookie.
func (h *Handler) sessionMW(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), bearer))
		if id == "" {
			if cookie, err := c.Cookie(sessionCookieName); err == nil {
				id = cookie.Value
			}
		}
		if id == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
		}
		sess, err := h.svc.Session(c.Request().Context(), id)
		if err != nil {
			return err
		}
		c.Set(sessionKey, sess)
		return next(c)
	}
}

func currentSession(c echo.Context) model.Session {
	sess, _ := c.Get(sessionKey).(model.Session)
	return sess
}

func sessionCookie(sess model.Session) *http.Cookie {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if !sess.ExpiresAt.IsZero() {
		cookie.Expires = sess.ExpiresAt
	}
	return cookie
}

func expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	}
}
