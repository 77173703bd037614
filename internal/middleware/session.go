package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"pharmamart/internal/common"
	"pharmamart/internal/services"
)

// SessionCookieName carries the signed session token for browser clients.
const SessionCookieName = "pharmamart_token"

// SessionMiddleware validates the session token from the auth cookie or,
// for API clients, a Bearer header. Browser requests without a valid
// session are redirected to the login page; API requests get a 401.
func SessionMiddleware(identitySvc services.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := tokenFromRequest(c)
			if tokenString == "" {
				return unauthorized(c, "Missing token")
			}

			claims, err := identitySvc.ValidateSessionToken(tokenString)
			if err != nil {
				return unauthorized(c, "Invalid token")
			}

			userID, err := claims.UserID()
			if err != nil {
				return unauthorized(c, "Invalid token subject")
			}

			attachUser(c, claims, userID)
			return next(c)
		}
	}
}

// OptionalSession populates the user context when a valid session token is
// present and passes the request through anonymously otherwise. Used for
// pages that serve both signed-in users and reset-token visitors.
func OptionalSession(identitySvc services.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := tokenFromRequest(c)
			if tokenString == "" {
				return next(c)
			}

			claims, err := identitySvc.ValidateSessionToken(tokenString)
			if err != nil {
				return next(c)
			}
			userID, err := claims.UserID()
			if err != nil {
				return next(c)
			}

			attachUser(c, claims, userID)
			return next(c)
		}
	}
}

func attachUser(c echo.Context, claims *services.SessionClaims, userID uuid.UUID) {
	ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
	ctx = context.WithValue(ctx, common.UserEmailKey, claims.Email)
	ctx = context.WithValue(ctx, common.UserNameKey, claims.FullName)
	ctx = context.WithValue(ctx, common.RolesKey, claims.Roles)
	c.SetRequest(c.Request().WithContext(ctx))
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return token
	}
	return ""
}

func unauthorized(c echo.Context, message string) error {
	if wantsHTML(c) {
		loginURL := "/Account/Login?returnUrl=" + url.QueryEscape(c.Request().RequestURI)
		return c.Redirect(http.StatusFound, loginURL)
	}
	return echo.NewHTTPError(http.StatusUnauthorized, message)
}

// wantsHTML reports whether the client is a browser navigating pages
// rather than a fetch/API caller.
func wantsHTML(c echo.Context) bool {
	if c.Request().Method != http.MethodGet {
		return false
	}
	accept := c.Request().Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}
