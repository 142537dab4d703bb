package middleware

import (
	"strings"

	"recipebook/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

const sessionLocalsKey = "session"

// LoadSession resolves the caller's session from the session cookie, or
// from an "Authorization: Bearer <token>" header for non-browser clients,
// and stores it in the request locals. Requests without a valid token
// continue as anonymous.
func LoadSession(authService *services.AuthService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		session := services.Anonymous
		if tokenString != "" {
			parsed, err := authService.ParseToken(tokenString)
			if err != nil {
				log.Debug("ignoring invalid session token", zap.String("path", c.Path()), zap.Error(err))
			} else {
				session = parsed
			}
		}
		c.Locals(sessionLocalsKey, session)
		return c.Next()
	}
}

// SessionRequired rejects anonymous requests with 401. It must run after
// LoadSession.
func SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentSession(c).Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Please log in first",
				"error":   services.ErrUnauthorized.Error(),
			})
		}
		return c.Next()
	}
}

// CurrentSession returns the session LoadSession attached to c.
func CurrentSession(c *fiber.Ctx) services.Session {
	if session, ok := c.Locals(sessionLocalsKey).(services.Session); ok {
		return session
	}
	return services.Anonymous
}
