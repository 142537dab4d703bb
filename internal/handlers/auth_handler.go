package handlers

import (
	"recipebook/internal/middleware"
	"recipebook/internal/models"
	"recipebook/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService  *services.AuthService
	log          *zap.Logger
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the session
// cookie Secure, for deployments behind HTTPS.
func NewAuthHandler(authService *services.AuthService, log *zap.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		log:          log,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/me", h.HandleMe)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var creds models.Credentials
	if err := c.BodyParser(&creds); err != nil {
		h.log.Debug("failed to parse register request body", zap.Error(err))
		return badRequest(c, "Invalid request body", err)
	}

	user, err := h.authService.Register(creds.Username, creds.Password)
	if err != nil {
		return respondError(c, h.log, err, "Could not register user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created! You can now log in.",
		"user":    user,
	})
}

// HandleLogin verifies credentials and sets the session cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var creds models.Credentials
	if err := c.BodyParser(&creds); err != nil {
		h.log.Debug("failed to parse login request body", zap.Error(err))
		return badRequest(c, "Invalid request body", err)
	}

	session, err := h.authService.Login(creds.Username, creds.Password)
	if err != nil {
		return respondError(c, h.log, err, "Could not log in")
	}

	token, err := h.authService.IssueToken(session)
	if err != nil {
		return respondError(c, h.log, err, "Could not start session")
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"message": "Logged in successfully!",
		"session": session,
	})
}

// HandleLogout clears the session cookie unconditionally.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	h.authService.Logout(&session)
	c.ClearCookie(middleware.SessionCookie)

	return c.JSON(fiber.Map{
		"message": "You have been logged out.",
	})
}

// HandleMe reports the caller's current session.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	return c.JSON(fiber.Map{
		"authenticated": session.Authenticated(),
		"session":       session,
	})
}
