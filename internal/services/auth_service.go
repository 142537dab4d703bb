package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"recipebook/internal/models"
	"recipebook/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// AuthService handles registration, login and session tokens.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	hashCost  int
	log       *zap.Logger
}

// NewAuthService creates a new AuthService signing session tokens with jwtSecret.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		hashCost:  bcrypt.DefaultCost,
		log:       log,
	}
}

// SetHashCost overrides the bcrypt cost used for new password hashes.
func (s *AuthService) SetHashCost(cost int) {
	s.hashCost = cost
}

// Register creates an account with a bcrypt hash of password.
func (s *AuthService) Register(username, password string) (*models.User, error) {
	creds := models.Credentials{Username: strings.TrimSpace(username), Password: password}
	if err := validateStruct(creds); err != nil {
		return nil, err
	}
	if len(creds.Password) > maxPasswordBytes {
		return nil, &ValidationError{Fields: map[string]string{
			"password": fmt.Sprintf("longer than %d bytes", maxPasswordBytes),
		}}
	}

	if _, err := s.userRepo.GetByUsername(creds.Username); err == nil {
		return nil, fmt.Errorf("username '%s': %w", creds.Username, ErrDuplicateUsername)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: creds.Username, Password: string(hashedPassword)}
	if err := s.userRepo.Create(user); err != nil {
		// Lost a race with a concurrent registration of the same name.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("username '%s': %w", creds.Username, ErrDuplicateUsername)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login verifies the credentials and returns an authenticated session.
func (s *AuthService) Login(username, password string) (Session, error) {
	creds := models.Credentials{Username: strings.TrimSpace(username), Password: password}
	if err := validateStruct(creds); err != nil {
		return Anonymous, err
	}

	user, err := s.userRepo.GetByUsername(creds.Username)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.log.Error("failed to look up user for login", zap.Error(err))
		}
		return Anonymous, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Info("login rejected", zap.String("username", user.Username))
		return Anonymous, ErrInvalidCredentials
	}

	session := Session{
		ID:       uuid.New().String(),
		UserID:   user.ID,
		Username: user.Username,
	}
	s.log.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("session_id", session.ID))
	return session, nil
}

// Logout resets session to anonymous, whatever its current state.
func (s *AuthService) Logout(session *Session) {
	if session.Authenticated() {
		s.log.Info("user logged out", zap.Uint("user_id", session.UserID), zap.String("session_id", session.ID))
	}
	*session = Anonymous
}

// RequireSession fails with ErrUnauthorized for an anonymous session.
func (s *AuthService) RequireSession(session Session) error {
	if !session.Authenticated() {
		return ErrUnauthorized
	}
	return nil
}

// IssueToken signs session into an opaque token for the session cookie.
// Tokens carry no expiry; they are invalidated only by clearing the cookie.
func (s *AuthService) IssueToken(session Session) (string, error) {
	if err := s.RequireSession(session); err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":      session.ID,
		"user_id":  session.UserID,
		"username": session.Username,
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ParseToken validates a token produced by IssueToken and returns its session.
func (s *AuthService) ParseToken(tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return Anonymous, fmt.Errorf("%w: invalid token: %v", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Anonymous, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	userID, _ := claims["user_id"].(float64)
	username, _ := claims["username"].(string)
	sid, _ := claims["sid"].(string)
	if userID < 1 || username == "" {
		return Anonymous, fmt.Errorf("%w: token has no identity", ErrUnauthorized)
	}
	return Session{ID: sid, UserID: uint(userID), Username: username}, nil
}
