package service

import (
	"context"
	"errors"
	"time"

	"ratehub/internal/api/models"
	"ratehub/internal/api/repository"
	"ratehub/internal/config"
	"ratehub/internal/mail"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// TokenClaims is what the middleware gets back from a validated token. The
// role inside the token is advisory only, the middleware reloads the user so
// role changes take effect without reissuing tokens.
type TokenClaims struct {
	UserID   string
	Username string
	Role     string
}

type AuthService interface {
	Signup(ctx context.Context, username, email string) (*models.User, error)
	IssueToken(ctx context.Context, username, confirmationCode string) (string, error)
	ValidateToken(tokenString string) (*TokenClaims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	mailer    mail.Mailer
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, mailer mail.Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		mailer:    mailer,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
	}
}

// Signup creates an unconfirmed user and mails a fresh confirmation code.
// The code is stored hashed; the plaintext exists only in the outgoing mail.
func (s *authService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	if username == "me" {
		return nil, ErrUsernameReserved
	}
	if username == email {
		return nil, ErrUsernameEqualsEmail
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUserExists
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	}

	code := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:         username,
		Email:            email,
		Role:             models.RoleUser,
		ConfirmationCode: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// constraint backstop for concurrent duplicate signups
		if repository.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	// mail failure fails the signup, the user has no other way to learn
	// the code
	if err := s.mailer.SendConfirmationCode(ctx, user.Email, user.Username, code); err != nil {
		return nil, err
	}

	return user, nil
}

// IssueToken exchanges (username, confirmation_code) for a signed access
// token. The code stays valid for repeat exchanges, it is not rotated.
func (s *authService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.ConfirmationCode), []byte(confirmationCode)); err != nil {
		return "", ErrInvalidCode
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.jwtExpiry).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &TokenClaims{}
	if v, ok := mapClaims["user_id"].(string); ok {
		claims.UserID = v
	}
	if v, ok := mapClaims["username"].(string); ok {
		claims.Username = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		claims.Role = v
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
