package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hallever/internal/domain"
	"hallever/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing.
	BcryptCost = 10

	// TokenExpiration is how long an issued admin token stays valid.
	TokenExpiration = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

// Claims represents the JWT claims issued to admin users.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserStore adds the email lookup to the shared store surface.
type UserStore interface {
	Store[*domain.User]
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuthService handles admin accounts, login tokens and password-reset
// requests.
type AuthService struct {
	users     UserStore
	resets    Store[*domain.ForgotPasswordRequest]
	jwtSecret string
	logger    *zap.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(users UserStore, resets Store[*domain.ForgotPasswordRequest], jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		resets:    resets,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register creates a new admin account with a hashed password.
func (s *AuthService) Register(ctx context.Context, email, password, fullName, phoneNumber string) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		FullName:     fullName,
		PhoneNumber:  phoneNumber,
		Role:         "admin",
		PasswordHash: string(hash),
	}
	user.SetDocumentID(uuid.NewString())
	user.TouchCreated(time.Now().UTC())

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("Admin account registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	user, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err = s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetUserByID retrieves an account.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// RequestPasswordReset records a reset request for admin follow-up and
// returns the generated token. Unknown emails still get a record so the
// endpoint does not leak which accounts exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*domain.ForgotPasswordRequest, error) {
	req := &domain.ForgotPasswordRequest{
		Email: email,
		Token: uuid.NewString(),
	}
	req.SetDocumentID(uuid.NewString())
	req.TouchCreated(time.Now().UTC())

	if err := s.resets.Insert(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to record reset request: %w", err)
	}

	s.logger.Info("Password reset requested", zap.String("email", email))
	return req, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
