package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"envmonitor/internal/models"
	"envmonitor/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrEmptyUsername   = errors.New("username is empty")
)

type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// Identity is the authenticated caller carried by a token.
type Identity struct {
	UserID    int         `json:"user_id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (i Identity) IsAdmin() bool { return i.Role == models.RoleAdmin }

// Token is a signed session token and the identity it carries.
type Token struct {
	Value string
	Identity
}

// AuthService handles user auth logic
type AuthService struct {
	authRepo   repository.Authorization
	signingKey []byte
	tokenTTL   time.Duration

	// serializes sign-up so that exactly one account becomes admin
	signUpMu sync.Mutex
}

func NewAuthService(repo repository.Authorization, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthService{authRepo: repo, signingKey: []byte(cfg.SigningKey), tokenTTL: cfg.TokenTTL}
}

// SignUp hashes password and creates a new user. The first account
// becomes admin, every later one a viewer.
func (s *AuthService) SignUp(username, password string) (int, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, ErrEmptyUsername
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}

	s.signUpMu.Lock()
	defer s.signUpMu.Unlock()

	n, err := s.authRepo.Count()
	if err != nil {
		return 0, err
	}
	role := models.RoleViewer
	if n == 0 {
		role = models.RoleAdmin
	}
	return s.authRepo.Create(username, hash, role)
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// GenerateToken validates credentials and returns JWT
func (s *AuthService) GenerateToken(username, password string) (Token, error) {
	u, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return Token{}, err
	}
	if u == nil {
		return Token{}, ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return Token{}, ErrInvalidPassword
	}

	return s.issueToken(u)
}

// ParseToken parses JWT and returns the identity it carries
func (s *AuthService) ParseToken(accessToken string) (Identity, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	id := Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     models.Role(claims.Role),
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(u *models.User) (Token, error) {
	now := time.Now()
	exp := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   u.ID,
		Username: u.Username,
		Role:     string(u.Role),
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return Token{}, err
	}
	return Token{
		Value: signed,
		Identity: Identity{
			UserID:    u.ID,
			Username:  u.Username,
			Role:      u.Role,
			ExpiresAt: jwt.NewNumericDate(exp).Time,
		},
	}, nil
}
