package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"walletapp/internal/models"
	"walletapp/internal/repository"
)

// Domain errors for auth flows.
var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// TokenConfig holds the signing parameters, passed in at construction so no
// secret lives in package state.
type TokenConfig struct {
	Secret string
	Issuer string
}

// Recorder is the slice of the audit service that other services use.
type Recorder interface {
	Record(ctx context.Context, typ, description string, meta map[string]any)
}

// AuthService handles signup, signin and token handling.
type AuthService struct {
	users  repository.Users
	audit  Recorder
	tokens TokenConfig
}

func NewAuthService(users repository.Users, audit Recorder, tokens TokenConfig) *AuthService {
	return &AuthService{users: users, audit: audit, tokens: tokens}
}

// Claims defines JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Account balances are assigned once at signup, in [minStartBalance, maxStartBalance).
const (
	minStartBalance = 1.0
	maxStartBalance = 10000.0
)

// SignUp creates a user plus its linked account and returns a token for the
// new user. Fails with ErrDuplicateUsername when the username is taken.
func (s *AuthService) SignUp(ctx context.Context, p SignUpParams) (string, error) {
	if strings.TrimSpace(p.Password) == "" {
		return "", errors.New("password is empty")
	}

	existing, err := s.users.GetByUsername(ctx, p.Username)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrDuplicateUsername
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return "", err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     p.Username,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
	}
	account := models.Account{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		Balance: minStartBalance + rand.Float64()*(maxStartBalance-minStartBalance),
	}

	if err := s.users.CreateWithAccount(ctx, user, account); err != nil {
		// a concurrent signup can win the unique username between the
		// lookup above and the insert
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrDuplicateUsername
		}
		return "", err
	}

	s.audit.Record(ctx, models.AuditSignUp, "user signed up", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})

	return s.issueToken(user.ID)
}

// SignIn validates credentials and returns a signed token.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		s.audit.Record(ctx, models.AuditSignInFailed, "sign-in failed: unknown user", map[string]any{
			"username": username,
		})
		return "", ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		s.audit.Record(ctx, models.AuditSignInFailed, "sign-in failed: bad password", map[string]any{
			"user_id":  u.ID,
			"username": username,
		})
		return "", ErrInvalidCredentials
	}

	s.audit.Record(ctx, models.AuditSignIn, "user signed in", map[string]any{
		"user_id":  u.ID,
		"username": username,
	})

	return s.issueToken(u.ID)
}

// ParseToken parses a JWT and returns the embedded userID.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.tokens.Secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

// issueToken signs a JWT carrying the user id. Tokens carry no expiry: any
// token issued with the current secret stays valid until the secret rotates.
func (s *AuthService) issueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.tokens.Issuer,
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.tokens.Secret))
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
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
