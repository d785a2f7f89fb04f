package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/isdelr/login-api/internal/auth"
	"github.com/isdelr/login-api/internal/models"
	"github.com/isdelr/login-api/internal/store"
	"github.com/isdelr/login-api/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	Register(ctx context.Context, name, email, password string) (models.PublicUser, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	VerifyToken(ctx context.Context, token, email string) (*auth.Claims, error)
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// AuthService provides business logic for registration, login and token checks.
type AuthService struct {
	store      store.CredentialStore
	tokens     *auth.TokenIssuer
	bcryptCost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(s store.CredentialStore, tokens *auth.TokenIssuer, bcryptCost int) *AuthService {
	return &AuthService{store: s, tokens: tokens, bcryptCost: bcryptCost}
}

// Register validates the input, hashes the password and stores a new user.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.PublicUser, error) {
	if name == "" || email == "" || password == "" {
		return models.PublicUser{}, validationError(MsgMissingFields)
	}
	if !validator.ValidateName(name) {
		return models.PublicUser{}, validationError(MsgBadName)
	}
	if !validator.ValidateEmail(email) {
		return models.PublicUser{}, validationError(MsgBadEmail)
	}
	if !validator.ValidatePassword(password) {
		return models.PublicUser{}, validationError(MsgBadPassword)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), s.bcryptCost)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:         strings.ToLower(strings.TrimSpace(name)),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.Put(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return models.PublicUser{}, &Error{Kind: KindConflict, Message: MsgUserExists, Err: err}
		}
		return models.PublicUser{}, storeError(err)
	}

	return user.Public(), nil
}

// Login checks the credentials and issues a token. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, authError(KindUnauthenticated, MsgMissingCredentials, nil)
	}

	user, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn the same bcrypt time as a real comparison.
			_ = bcrypt.CompareHashAndPassword(s.fallbackHash(), []byte(password))
			return LoginResult{}, authError(KindInvalidCredentials, MsgInvalidCredentials, err)
		}
		return LoginResult{}, storeError(err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return LoginResult{}, authError(KindInvalidCredentials, MsgInvalidCredentials, err)
	}

	public := user.Public()
	token, err := s.tokens.Generate(public)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return LoginResult{User: public, Token: token}, nil
}

// VerifyToken checks the token signature and expiry, and that it was issued
// for email.
func (s *AuthService) VerifyToken(_ context.Context, token, email string) (*auth.Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, tokenError(err)
	}
	if claims.Email != email {
		return nil, tokenError(errors.New("token issued for another account"))
	}
	return claims, nil
}

func (s *AuthService) fallbackHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.bcryptCost)
	})
	return s.dummyHash
}
