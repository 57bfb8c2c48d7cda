package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"account-ledger/internal/core/domain"
	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	userRepo    ports.UserRepository
	accounts    ports.AccountStore
	hashSvc     ports.HashService
	tokenSvc    ports.TokenService
	seedBalance int64
}

// NewAuthService creates a new AuthServiceImpl. seedBalance is credited to
// the account opened at sign-up, in minor units.
func NewAuthService(
	userRepo ports.UserRepository,
	accounts ports.AccountStore,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	seedBalance int64,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		accounts:    accounts,
		hashSvc:     hashSvc,
		tokenSvc:    tokenSvc,
		seedBalance: seedBalance,
	}
}

// SignUp creates a new user plus their account and returns a signed token.
func (s *AuthServiceImpl) SignUp(ctx context.Context, req ports.SignUpRequest) (*ports.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check email: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create user: %w", err))
	}

	// Open the account under the user's id with the configured seed balance.
	account := &domain.Account{
		ID:        user.ID,
		Balance:   s.seedBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create account: %w", err))
	}

	return s.issueToken(user)
}

// SignIn validates credentials and returns the user with a fresh token.
func (s *AuthServiceImpl) SignIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return nil, apperror.ErrInvalidCredentials()
	}

	return s.issueToken(user)
}

// CurrentUser resolves an already-verified user id to the user record and
// re-issues a token, backing the token validation endpoint.
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, userID int64) (*ports.AuthResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken()
	}

	return s.issueToken(user)
}

func (s *AuthServiceImpl) issueToken(user *domain.User) (*ports.AuthResult, error) {
	token, expiry, err := s.tokenSvc.Generate(user.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}
	return &ports.AuthResult{User: user, Token: token, TokenExpiry: expiry}, nil
}
