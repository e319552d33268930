package service

import (
	"context"
	"errors"

	"github.com/kormo-mela/kormo-services/pkg/auth"
	"github.com/kormo-mela/kormo-services/services/auth/internal/domain"
)

// Mock OTP for the MVP: any phone, fixed code. Real SMS delivery is a
// separate provider integration.
const mockOTPCode = "123456"

var (
	ErrInvalidCode  = errors.New("invalid code")
	ErrInvalidToken = errors.New("invalid token")
)

type UserStore interface {
	GetOrCreateByPhone(ctx context.Context, phone string) (*domain.User, error)
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type AuthSvc struct {
	users  UserStore
	tokens *auth.TokenIssuer
}

func NewAuthSvc(users UserStore, tokens *auth.TokenIssuer) *AuthSvc {
	return &AuthSvc{users: users, tokens: tokens}
}

// VerifyOTP checks the code, upserts the user and issues a token pair.
func (s *AuthSvc) VerifyOTP(ctx context.Context, phone, code string) (*TokenPair, error) {
	if code != mockOTPCode {
		return nil, ErrInvalidCode
	}
	u, err := s.users.GetOrCreateByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	return s.issuePair(u.ID, u.PhoneE164)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthSvc) Refresh(tokenStr string) (*TokenPair, error) {
	claims, err := s.tokens.ParseValidate(tokenStr)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Scope != auth.ScopeRefresh {
		return nil, ErrInvalidToken
	}
	uid, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.issuePair(uid, claims.Phone)
}

// Whoami resolves an access token into its identity claims.
func (s *AuthSvc) Whoami(tokenStr string) (*auth.Claims, error) {
	claims, err := s.tokens.ParseValidate(tokenStr)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Scope != auth.ScopeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthSvc) issuePair(userID int64, phone string) (*TokenPair, error) {
	access, err := s.tokens.IssueAccess(userID, phone)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(userID, phone)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}
