package auth

import (
	"context"
	"errors"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
	"github.com/avasquez/dental-api/pkg/auth"
	apperrors "github.com/avasquez/dental-api/pkg/errors"
	"github.com/avasquez/dental-api/pkg/security"
)

var errBadCredentials = errors.New("invalid username or password")

type AuthServicer interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error)
	ChangePassword(ctx context.Context, userID int64, req *model.ChangePasswordRequest) error
}

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	tokens auth.JWTService
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, tokens auth.JWTService) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// Login verifies credentials against the stored bcrypt hash. A missing
// user and a wrong password produce the same error so usernames cannot
// be probed.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperrors.Unauthorized(errBadCredentials)
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized(errBadCredentials)
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(errBadCredentials)
	}

	resp, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, apperrors.Internal(err)
	}
	return resp, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	// Reload so role changes and deactivation take effect on refresh.
	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized(errors.New("account deactivated"))
	}

	return s.issueTokens(user)
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req *model.ChangePasswordRequest) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, req.CurrentPassword); err != nil {
		return apperrors.Unauthorized(errors.New("current password is incorrect"))
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return apperrors.BadRequest("password does not meet requirements", err)
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

func (s *Service) issueTokens(user *model.User) (*model.TokenResponse, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
