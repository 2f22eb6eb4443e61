package user

import (
	"context"
	"fmt"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
	apperrors "github.com/avasquez/dental-api/pkg/errors"
	"github.com/avasquez/dental-api/pkg/security"
)

type UserServicer interface {
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
	UpdateUser(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error)
	DeactivateUser(ctx context.Context, id int64) error
}

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// EnsureDefaultAdmin creates the bootstrap admin account when the users
// table is empty, so a fresh install can always log in.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash default admin password: %w", err)
	}
	admin := &model.User{
		Username:     username,
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Administrator",
		Email:        "admin@localhost",
		Role:         model.UserRoleAdmin,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	role := model.UserRole(req.Role)
	if req.Role == "" {
		role = model.UserRoleStaff
	}
	if !role.Valid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid role: %s", req.Role), nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("password does not meet requirements", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		role := model.UserRole(*req.Role)
		if !role.Valid() {
			return nil, apperrors.BadRequest(fmt.Sprintf("invalid role: %s", *req.Role), nil)
		}
		user.Role = role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) DeactivateUser(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}
