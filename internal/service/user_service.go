package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/repository"
)

// UserService back-office profile management. Role and active-flag changes
// require an ADMIN actor.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.UserProfile, error)
	UpdateUser(ctx context.Context, actorID, userID, role string, isActive bool) error
	RecordLogin(ctx context.Context, userID, ip string) error
}

type userService struct {
	repo   repository.UsersRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UsersRepository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) ListUsers(ctx context.Context) ([]*domain.UserProfile, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, actorID, userID, role string, isActive bool) error {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return fmt.Errorf("invalid role: %q", role)
	}

	actor, err := s.repo.GetUser(ctx, actorID)
	if err != nil {
		return fmt.Errorf("actor lookup failed: %w", err)
	}
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("only an admin can change user profiles")
	}

	if err := s.repo.UpdateUser(ctx, userID, role, isActive); err != nil {
		s.logger.Error("update user failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	s.logger.Info("user profile updated",
		zap.String("user_id", userID),
		zap.String("role", role),
		zap.Bool("is_active", isActive),
		zap.String("actor_id", actorID),
	)
	return nil
}

func (s *userService) RecordLogin(ctx context.Context, userID, ip string) error {
	return s.repo.RecordLogin(ctx, userID, ip, time.Now())
}
