package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/models"
	"grafeio-data/internal/reference"
	"grafeio-data/internal/repository"
	"grafeio-data/internal/store"
)

// MilitaryService application operations on conscript records.
type MilitaryService interface {
	ListMilitary(ctx context.Context, req ListMilitaryRequest) (*ListMilitaryResponse, error)
	GetMilitary(ctx context.Context, militaryID string) (*domain.MilitaryPersonnel, error)
	CreateMilitary(ctx context.Context, actorID string, m *domain.MilitaryPersonnel) (string, error)
	UpdateMilitary(ctx context.Context, militaryID string, m *domain.MilitaryPersonnel) error
	DeleteMilitary(ctx context.Context, militaryID string) error
}

// ListMilitaryRequest list query parameters.
type ListMilitaryRequest struct {
	Filters repository.MilitaryFilters
	Page    int
	Size    int
}

// ListMilitaryResponse one page of conscripts plus the window description.
type ListMilitaryResponse struct {
	Items []*domain.MilitaryPersonnel `json:"items"`
	Page  models.Page                 `json:"pagination"`
}

type militaryService struct {
	repo   repository.MilitaryRepository
	kv     store.KV
	logger *zap.Logger
}

func NewMilitaryService(repo repository.MilitaryRepository, kv store.KV, logger *zap.Logger) MilitaryService {
	return &militaryService{repo: repo, kv: kv, logger: logger}
}

func (s *militaryService) ListMilitary(ctx context.Context, req ListMilitaryRequest) (*ListMilitaryResponse, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	size := req.Size
	if size <= 0 {
		size = models.DefaultPageSize
	}

	items, total, err := s.repo.ListMilitary(ctx, req.Filters, page, size)
	if err != nil {
		s.logger.Error("list military failed", zap.Error(err))
		return nil, err
	}

	return &ListMilitaryResponse{
		Items: items,
		Page:  models.NewPage(page, size, total),
	}, nil
}

func (s *militaryService) GetMilitary(ctx context.Context, militaryID string) (*domain.MilitaryPersonnel, error) {
	return s.repo.GetMilitary(ctx, militaryID)
}

func validateMilitary(m *domain.MilitaryPersonnel) error {
	if m == nil {
		return fmt.Errorf("military personnel is required")
	}
	if m.Surname == "" || m.Name == "" {
		return fmt.Errorf("surname and name are required")
	}
	if !reference.ValidEssoLetter(m.EssoLetter) {
		return fmt.Errorf("unknown esso letter: %q", m.EssoLetter)
	}
	if m.EssoYear != "" && len(m.EssoYear) != 4 {
		return fmt.Errorf("esso year must be a four digit year: %q", m.EssoYear)
	}
	return nil
}

func (s *militaryService) CreateMilitary(ctx context.Context, actorID string, m *domain.MilitaryPersonnel) (string, error) {
	if err := validateMilitary(m); err != nil {
		return "", err
	}
	m.NormalizeEsso()
	m.CreatedBy = actorID

	id, err := s.repo.CreateMilitary(ctx, m)
	if err != nil {
		s.logger.Error("create military failed", zap.Error(err))
		return "", err
	}
	s.logger.Info("military personnel created", zap.String("military_id", id), zap.String("esso", m.Esso))
	invalidateDashboard(ctx, s.kv, s.logger)
	return id, nil
}

func (s *militaryService) UpdateMilitary(ctx context.Context, militaryID string, m *domain.MilitaryPersonnel) error {
	if err := validateMilitary(m); err != nil {
		return err
	}
	m.NormalizeEsso()

	if err := s.repo.UpdateMilitary(ctx, militaryID, m); err != nil {
		s.logger.Error("update military failed", zap.String("military_id", militaryID), zap.Error(err))
		return err
	}
	invalidateDashboard(ctx, s.kv, s.logger)
	return nil
}

func (s *militaryService) DeleteMilitary(ctx context.Context, militaryID string) error {
	if err := s.repo.DeleteMilitary(ctx, militaryID); err != nil {
		s.logger.Error("delete military failed", zap.String("military_id", militaryID), zap.Error(err))
		return err
	}
	s.logger.Info("military personnel deleted", zap.String("military_id", militaryID))
	invalidateDashboard(ctx, s.kv, s.logger)
	return nil
}
