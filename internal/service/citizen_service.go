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

// CitizenService application operations on citizen records.
type CitizenService interface {
	ListCitizens(ctx context.Context, req ListCitizensRequest) (*ListCitizensResponse, error)
	GetCitizen(ctx context.Context, citizenID string) (*domain.Citizen, error)
	CreateCitizen(ctx context.Context, actorID string, citizen *domain.Citizen) (string, error)
	UpdateCitizen(ctx context.Context, citizenID string, citizen *domain.Citizen) error
	DeleteCitizen(ctx context.Context, citizenID string) error
}

// ListCitizensRequest list query parameters.
type ListCitizensRequest struct {
	Filters repository.CitizenFilters
	Page    int
	Size    int
}

// ListCitizensResponse one page of citizens plus the window description.
type ListCitizensResponse struct {
	Items []*domain.Citizen `json:"items"`
	Page  models.Page       `json:"pagination"`
}

type citizenService struct {
	repo   repository.CitizensRepository
	kv     store.KV
	logger *zap.Logger
}

func NewCitizenService(repo repository.CitizensRepository, kv store.KV, logger *zap.Logger) CitizenService {
	return &citizenService{repo: repo, kv: kv, logger: logger}
}

func (s *citizenService) ListCitizens(ctx context.Context, req ListCitizensRequest) (*ListCitizensResponse, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	size := req.Size
	if size <= 0 {
		size = models.DefaultPageSize
	}

	items, total, err := s.repo.ListCitizens(ctx, req.Filters, page, size)
	if err != nil {
		s.logger.Error("list citizens failed", zap.Error(err))
		return nil, err
	}

	return &ListCitizensResponse{
		Items: items,
		Page:  models.NewPage(page, size, total),
	}, nil
}

func (s *citizenService) GetCitizen(ctx context.Context, citizenID string) (*domain.Citizen, error) {
	return s.repo.GetCitizen(ctx, citizenID)
}

func validateCitizen(citizen *domain.Citizen) error {
	if citizen == nil {
		return fmt.Errorf("citizen is required")
	}
	if citizen.Surname == "" || citizen.Name == "" {
		return fmt.Errorf("surname and name are required")
	}
	if !reference.ValidMunicipality(citizen.Municipality) {
		return fmt.Errorf("unknown municipality: %q", citizen.Municipality)
	}
	if !reference.ValidElectoralDistrict(citizen.ElectoralDistrict) {
		return fmt.Errorf("unknown electoral district: %q", citizen.ElectoralDistrict)
	}
	return nil
}

func (s *citizenService) CreateCitizen(ctx context.Context, actorID string, citizen *domain.Citizen) (string, error) {
	if err := validateCitizen(citizen); err != nil {
		return "", err
	}
	citizen.CreatedBy = actorID

	id, err := s.repo.CreateCitizen(ctx, citizen)
	if err != nil {
		s.logger.Error("create citizen failed", zap.Error(err))
		return "", err
	}
	s.logger.Info("citizen created", zap.String("citizen_id", id))
	invalidateDashboard(ctx, s.kv, s.logger)
	return id, nil
}

func (s *citizenService) UpdateCitizen(ctx context.Context, citizenID string, citizen *domain.Citizen) error {
	if err := validateCitizen(citizen); err != nil {
		return err
	}
	if err := s.repo.UpdateCitizen(ctx, citizenID, citizen); err != nil {
		s.logger.Error("update citizen failed", zap.String("citizen_id", citizenID), zap.Error(err))
		return err
	}
	invalidateDashboard(ctx, s.kv, s.logger)
	return nil
}

func (s *citizenService) DeleteCitizen(ctx context.Context, citizenID string) error {
	if err := s.repo.DeleteCitizen(ctx, citizenID); err != nil {
		s.logger.Error("delete citizen failed", zap.String("citizen_id", citizenID), zap.Error(err))
		return err
	}
	s.logger.Info("citizen deleted", zap.String("citizen_id", citizenID))
	invalidateDashboard(ctx, s.kv, s.logger)
	return nil
}
