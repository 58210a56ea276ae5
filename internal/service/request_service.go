package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/models"
	"grafeio-data/internal/repository"
	"grafeio-data/internal/store"
)

// RequestService application operations on service requests. Listings are
// enriched with requester display data resolved from the citizen and
// military repositories.
type RequestService interface {
	ListRequests(ctx context.Context, req ListRequestsRequest) (*ListRequestsResponse, error)
	GetRequest(ctx context.Context, requestID string) (*EnrichedRequest, error)
	CreateRequest(ctx context.Context, actorID string, request *domain.Request) (string, error)
	UpdateRequest(ctx context.Context, requestID string, request *domain.Request) error
	DeleteRequest(ctx context.Context, requestID string) error
}

// ListRequestsRequest list query parameters.
type ListRequestsRequest struct {
	Filters repository.RequestFilters
	Page    int
	Size    int
}

// EnrichedRequest a request row with its requester resolved. A dangling
// reference keeps the row and falls back to the unknown-requester
// placeholder.
type EnrichedRequest struct {
	*domain.Request
	RequesterName  string `json:"requester_name"`
	RequesterPhone string `json:"requester_phone,omitempty"`
	RequesterEsso  string `json:"requester_esso,omitempty"`
	Overdue        bool   `json:"overdue"`
}

// ListRequestsResponse one page of enriched requests plus the window.
type ListRequestsResponse struct {
	Items []*EnrichedRequest `json:"items"`
	Page  models.Page        `json:"pagination"`
}

type requestService struct {
	requests repository.RequestsRepository
	citizens repository.CitizensRepository
	military repository.MilitaryRepository
	kv       store.KV
	logger   *zap.Logger
}

func NewRequestService(
	requests repository.RequestsRepository,
	citizens repository.CitizensRepository,
	military repository.MilitaryRepository,
	kv store.KV,
	logger *zap.Logger,
) RequestService {
	return &requestService{
		requests: requests,
		citizens: citizens,
		military: military,
		kv:       kv,
		logger:   logger,
	}
}

func (s *requestService) ListRequests(ctx context.Context, req ListRequestsRequest) (*ListRequestsResponse, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	size := req.Size
	if size <= 0 {
		size = models.DefaultPageSize
	}

	items, total, err := s.requests.ListRequests(ctx, req.Filters, page, size)
	if err != nil {
		s.logger.Error("list requests failed", zap.Error(err))
		return nil, err
	}

	enriched, err := s.enrich(ctx, items)
	if err != nil {
		return nil, err
	}

	return &ListRequestsResponse{
		Items: enriched,
		Page:  models.NewPage(page, size, total),
	}, nil
}

// enrich resolves requester display data for a page of requests with one
// batch lookup per entity kind.
func (s *requestService) enrich(ctx context.Context, items []*domain.Request) ([]*EnrichedRequest, error) {
	citizenIDs := []string{}
	militaryIDs := []string{}
	seenCitizen := map[string]bool{}
	seenMilitary := map[string]bool{}
	for _, r := range items {
		if r.CitizenID != "" && !seenCitizen[r.CitizenID] {
			seenCitizen[r.CitizenID] = true
			citizenIDs = append(citizenIDs, r.CitizenID)
		}
		if r.MilitaryPersonnelID != "" && !seenMilitary[r.MilitaryPersonnelID] {
			seenMilitary[r.MilitaryPersonnelID] = true
			militaryIDs = append(militaryIDs, r.MilitaryPersonnelID)
		}
	}

	citizens, err := s.citizens.GetCitizensByIDs(ctx, citizenIDs)
	if err != nil {
		s.logger.Error("request enrichment citizen lookup failed", zap.Error(err))
		return nil, err
	}
	military, err := s.military.GetMilitaryByIDs(ctx, militaryIDs)
	if err != nil {
		s.logger.Error("request enrichment military lookup failed", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	enriched := make([]*EnrichedRequest, 0, len(items))
	for _, r := range items {
		e := &EnrichedRequest{
			Request:       r,
			RequesterName: domain.UnknownRequester,
			Overdue:       r.OverdueAt(now),
		}
		if c, ok := citizens[r.CitizenID]; ok {
			e.RequesterName = c.FullName()
			e.RequesterPhone = c.MobilePhone
		} else if m, ok := military[r.MilitaryPersonnelID]; ok {
			e.RequesterName = m.DisplayName()
			e.RequesterEsso = m.Esso
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}

func (s *requestService) GetRequest(ctx context.Context, requestID string) (*EnrichedRequest, error) {
	r, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	enriched, err := s.enrich(ctx, []*domain.Request{r})
	if err != nil {
		return nil, err
	}
	return enriched[0], nil
}

func (s *requestService) CreateRequest(ctx context.Context, actorID string, request *domain.Request) (string, error) {
	if request == nil {
		return "", fmt.Errorf("request is required")
	}
	if request.RequestType == "" {
		return "", fmt.Errorf("request_type is required")
	}
	if err := request.ValidateRequesterRefs(); err != nil {
		return "", err
	}
	if request.Status == "" {
		request.Status = domain.RequestPending
	}
	if err := request.ApplyStatus(request.Status, time.Now()); err != nil {
		return "", err
	}
	request.CreatedBy = actorID

	id, err := s.requests.CreateRequest(ctx, request)
	if err != nil {
		s.logger.Error("create request failed", zap.Error(err))
		return "", err
	}
	s.logger.Info("request created", zap.String("request_id", id), zap.String("status", request.Status))
	invalidateDashboard(ctx, s.kv, s.logger)
	return id, nil
}

func (s *requestService) UpdateRequest(ctx context.Context, requestID string, request *domain.Request) error {
	if request == nil {
		return fmt.Errorf("request is required")
	}
	if request.RequestType == "" {
		return fmt.Errorf("request_type is required")
	}
	if err := request.ValidateRequesterRefs(); err != nil {
		return err
	}

	existing, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}

	// carry the existing completion stamp through the transition rules
	request.CompletionDate = existing.CompletionDate
	status := request.Status
	if status == "" {
		status = existing.Status
	}
	if err := request.ApplyStatus(status, time.Now()); err != nil {
		return err
	}

	if err := s.requests.UpdateRequest(ctx, requestID, request); err != nil {
		s.logger.Error("update request failed", zap.String("request_id", requestID), zap.Error(err))
		return err
	}
	invalidateDashboard(ctx, s.kv, s.logger)
	return nil
}

func (s *requestService) DeleteRequest(ctx context.Context, requestID string) error {
	if err := s.requests.DeleteRequest(ctx, requestID); err != nil {
		s.logger.Error("delete request failed", zap.String("request_id", requestID), zap.Error(err))
		return err
	}
	s.logger.Info("request deleted", zap.String("request_id", requestID))
	invalidateDashboard(ctx, s.kv, s.logger)
	return nil
}
