package service

import (
	"context"
	"errors"
	"strings"

	"qualifica_backend/internal/closers/repository"
	"qualifica_backend/internal/closers/transport"
	"qualifica_backend/platform/apperr"
	"qualifica_backend/platform/logger"

	"github.com/google/uuid"
)

// CloserRepository is the persistence surface the service needs.
type CloserRepository interface {
	Create(ctx context.Context, params repository.CreateCloserParams) (repository.Closer, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]repository.Closer, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (repository.Closer, error)
	SetActive(ctx context.Context, id, tenantID uuid.UUID, active bool) (repository.Closer, error)
}

type Service struct {
	repo CloserRepository
	log  *logger.Logger
}

func New(repo CloserRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req transport.CreateCloserRequest) (transport.CloserResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.CloserResponse{}, apperr.Validation("name is required")
	}

	closer, err := s.repo.Create(ctx, repository.CreateCloserParams{
		TenantID: tenantID,
		Name:     name,
		Email:    req.Email,
	})
	if err != nil {
		return transport.CloserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create closer", err)
	}

	s.log.Info("closer created", "closerId", closer.ID, "tenantId", tenantID)
	return toResponse(closer), nil
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID) (transport.ListClosersResponse, error) {
	closers, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return transport.ListClosersResponse{}, apperr.Wrap(apperr.KindInternal, "failed to list closers", err)
	}

	resp := transport.ListClosersResponse{Closers: make([]transport.CloserResponse, 0, len(closers))}
	for _, closer := range closers {
		resp.Closers = append(resp.Closers, toResponse(closer))
	}
	return resp, nil
}

func (s *Service) SetActive(ctx context.Context, tenantID, closerID uuid.UUID, active bool) (transport.CloserResponse, error) {
	closer, err := s.repo.SetActive(ctx, closerID, tenantID, active)
	if errors.Is(err, repository.ErrCloserNotFound) {
		return transport.CloserResponse{}, apperr.NotFound("closer not found")
	}
	if err != nil {
		return transport.CloserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update closer", err)
	}

	s.log.Info("closer availability changed", "closerId", closer.ID, "isActive", closer.IsActive)
	return toResponse(closer), nil
}

func toResponse(closer repository.Closer) transport.CloserResponse {
	return transport.CloserResponse{
		ID:        closer.ID.String(),
		Name:      closer.Name,
		Email:     closer.Email,
		IsActive:  closer.IsActive,
		CreatedAt: closer.CreatedAt,
		UpdatedAt: closer.UpdatedAt,
	}
}
