package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
)

type statsService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewStatsService(repo repositories.Repository, logger *slog.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) Stats(ctx context.Context) (*models.StatsResponse, error) {
	stats, err := s.repo.Stats().Counts(ctx)
	if err != nil {
		return nil, FromRepositoryError(err, "Registro no encontrado")
	}
	return stats, nil
}

func (s *statsService) Time(ctx context.Context) (time.Time, error) {
	now, err := s.repo.Stats().Now(ctx)
	if err != nil {
		return time.Time{}, FromRepositoryError(err, "Registro no encontrado")
	}
	return now, nil
}
