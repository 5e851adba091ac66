package services

import (
	"context"
	"log/slog"

	"github.com/colibri-edu/content-service/internal/events"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
	"github.com/colibri-edu/content-service/internal/validator"
)

// duplicateSuffix marks copies created through the duplicar endpoints.
const duplicateSuffix = " (Copia)"

type gradoService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewGradoService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) GradoService {
	return &gradoService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *gradoService) List(ctx context.Context) ([]models.Grado, error) {
	grados, err := s.repo.Grado().List(ctx)
	if err != nil {
		return nil, FromRepositoryError(err, "Grado no encontrado")
	}
	return grados, nil
}

func (s *gradoService) Get(ctx context.Context, id uint) (*models.Grado, error) {
	grado, err := s.repo.Grado().GetByID(ctx, id)
	if err != nil {
		return nil, FromRepositoryError(err, "Grado no encontrado")
	}
	return grado, nil
}

func (s *gradoService) Create(ctx context.Context, req *models.GradoCreateRequest) (*models.Grado, error) {
	if req.Nombre == "" {
		return nil, NewValidationError("El nombre es obligatorio")
	}

	grado := &models.Grado{Nombre: req.Nombre}
	if err := s.repo.Grado().Create(ctx, grado); err != nil {
		return nil, FromRepositoryError(err, "Grado no encontrado")
	}

	s.publish(ctx, events.ContentCreated, grado)
	s.logger.Info("grado created", "grado_id", grado.ID)
	return grado, nil
}

func (s *gradoService) Update(ctx context.Context, id uint, req *models.GradoCreateRequest) (*models.Grado, error) {
	if req.Nombre == "" {
		return nil, NewValidationError("El nombre es obligatorio")
	}

	grado := &models.Grado{ID: id, Nombre: req.Nombre}
	if err := s.repo.Grado().Update(ctx, grado); err != nil {
		return nil, FromRepositoryError(err, "Grado no encontrado")
	}

	s.publish(ctx, events.ContentUpdated, grado)
	return grado, nil
}

func (s *gradoService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Grado().Delete(ctx, id); err != nil {
		return FromRepositoryError(err, "Grado no encontrado")
	}

	s.publish(ctx, events.ContentDeleted, &models.Grado{ID: id})
	return nil
}

// Duplicate clones a grado under the same name with the copy marker appended.
func (s *gradoService) Duplicate(ctx context.Context, id uint) (*models.Grado, error) {
	original, err := s.repo.Grado().GetByID(ctx, id)
	if err != nil {
		return nil, FromRepositoryError(err, "Grado no encontrado")
	}

	copy := &models.Grado{Nombre: original.Nombre + duplicateSuffix}
	if err := s.repo.Grado().Create(ctx, copy); err != nil {
		return nil, FromRepositoryError(err, "Grado no encontrado")
	}

	s.publish(ctx, events.ContentDuplicated, copy)
	s.logger.Info("grado duplicated", "source_id", id, "copy_id", copy.ID)
	return copy, nil
}

func (s *gradoService) publish(ctx context.Context, eventType string, grado *models.Grado) {
	event := events.NewEvent(eventType, events.ContentChange{
		Table:  "grados",
		ID:     grado.ID,
		Nombre: grado.Nombre,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish grado event", "error", err, "event_type", eventType)
	}
}
