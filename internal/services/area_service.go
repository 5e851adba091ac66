package services

import (
	"context"
	"log/slog"

	"github.com/colibri-edu/content-service/internal/events"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
	"github.com/colibri-edu/content-service/internal/validator"
)

type areaService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAreaService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) AreaService {
	return &areaService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *areaService) List(ctx context.Context) ([]models.Area, error) {
	areas, err := s.repo.Area().List(ctx)
	if err != nil {
		return nil, FromRepositoryError(err, "Área no encontrada")
	}
	return areas, nil
}

func (s *areaService) Get(ctx context.Context, id uint) (*models.Area, error) {
	area, err := s.repo.Area().GetByID(ctx, id)
	if err != nil {
		return nil, FromRepositoryError(err, "Área no encontrada")
	}
	return area, nil
}

func (s *areaService) Create(ctx context.Context, req *models.AreaCreateRequest) (*models.Area, error) {
	if req.Nombre == "" {
		return nil, NewValidationError("El nombre es obligatorio")
	}
	if req.GradoID == 0 {
		return nil, NewValidationError("El grado es obligatorio")
	}

	area := &models.Area{Nombre: req.Nombre, GradoID: req.GradoID}
	if err := s.repo.Area().Create(ctx, area); err != nil {
		return nil, FromRepositoryError(err, "Área no encontrada")
	}

	s.publish(ctx, events.ContentCreated, area)
	s.logger.Info("area created", "area_id", area.ID, "grado_id", area.GradoID)
	return area, nil
}

func (s *areaService) Update(ctx context.Context, id uint, req *models.AreaCreateRequest) (*models.Area, error) {
	if req.Nombre == "" {
		return nil, NewValidationError("El nombre es obligatorio")
	}
	if req.GradoID == 0 {
		return nil, NewValidationError("El grado es obligatorio")
	}

	area := &models.Area{ID: id, Nombre: req.Nombre, GradoID: req.GradoID}
	if err := s.repo.Area().Update(ctx, area); err != nil {
		return nil, FromRepositoryError(err, "Área no encontrada")
	}

	s.publish(ctx, events.ContentUpdated, area)
	return area, nil
}

func (s *areaService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Area().Delete(ctx, id); err != nil {
		return FromRepositoryError(err, "Área no encontrada")
	}

	s.publish(ctx, events.ContentDeleted, &models.Area{ID: id})
	return nil
}

// Duplicate clones an area inside the same grado.
func (s *areaService) Duplicate(ctx context.Context, id uint) (*models.Area, error) {
	original, err := s.repo.Area().GetByID(ctx, id)
	if err != nil {
		return nil, FromRepositoryError(err, "Área no encontrada")
	}

	copy := &models.Area{Nombre: original.Nombre + duplicateSuffix, GradoID: original.GradoID}
	if err := s.repo.Area().Create(ctx, copy); err != nil {
		return nil, FromRepositoryError(err, "Área no encontrada")
	}

	s.publish(ctx, events.ContentDuplicated, copy)
	return copy, nil
}

func (s *areaService) publish(ctx context.Context, eventType string, area *models.Area) {
	event := events.NewEvent(eventType, events.ContentChange{
		Table:  "areas",
		ID:     area.ID,
		Nombre: area.Nombre,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish area event", "error", err, "event_type", eventType)
	}
}
