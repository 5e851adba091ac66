package services

import (
	"context"
	"log/slog"

	"github.com/colibri-edu/content-service/internal/events"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
	"github.com/colibri-edu/content-service/internal/validator"
)

type temaService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewTemaService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) TemaService {
	return &temaService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *temaService) List(ctx context.Context) ([]models.Tema, error) {
	temas, err := s.repo.Tema().List(ctx)
	if err != nil {
		return nil, FromRepositoryError(err, "Tema no encontrado")
	}
	return temas, nil
}

func (s *temaService) Get(ctx context.Context, id uint) (*models.Tema, error) {
	tema, err := s.repo.Tema().GetByID(ctx, id)
	if err != nil {
		return nil, FromRepositoryError(err, "Tema no encontrado")
	}
	return tema, nil
}

func (s *temaService) Create(ctx context.Context, req *models.TemaCreateRequest) (*models.Tema, error) {
	if req.Nombre == "" {
		return nil, NewValidationError("El nombre es obligatorio")
	}
	if req.AreaID == 0 {
		return nil, NewValidationError("El área es obligatoria")
	}

	tema := &models.Tema{Nombre: req.Nombre, AreaID: req.AreaID}
	if err := s.repo.Tema().Create(ctx, tema); err != nil {
		return nil, FromRepositoryError(err, "Tema no encontrado")
	}

	s.publish(ctx, events.ContentCreated, tema)
	s.logger.Info("tema created", "tema_id", tema.ID, "area_id", tema.AreaID)
	return tema, nil
}

func (s *temaService) Update(ctx context.Context, id uint, req *models.TemaCreateRequest) (*models.Tema, error) {
	if req.Nombre == "" {
		return nil, NewValidationError("El nombre es obligatorio")
	}
	if req.AreaID == 0 {
		return nil, NewValidationError("El área es obligatoria")
	}

	tema := &models.Tema{ID: id, Nombre: req.Nombre, AreaID: req.AreaID}
	if err := s.repo.Tema().Update(ctx, tema); err != nil {
		return nil, FromRepositoryError(err, "Tema no encontrado")
	}

	s.publish(ctx, events.ContentUpdated, tema)
	return tema, nil
}

func (s *temaService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Tema().Delete(ctx, id); err != nil {
		return FromRepositoryError(err, "Tema no encontrado")
	}

	s.publish(ctx, events.ContentDeleted, &models.Tema{ID: id})
	return nil
}

// Duplicate clones a tema inside the same area.
func (s *temaService) Duplicate(ctx context.Context, id uint) (*models.Tema, error) {
	original, err := s.repo.Tema().GetByID(ctx, id)
	if err != nil {
		return nil, FromRepositoryError(err, "Tema no encontrado")
	}

	copy := &models.Tema{Nombre: original.Nombre + duplicateSuffix, AreaID: original.AreaID}
	if err := s.repo.Tema().Create(ctx, copy); err != nil {
		return nil, FromRepositoryError(err, "Tema no encontrado")
	}

	s.publish(ctx, events.ContentDuplicated, copy)
	return copy, nil
}

func (s *temaService) publish(ctx context.Context, eventType string, tema *models.Tema) {
	event := events.NewEvent(eventType, events.ContentChange{
		Table:  "temas",
		ID:     tema.ID,
		Nombre: tema.Nombre,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish tema event", "error", err, "event_type", eventType)
	}
}
