package services

import (
	"context"
	"log/slog"

	"github.com/colibri-edu/content-service/internal/events"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
	"github.com/colibri-edu/content-service/internal/validator"
)

type articuloService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewArticuloService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ArticuloService {
	return &articuloService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *articuloService) List(ctx context.Context, filter repositories.ArticuloFilter) ([]models.Articulo, error) {
	articulos, err := s.repo.Articulo().List(ctx, filter)
	if err != nil {
		return nil, FromRepositoryError(err, "Artículo no encontrado")
	}
	return articulos, nil
}

func (s *articuloService) Get(ctx context.Context, id uint) (*models.Articulo, error) {
	articulo, err := s.repo.Articulo().GetByID(ctx, id)
	if err != nil {
		return nil, FromRepositoryError(err, "Artículo no encontrado")
	}
	return articulo, nil
}

func (s *articuloService) Create(ctx context.Context, req *models.ArticuloCreateRequest) (*models.Articulo, error) {
	if req.Titulo == "" {
		return nil, NewValidationError("El título es obligatorio")
	}
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, NewValidationError("Faltan campos obligatorios")
	}

	articulo := &models.Articulo{
		Titulo:    req.Titulo,
		Contenido: req.Contenido,
		GradoID:   req.GradoID,
		AreaID:    req.AreaID,
		TemaID:    req.TemaID,
		UsuarioID: req.UsuarioID,
	}
	if err := s.repo.Articulo().Create(ctx, articulo); err != nil {
		return nil, FromRepositoryError(err, "Artículo no encontrado")
	}

	s.publish(ctx, events.ContentCreated, articulo)
	s.logger.Info("articulo created", "articulo_id", articulo.ID, "tema_id", articulo.TemaID)
	return articulo, nil
}

// Update rewrites the article. A missing usuario_id keeps the stored author;
// updated_at is always refreshed server-side.
func (s *articuloService) Update(ctx context.Context, id uint, req *models.ArticuloUpdateRequest) (*models.Articulo, error) {
	if req.Titulo == "" {
		return nil, NewValidationError("El título es obligatorio")
	}

	existing, err := s.repo.Articulo().GetByID(ctx, id)
	if err != nil {
		return nil, FromRepositoryError(err, "Artículo no encontrado")
	}

	usuarioID := existing.UsuarioID
	if req.UsuarioID != nil {
		usuarioID = *req.UsuarioID
	}

	articulo := &models.Articulo{
		ID:        id,
		Titulo:    req.Titulo,
		Contenido: req.Contenido,
		GradoID:   req.GradoID,
		AreaID:    req.AreaID,
		TemaID:    req.TemaID,
		UsuarioID: usuarioID,
	}
	if err := s.repo.Articulo().Update(ctx, articulo); err != nil {
		return nil, FromRepositoryError(err, "Artículo no encontrado")
	}

	updated, err := s.repo.Articulo().GetByID(ctx, id)
	if err != nil {
		return nil, FromRepositoryError(err, "Artículo no encontrado")
	}

	s.publish(ctx, events.ContentUpdated, updated)
	return updated, nil
}

func (s *articuloService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Articulo().Delete(ctx, id); err != nil {
		return FromRepositoryError(err, "Artículo no encontrado")
	}

	s.publish(ctx, events.ContentDeleted, &models.Articulo{ID: id})
	return nil
}

func (s *articuloService) publish(ctx context.Context, eventType string, articulo *models.Articulo) {
	event := events.NewEvent(eventType, events.ContentChange{
		Table:  "articulos",
		ID:     articulo.ID,
		Actor:  articulo.UsuarioID,
		Nombre: articulo.Titulo,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish articulo event", "error", err, "event_type", eventType)
	}
}
