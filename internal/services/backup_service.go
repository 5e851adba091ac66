package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/colibri-edu/content-service/internal/cache"
	"github.com/colibri-edu/content-service/internal/events"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
)

// Hierarchy table order. Deletes run back-to-front so children go before
// parents; inserts run front-to-back.
var hierarchyOrder = []string{"grados", "areas", "temas", "articulos"}

type backupService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	publisher    events.EventPublisher
	cacheManager *cache.CacheManager

	artifactPath string
	systemUserID uint
}

func NewBackupService(repo repositories.Repository, logger *slog.Logger, publisher events.EventPublisher, cacheManager *cache.CacheManager, artifactPath string, systemUserID uint) BackupService {
	return &backupService{
		repo:         repo,
		logger:       logger,
		publisher:    publisher,
		cacheManager: cacheManager,
		artifactPath: artifactPath,
		systemUserID: systemUserID,
	}
}

// Backup snapshots the four hierarchy tables, ordered by id, and persists the
// artifact that Restore replays.
func (s *backupService) Backup(ctx context.Context) (*models.BackupPayload, error) {
	payload := &models.BackupPayload{}

	var err error
	if payload.Grados, err = s.repo.Grado().List(ctx); err != nil {
		return nil, FromRepositoryError(err, "Grado no encontrado")
	}
	if payload.Areas, err = s.repo.Area().List(ctx); err != nil {
		return nil, FromRepositoryError(err, "Área no encontrada")
	}
	if payload.Temas, err = s.repo.Tema().List(ctx); err != nil {
		return nil, FromRepositoryError(err, "Tema no encontrado")
	}
	if payload.Articulos, err = s.repo.Articulo().List(ctx, repositories.ArticuloFilter{}); err != nil {
		return nil, FromRepositoryError(err, "Artículo no encontrado")
	}

	if err := s.writeArtifact(payload); err != nil {
		return nil, NewInternalError("No se pudo guardar el respaldo", err)
	}

	s.publishBulk(ctx, events.BackupCompleted, events.BulkChange{
		Records: len(payload.Grados) + len(payload.Areas) + len(payload.Temas) + len(payload.Articulos),
	})
	s.logger.Info("backup completed",
		"grados", len(payload.Grados),
		"areas", len(payload.Areas),
		"temas", len(payload.Temas),
		"articulos", len(payload.Articulos))

	return payload, nil
}

// Restore replays the persisted artifact inside one transaction: children are
// deleted first, then rows are re-inserted parent-first with their original
// ids. Any failure rolls the whole restore back.
func (s *backupService) Restore(ctx context.Context) error {
	payload, err := s.readArtifact()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewValidationError("No hay respaldo disponible")
		}
		return NewInternalError("No se pudo leer el respaldo", err)
	}

	// Articles restored from older artifacts may not carry an author.
	for i := range payload.Articulos {
		if payload.Articulos[i].UsuarioID == 0 {
			payload.Articulos[i].UsuarioID = s.systemUserID
		}
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := deleteAllReverse(ctx, tx); err != nil {
			return err
		}

		for i := range payload.Grados {
			if err := tx.Grado().Create(ctx, &payload.Grados[i]); err != nil {
				return err
			}
		}
		for i := range payload.Areas {
			if err := tx.Area().Create(ctx, &payload.Areas[i]); err != nil {
				return err
			}
		}
		for i := range payload.Temas {
			if err := tx.Tema().Create(ctx, &payload.Temas[i]); err != nil {
				return err
			}
		}
		for i := range payload.Articulos {
			if err := tx.Articulo().Create(ctx, &payload.Articulos[i]); err != nil {
				return err
			}
		}

		// Explicit-id inserts leave the sequences behind MAX(id).
		for _, table := range hierarchyOrder {
			if err := tx.Tabla().ResetSequence(ctx, table); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return FromRepositoryError(err, "Registro no encontrado")
	}

	cache.InvalidateAll(ctx, s.cacheManager)
	s.publishBulk(ctx, events.RestoreCompleted, events.BulkChange{
		Records: len(payload.Grados) + len(payload.Areas) + len(payload.Temas) + len(payload.Articulos),
	})
	s.logger.Info("restore completed", "articulos", len(payload.Articulos))

	return nil
}

// Clear empties the hierarchy tables, children first, in one transaction.
func (s *backupService) Clear(ctx context.Context) error {
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return deleteAllReverse(ctx, tx)
	})
	if err != nil {
		return FromRepositoryError(err, "Registro no encontrado")
	}

	cache.InvalidateAll(ctx, s.cacheManager)
	s.publishBulk(ctx, events.ClearCompleted, events.BulkChange{})
	s.logger.Info("hierarchy cleared")

	return nil
}

func deleteAllReverse(ctx context.Context, tx repositories.Repository) error {
	if err := tx.Articulo().DeleteAll(ctx); err != nil {
		return err
	}
	if err := tx.Tema().DeleteAll(ctx); err != nil {
		return err
	}
	if err := tx.Area().DeleteAll(ctx); err != nil {
		return err
	}
	return tx.Grado().DeleteAll(ctx)
}

func (s *backupService) writeArtifact(payload *models.BackupPayload) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	// Write-then-rename so a crash never leaves a truncated artifact.
	dir := filepath.Dir(s.artifactPath)
	tmp, err := os.CreateTemp(dir, "backup-*.json")
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close backup file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.artifactPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to persist backup file: %w", err)
	}

	return nil
}

func (s *backupService) readArtifact() (*models.BackupPayload, error) {
	data, err := os.ReadFile(s.artifactPath)
	if err != nil {
		return nil, err
	}

	payload := &models.BackupPayload{}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, fmt.Errorf("failed to parse backup file: %w", err)
	}
	return payload, nil
}

func (s *backupService) publishBulk(ctx context.Context, eventType string, change events.BulkChange) {
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, change)); err != nil {
		s.logger.Error("failed to publish backup event", "error", err, "event_type", eventType)
	}
}
