package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/colibri-edu/content-service/internal/cache"
	"github.com/colibri-edu/content-service/internal/events"
	"github.com/colibri-edu/content-service/internal/models"
)

func newBackupFixture(t *testing.T) (*MockRepository, *events.MockEventPublisher, BackupService, string) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := NewMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	artifact := filepath.Join(t.TempDir(), "backup.json")
	service := NewBackupService(repo, logger, publisher, cache.NewCacheManager(nil), artifact, 99)

	return repo, publisher, service, artifact
}

func seedHierarchy(repo *MockRepository) {
	ctx := context.Background()
	repo.Grado().Create(ctx, &models.Grado{Nombre: "Primero"})
	repo.Grado().Create(ctx, &models.Grado{Nombre: "Segundo"})
	repo.Area().Create(ctx, &models.Area{Nombre: "Ciencias", GradoID: 1})
	repo.Tema().Create(ctx, &models.Tema{Nombre: "La célula", AreaID: 3})
	repo.Articulo().Create(ctx, &models.Articulo{Titulo: "Partes de la célula", GradoID: 1, AreaID: 3, TemaID: 4, UsuarioID: 7})
	repo.Articulo().Create(ctx, &models.Articulo{Titulo: "Sin autor", GradoID: 1, AreaID: 3, TemaID: 4})
}

func TestBackupService_RestoreWithoutArtifact(t *testing.T) {
	_, _, service, _ := newBackupFixture(t)

	err := service.Restore(context.Background())
	if err == nil {
		t.Fatal("Expected error when no backup artifact exists")
	}
	if KindOf(err) != ErrorValidation {
		t.Errorf("Expected validation error, got kind %d", KindOf(err))
	}
	if UserMessage(err) != "No hay respaldo disponible" {
		t.Errorf("Unexpected message: %q", UserMessage(err))
	}
}

func TestBackupService_BackupRestoreRoundTrip(t *testing.T) {
	repo, publisher, service, artifact := newBackupFixture(t)
	seedHierarchy(repo)
	ctx := context.Background()

	payload, err := service.Backup(ctx)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if len(payload.Grados) != 2 || len(payload.Areas) != 1 || len(payload.Temas) != 1 || len(payload.Articulos) != 2 {
		t.Fatalf("Unexpected snapshot sizes: %d/%d/%d/%d",
			len(payload.Grados), len(payload.Areas), len(payload.Temas), len(payload.Articulos))
	}
	if _, err := os.Stat(artifact); err != nil {
		t.Fatalf("Backup artifact not persisted: %v", err)
	}

	// Mutate the store so the restore has something to undo.
	repo.Grado().Create(ctx, &models.Grado{Nombre: "Tercero"})
	repo.Articulo().Delete(ctx, 5)

	mark := len(repo.ops)
	if err := service.Restore(ctx); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	// Children delete before parents, then rows re-insert parent-first, then
	// the sequences realign.
	want := []string{
		"delete_all:articulos",
		"delete_all:temas",
		"delete_all:areas",
		"delete_all:grados",
		"create:grados",
		"create:grados",
		"create:areas",
		"create:temas",
		"create:articulos",
		"create:articulos",
		"reset_sequence:grados",
		"reset_sequence:areas",
		"reset_sequence:temas",
		"reset_sequence:articulos",
	}
	got := repo.opsSince(mark)
	if len(got) != len(want) {
		t.Fatalf("Expected %d operations, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Operation %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if len(repo.grados) != 2 {
		t.Errorf("Expected 2 grados after restore, got %d", len(repo.grados))
	}
	if len(repo.articulos) != 2 {
		t.Fatalf("Expected 2 articulos after restore, got %d", len(repo.articulos))
	}

	// Rows keep their original ids and articles without an author get the
	// system user.
	for _, articulo := range repo.articulos {
		if articulo.Titulo == "Sin autor" && articulo.UsuarioID != 99 {
			t.Errorf("Expected system user 99 on restored article, got %d", articulo.UsuarioID)
		}
		if articulo.Titulo == "Partes de la célula" && articulo.UsuarioID != 7 {
			t.Errorf("Expected original author 7, got %d", articulo.UsuarioID)
		}
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(published))
	}
	if published[0].Type != events.BackupCompleted {
		t.Errorf("Expected %q, got %q", events.BackupCompleted, published[0].Type)
	}
	if published[1].Type != events.RestoreCompleted {
		t.Errorf("Expected %q, got %q", events.RestoreCompleted, published[1].Type)
	}
}

func TestBackupService_Clear(t *testing.T) {
	repo, publisher, service, _ := newBackupFixture(t)
	seedHierarchy(repo)

	mark := len(repo.ops)
	if err := service.Clear(context.Background()); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	want := []string{"delete_all:articulos", "delete_all:temas", "delete_all:areas", "delete_all:grados"}
	got := repo.opsSince(mark)
	if len(got) != len(want) {
		t.Fatalf("Expected %d operations, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Operation %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if len(repo.grados) != 0 || len(repo.articulos) != 0 {
		t.Error("Expected empty hierarchy after clear")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.ClearCompleted {
		t.Fatalf("Expected one %q event, got %v", events.ClearCompleted, published)
	}
}
