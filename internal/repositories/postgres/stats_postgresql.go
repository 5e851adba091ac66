package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
)

type StatsPostgreSQL struct {
	db *gorm.DB
}

func NewStatsPostgreSQL(db *gorm.DB) repositories.StatsRepository {
	return &StatsPostgreSQL{db: db}
}

// Counts returns the row count of every table for the admin dashboard.
func (s *StatsPostgreSQL) Counts(ctx context.Context) (*models.StatsResponse, error) {
	stats := &models.StatsResponse{}

	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.Grado{}, &stats.Grados},
		{&models.Area{}, &stats.Areas},
		{&models.Tema{}, &stats.Temas},
		{&models.Articulo{}, &stats.Articulos},
		{&models.Usuario{}, &stats.Usuarios},
	}

	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", repositories.ClassifyError(err))
		}
	}

	return stats, nil
}

// Now is the store connectivity probe behind GET /api/time.
func (s *StatsPostgreSQL) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := s.db.WithContext(ctx).Raw("SELECT NOW()").Scan(&now).Error; err != nil {
		return time.Time{}, fmt.Errorf("failed to query server time: %w", repositories.ClassifyError(err))
	}
	return now, nil
}
