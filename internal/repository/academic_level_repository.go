package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aalf/program-service/shared/models"
)

// AcademicLevelReadRepository exposes the academic levels programs refer to.
// Levels are managed outside this service.
type AcademicLevelReadRepository struct {
	db *sql.DB
}

func NewAcademicLevelReadRepository(db *sql.DB) *AcademicLevelReadRepository {
	return &AcademicLevelReadRepository{db: db}
}

func (r *AcademicLevelReadRepository) List(ctx context.Context) ([]models.AcademicLevel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nombre FROM niveles_academicos ORDER BY nombre ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list academic levels: %w", err)
	}
	defer rows.Close()

	levels := []models.AcademicLevel{}
	for rows.Next() {
		var level models.AcademicLevel
		if err := rows.Scan(&level.ID, &level.Name); err != nil {
			return nil, fmt.Errorf("failed to scan academic level: %w", err)
		}
		levels = append(levels, level)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list academic levels: %w", err)
	}
	return levels, nil
}
