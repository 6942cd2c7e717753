package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aalf/program-service/shared/models"
)

// ProgramReadRepository serves the query side straight from PostgreSQL.
type ProgramReadRepository struct {
	db *sql.DB
	// withDeleted controls whether GetByID can see soft-deleted programs.
	withDeleted bool
}

func NewProgramReadRepository(db *sql.DB, withDeleted bool) *ProgramReadRepository {
	return &ProgramReadRepository{db: db, withDeleted: withDeleted}
}

// GetByID returns a program by id. Soft-deleted programs are visible only when the
// repository was built with withDeleted.
func (r *ProgramReadRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programas WHERE id = $1`
	if !r.withDeleted {
		query += ` AND deleted_at IS NULL`
	}
	program, err := scanProgram(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ProgramNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return program, nil
}

// List returns live programs joined with their academic level, ordered by level name.
// A non-empty area keeps only programs whose knowledge area equals it.
func (r *ProgramReadRepository) List(ctx context.Context, area string) ([]models.Program, error) {
	query := `
		SELECT p.id, p.id_nivel_academico, p.nombre, p.descripcion, p.version, p.duracion_meses, p.costo,
			p.fecha_inicio, p.estado, p.area_conocimiento, p.created_at, p.updated_at, p.deleted_at,
			n.id, n.nombre
		FROM programas p
		LEFT JOIN niveles_academicos n ON n.id = p.id_nivel_academico
		WHERE p.deleted_at IS NULL`
	var args []any
	if area != "" {
		query += ` AND p.area_conocimiento = $1`
		args = append(args, area)
	}
	query += ` ORDER BY n.nombre ASC, p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	programs := []models.Program{}
	for rows.Next() {
		var levelID sql.NullInt64
		var levelName sql.NullString
		program, err := scanProgram(rows, &levelID, &levelName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		if levelID.Valid {
			program.AcademicLevel = &models.AcademicLevel{ID: levelID.Int64, Name: levelName.String}
		}
		programs = append(programs, *program)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	return programs, nil
}
