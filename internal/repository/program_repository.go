package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aalf/program-service/shared/apperrors"
	"github.com/aalf/program-service/shared/models"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// ErrDuplicateProgram is the Conflict raised when a live program already uses a name and
// academic level.
var ErrDuplicateProgram = apperrors.Conflict("El programa ya existe en la Base de Datos con ese nombre y nivel académico")

// ProgramNotFound builds the Not-Found error for an unknown program id.
func ProgramNotFound(id int64) error {
	return apperrors.NotFound("El programa con el id: %d no existe", id)
}

const programColumns = `id, id_nivel_academico, nombre, descripcion, version, duracion_meses, costo,
		fecha_inicio, estado, area_conocimiento, created_at, updated_at, deleted_at`

// ProgramWriteRepository handles all state-mutating operations for programs.
// It operates exclusively against the PostgreSQL write store (source of truth).
type ProgramWriteRepository struct {
	db *sql.DB
}

func NewProgramWriteRepository(db *sql.DB) *ProgramWriteRepository {
	return &ProgramWriteRepository{db: db}
}

// ExistsByNameAndLevel reports whether a non-deleted program uses name under academicLevelID.
func (r *ProgramWriteRepository) ExistsByNameAndLevel(ctx context.Context, name string, academicLevelID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM programas
			WHERE nombre = $1 AND id_nivel_academico = $2 AND deleted_at IS NULL
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, academicLevelID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check program uniqueness: %w", err)
	}
	return exists, nil
}

// Create inserts program and fills in its generated id and timestamps.
func (r *ProgramWriteRepository) Create(ctx context.Context, program *models.Program) error {
	query := `
		INSERT INTO programas (id_nivel_academico, nombre, descripcion, version, duracion_meses, costo,
			fecha_inicio, estado, area_conocimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		program.AcademicLevelID, program.Name, program.Description, program.Version,
		program.DurationMonths, program.Cost, program.StartDate, program.Status, program.KnowledgeArea,
	).Scan(&program.ID, &program.CreatedAt, &program.UpdatedAt)
	if err != nil {
		return translateWriteError(err, program.AcademicLevelID, "create")
	}
	return nil
}

// GetByID fetches a live program. Soft-deleted rows are never returned here.
func (r *ProgramWriteRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programas WHERE id = $1 AND deleted_at IS NULL`
	program, err := scanProgram(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ProgramNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return program, nil
}

// Update overwrites every mutable column of a live program and refreshes UpdatedAt.
func (r *ProgramWriteRepository) Update(ctx context.Context, program *models.Program) error {
	query := `
		UPDATE programas
		SET id_nivel_academico = $2, nombre = $3, descripcion = $4, version = $5,
			duracion_meses = $6, costo = $7, fecha_inicio = $8, estado = $9,
			area_conocimiento = $10, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		program.ID, program.AcademicLevelID, program.Name, program.Description, program.Version,
		program.DurationMonths, program.Cost, program.StartDate, program.Status, program.KnowledgeArea,
	).Scan(&program.UpdatedAt)
	if err == sql.ErrNoRows {
		return ProgramNotFound(program.ID)
	}
	if err != nil {
		return translateWriteError(err, program.AcademicLevelID, "update")
	}
	return nil
}

// SoftDelete marks a live program as deleted and returns the deletion time.
func (r *ProgramWriteRepository) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	query := `UPDATE programas SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL RETURNING deleted_at`
	var deletedAt time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&deletedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, ProgramNotFound(id)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to delete program: %w", err)
	}
	return deletedAt, nil
}

// translateWriteError maps constraint violations on programas to domain errors.
func translateWriteError(err error, academicLevelID int64, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ErrDuplicateProgram
		case pqForeignKeyViolation:
			return apperrors.NotFound("El nivel académico con el id: %d no existe", academicLevelID)
		}
	}
	return fmt.Errorf("failed to %s program: %w", action, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgram(row rowScanner, extra ...any) (*models.Program, error) {
	var p models.Program
	var deletedAt sql.NullTime
	dest := []any{
		&p.ID, &p.AcademicLevelID, &p.Name, &p.Description, &p.Version, &p.DurationMonths, &p.Cost,
		&p.StartDate, &p.Status, &p.KnowledgeArea, &p.CreatedAt, &p.UpdatedAt, &deletedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		p.DeletedAt = &deletedAt.Time
	}
	return &p, nil
}
