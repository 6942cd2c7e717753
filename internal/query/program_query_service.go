package query

import (
	"context"

	"github.com/aalf/program-service/internal/repository"
	"github.com/aalf/program-service/shared/cqrs"
	"github.com/aalf/program-service/shared/models"
)

type ProgramQueryService struct {
	programs *repository.ProgramReadRepository
	levels   *repository.AcademicLevelReadRepository
}

func NewProgramQueryService(
	programs *repository.ProgramReadRepository,
	levels *repository.AcademicLevelReadRepository,
) *ProgramQueryService {
	return &ProgramQueryService{programs: programs, levels: levels}
}

// GetProgram returns one program or a Not-Found error.
func (s *ProgramQueryService) GetProgram(ctx context.Context, q cqrs.GetProgramQuery) (*models.Program, error) {
	return s.programs.GetByID(ctx, q.ProgramID)
}

// ListPrograms returns programs ordered by academic level name, optionally for one knowledge area.
func (s *ProgramQueryService) ListPrograms(ctx context.Context, q cqrs.ListProgramsQuery) ([]models.Program, error) {
	return s.programs.List(ctx, q.KnowledgeArea)
}

func (s *ProgramQueryService) ListAcademicLevels(ctx context.Context, _ cqrs.ListAcademicLevelsQuery) ([]models.AcademicLevel, error) {
	return s.levels.List(ctx)
}
