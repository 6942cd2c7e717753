package command

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/aalf/program-service/internal/repository"
	"github.com/aalf/program-service/shared/cqrs"
	"github.com/aalf/program-service/shared/events"
	"github.com/aalf/program-service/shared/models"
)

const publishTimeout = 5 * time.Second

// ProgramCommandService writes program state and announces every change on the program stream.
type ProgramCommandService struct {
	writeRepo *repository.ProgramWriteRepository
	publisher *events.Publisher
}

func NewProgramCommandService(
	writeRepo *repository.ProgramWriteRepository,
	publisher *events.Publisher,
) *ProgramCommandService {
	return &ProgramCommandService{
		writeRepo: writeRepo,
		publisher: publisher,
	}
}

// CreateProgram stores a new program after checking that no live program already uses the
// same trimmed name under the same academic level.
func (s *ProgramCommandService) CreateProgram(ctx context.Context, cmd cqrs.CreateProgramCommand) (*models.Program, error) {
	name := strings.TrimSpace(cmd.Name)

	exists, err := s.writeRepo.ExistsByNameAndLevel(ctx, name, cmd.AcademicLevelID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrDuplicateProgram
	}

	program := &models.Program{
		AcademicLevelID: cmd.AcademicLevelID,
		Name:            name,
		Description:     strings.TrimSpace(cmd.Description),
		Version:         cmd.Version,
		DurationMonths:  cmd.DurationMonths,
		Cost:            cmd.Cost,
		StartDate:       models.NewDate(cmd.StartDate),
		Status:          cmd.Status,
		KnowledgeArea:   cmd.KnowledgeArea,
	}
	if err := s.writeRepo.Create(ctx, program); err != nil {
		return nil, err
	}

	s.publish(ctx, events.ProgramCreated, events.ProgramCreatedEvent{
		ProgramID:       program.ID,
		AcademicLevelID: program.AcademicLevelID,
		Name:            program.Name,
		KnowledgeArea:   program.KnowledgeArea,
	})
	return program, nil
}

// UpdateProgram overlays the provided fields onto the stored program and saves it.
func (s *ProgramCommandService) UpdateProgram(ctx context.Context, cmd cqrs.UpdateProgramCommand) (*models.Program, error) {
	program, err := s.writeRepo.GetByID(ctx, cmd.ProgramID)
	if err != nil {
		return nil, err
	}

	changed := applyUpdate(program, cmd)
	if err := s.writeRepo.Update(ctx, program); err != nil {
		return nil, err
	}

	s.publish(ctx, events.ProgramUpdated, events.ProgramUpdatedEvent{
		ProgramID:     program.ID,
		ChangedFields: changed,
	})
	return program, nil
}

// DeleteProgram soft deletes a live program and returns it with DeletedAt set.
func (s *ProgramCommandService) DeleteProgram(ctx context.Context, cmd cqrs.DeleteProgramCommand) (*models.Program, error) {
	program, err := s.writeRepo.GetByID(ctx, cmd.ProgramID)
	if err != nil {
		return nil, err
	}

	deletedAt, err := s.writeRepo.SoftDelete(ctx, program.ID)
	if err != nil {
		return nil, err
	}
	program.DeletedAt = &deletedAt

	s.publish(ctx, events.ProgramDeleted, events.ProgramDeletedEvent{
		ProgramID: program.ID,
		DeletedAt: deletedAt,
	})
	return program, nil
}

// publish announces a committed change. The row is already stored, so the event must not
// depend on the request staying alive; failures are logged only.
func (s *ProgramCommandService) publish(ctx context.Context, eventType string, data any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, events.ProgramEventsStream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}

// applyUpdate copies every non-nil field of cmd onto p and returns the JSON names of the
// fields it touched, in declaration order.
func applyUpdate(p *models.Program, cmd cqrs.UpdateProgramCommand) []string {
	changed := []string{}
	if cmd.AcademicLevelID != nil {
		p.AcademicLevelID = *cmd.AcademicLevelID
		changed = append(changed, "idNivelAcademico")
	}
	if cmd.Name != nil {
		p.Name = *cmd.Name
		changed = append(changed, "nombre")
	}
	if cmd.Description != nil {
		p.Description = *cmd.Description
		changed = append(changed, "descripcion")
	}
	if cmd.Version != nil {
		p.Version = *cmd.Version
		changed = append(changed, "version")
	}
	if cmd.DurationMonths != nil {
		p.DurationMonths = *cmd.DurationMonths
		changed = append(changed, "duracionMeses")
	}
	if cmd.Cost != nil {
		p.Cost = *cmd.Cost
		changed = append(changed, "costo")
	}
	if cmd.StartDate != nil {
		p.StartDate = models.NewDate(*cmd.StartDate)
		changed = append(changed, "fechaInicio")
	}
	if cmd.Status != nil {
		p.Status = *cmd.Status
		changed = append(changed, "estado")
	}
	if cmd.KnowledgeArea != nil {
		p.KnowledgeArea = *cmd.KnowledgeArea
		changed = append(changed, "areaConocimiento")
	}
	return changed
}
