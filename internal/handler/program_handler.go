package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/aalf/program-service/shared/apperrors"
	"github.com/aalf/program-service/shared/cqrs"
	"github.com/aalf/program-service/shared/middleware"
	"github.com/aalf/program-service/shared/models"
	"github.com/gin-gonic/gin"
)

// ProgramCommander defines the write-side operations used by ProgramHandler.
type ProgramCommander interface {
	CreateProgram(context.Context, cqrs.CreateProgramCommand) (*models.Program, error)
	UpdateProgram(context.Context, cqrs.UpdateProgramCommand) (*models.Program, error)
	DeleteProgram(context.Context, cqrs.DeleteProgramCommand) (*models.Program, error)
}

// ProgramQuerier defines the read-side operations used by ProgramHandler.
type ProgramQuerier interface {
	GetProgram(context.Context, cqrs.GetProgramQuery) (*models.Program, error)
	ListPrograms(context.Context, cqrs.ListProgramsQuery) ([]models.Program, error)
	ListAcademicLevels(context.Context, cqrs.ListAcademicLevelsQuery) ([]models.AcademicLevel, error)
}

// ProgramHandler routes requests to the command or query service as appropriate.
type ProgramHandler struct {
	commands ProgramCommander
	queries  ProgramQuerier
}

type CreateProgramRequest struct {
	AcademicLevelID int64    `json:"idNivelAcademico" validate:"required,gt=0"`
	Name            string   `json:"nombre" validate:"required,max=255"`
	Description     string   `json:"descripcion" validate:"required"`
	Version         string   `json:"version" validate:"required,max=50"`
	DurationMonths  int      `json:"duracionMeses" validate:"required,gt=0"`
	Cost            *float64 `json:"costo" validate:"required,gte=0"`
	StartDate       string   `json:"fechaInicio" validate:"required,datetime=2006-01-02"`
	Status          string   `json:"estado" validate:"required,max=50"`
	KnowledgeArea   string   `json:"areaConocimiento" validate:"required,max=150"`
}

// UpdateProgramRequest is a partial update: absent fields keep their stored value.
type UpdateProgramRequest struct {
	AcademicLevelID *int64   `json:"idNivelAcademico" validate:"omitempty,gt=0"`
	Name            *string  `json:"nombre" validate:"omitempty,min=1,max=255"`
	Description     *string  `json:"descripcion" validate:"omitempty,min=1"`
	Version         *string  `json:"version" validate:"omitempty,min=1,max=50"`
	DurationMonths  *int     `json:"duracionMeses" validate:"omitempty,gt=0"`
	Cost            *float64 `json:"costo" validate:"omitempty,gte=0"`
	StartDate       *string  `json:"fechaInicio" validate:"omitempty,datetime=2006-01-02"`
	Status          *string  `json:"estado" validate:"omitempty,min=1,max=50"`
	KnowledgeArea   *string  `json:"areaConocimiento" validate:"omitempty,min=1,max=150"`
}

type ListProgramsResponse struct {
	Programs []models.Program `json:"programas"`
}

type ListAcademicLevelsResponse struct {
	AcademicLevels []models.AcademicLevel `json:"nivelesAcademicos"`
}

func NewProgramHandler(commands ProgramCommander, queries ProgramQuerier) *ProgramHandler {
	return &ProgramHandler{commands: commands, queries: queries}
}

func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}
	// Format already checked by the datetime validator.
	startDate, _ := time.Parse(models.DateLayout, req.StartDate)

	program, err := h.commands.CreateProgram(c.Request.Context(), cqrs.CreateProgramCommand{
		AcademicLevelID: req.AcademicLevelID,
		Name:            req.Name,
		Description:     req.Description,
		Version:         req.Version,
		DurationMonths:  req.DurationMonths,
		Cost:            *req.Cost,
		StartDate:       startDate,
		Status:          req.Status,
		KnowledgeArea:   req.KnowledgeArea,
	})
	if err != nil {
		respondWithServiceError(c, err, "Failed to create program")
		return
	}

	c.JSON(http.StatusCreated, program)
}

func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.queries.ListPrograms(c.Request.Context(), cqrs.ListProgramsQuery{
		KnowledgeArea: c.Query("areaConocimiento"),
	})
	if err != nil {
		respondWithServiceError(c, err, "Failed to list programs")
		return
	}

	c.JSON(http.StatusOK, ListProgramsResponse{Programs: programs})
}

func (h *ProgramHandler) GetProgram(c *gin.Context) {
	id, ok := programIDParam(c)
	if !ok {
		return
	}

	program, err := h.queries.GetProgram(c.Request.Context(), cqrs.GetProgramQuery{ProgramID: id})
	if err != nil {
		respondWithServiceError(c, err, "Failed to get program")
		return
	}

	c.JSON(http.StatusOK, program)
}

func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	id, ok := programIDParam(c)
	if !ok {
		return
	}

	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	cmd := cqrs.UpdateProgramCommand{
		ProgramID:       id,
		AcademicLevelID: req.AcademicLevelID,
		Name:            req.Name,
		Description:     req.Description,
		Version:         req.Version,
		DurationMonths:  req.DurationMonths,
		Cost:            req.Cost,
		Status:          req.Status,
		KnowledgeArea:   req.KnowledgeArea,
	}
	if req.StartDate != nil {
		startDate, _ := time.Parse(models.DateLayout, *req.StartDate)
		cmd.StartDate = &startDate
	}

	program, err := h.commands.UpdateProgram(c.Request.Context(), cmd)
	if err != nil {
		respondWithServiceError(c, err, "Failed to update program")
		return
	}

	c.JSON(http.StatusOK, program)
}

func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	id, ok := programIDParam(c)
	if !ok {
		return
	}

	program, err := h.commands.DeleteProgram(c.Request.Context(), cqrs.DeleteProgramCommand{ProgramID: id})
	if err != nil {
		respondWithServiceError(c, err, "Failed to delete program")
		return
	}

	c.JSON(http.StatusOK, program)
}

func (h *ProgramHandler) ListAcademicLevels(c *gin.Context) {
	levels, err := h.queries.ListAcademicLevels(c.Request.Context(), cqrs.ListAcademicLevelsQuery{})
	if err != nil {
		respondWithServiceError(c, err, "Failed to list academic levels")
		return
	}

	c.JSON(http.StatusOK, ListAcademicLevelsResponse{AcademicLevels: levels})
}

func programIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid program id")
		return 0, false
	}
	return id, true
}

// respondWithServiceError maps domain error kinds to HTTP statuses; anything else is a 500
// whose cause is logged but not exposed.
func respondWithServiceError(c *gin.Context, err error, fallback string) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		middleware.RespondWithError(c, http.StatusNotFound, err.Error())
	case apperrors.KindConflict:
		middleware.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("%s: %v", fallback, err)
		middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
