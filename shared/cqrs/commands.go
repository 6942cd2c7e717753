package cqrs

import "time"

type CreateProgramCommand struct {
	AcademicLevelID int64
	Name            string
	Description     string
	Version         string
	DurationMonths  int
	Cost            float64
	StartDate       time.Time
	Status          string
	KnowledgeArea   string
}

// UpdateProgramCommand carries a partial overwrite: nil fields are left untouched.
type UpdateProgramCommand struct {
	ProgramID       int64
	AcademicLevelID *int64
	Name            *string
	Description     *string
	Version         *string
	DurationMonths  *int
	Cost            *float64
	StartDate       *time.Time
	Status          *string
	KnowledgeArea   *string
}

type DeleteProgramCommand struct {
	ProgramID int64
}
