package models

import "time"

// AcademicLevel classifies the tier of a Program (e.g. "Maestría", "Pregrado").
type AcademicLevel struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// Program is a curricular offering. DeletedAt is set once the program has been soft deleted.
type Program struct {
	ID              int64          `json:"id"`
	AcademicLevelID int64          `json:"idNivelAcademico"`
	Name            string         `json:"nombre"`
	Description     string         `json:"descripcion"`
	Version         string         `json:"version"`
	DurationMonths  int            `json:"duracionMeses"`
	Cost            float64        `json:"costo"`
	StartDate       Date           `json:"fechaInicio"`
	Status          string         `json:"estado"`
	KnowledgeArea   string         `json:"areaConocimiento"`
	AcademicLevel   *AcademicLevel `json:"nivelAcademico,omitempty"`
	CreatedAt       time.Time      `json:"createdTimestamp"`
	UpdatedAt       time.Time      `json:"updatedTimestamp"`
	DeletedAt       *time.Time     `json:"deletedTimestamp,omitempty"`
}

// IsDeleted reports whether the program has been soft deleted.
func (p *Program) IsDeleted() bool {
	return p.DeletedAt != nil
}
