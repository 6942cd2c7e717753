package events

import "time"

// Event types
const (
	ProgramCreated = "program.created"
	ProgramUpdated = "program.updated"
	ProgramDeleted = "program.deleted"
)

// Stream names
const (
	ProgramEventsStream = "program.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Program events
type ProgramCreatedEvent struct {
	ProgramID       int64  `json:"programId"`
	AcademicLevelID int64  `json:"academicLevelId"`
	Name            string `json:"name"`
	KnowledgeArea   string `json:"knowledgeArea"`
}

// ProgramUpdatedEvent lists the JSON names of the fields the update overwrote.
type ProgramUpdatedEvent struct {
	ProgramID     int64    `json:"programId"`
	ChangedFields []string `json:"changedFields"`
}

type ProgramDeletedEvent struct {
	ProgramID int64     `json:"programId"`
	DeletedAt time.Time `json:"deletedAt"`
}
