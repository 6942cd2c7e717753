package cqrs

// ---------- Program queries ----------

// GetProgramQuery fetches a single program by ID.
type GetProgramQuery struct {
	ProgramID int64
}

// ListProgramsQuery fetches all programs, optionally restricted to one knowledge area.
// An empty KnowledgeArea means no filter.
type ListProgramsQuery struct {
	KnowledgeArea string
}

// ---------- Academic level queries ----------

// ListAcademicLevelsQuery fetches every academic level ordered by name.
type ListAcademicLevelsQuery struct{}
