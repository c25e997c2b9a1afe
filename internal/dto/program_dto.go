package dto

import "github.com/google/uuid"

type CreateProgramRequest struct {
	Name string `json:"name" form:"name"`
}

type UpdateProgramRequest struct {
	Name string `json:"name" form:"name"`
}

type ProgramResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	CreatedBy       string    `json:"created_by"`
	EnrolledClients []string  `json:"enrolled_clients"`
}

type SummaryResponse struct {
	TotalClients  int64 `json:"total_clients"`
	TotalPrograms int64 `json:"total_programs"`
}
