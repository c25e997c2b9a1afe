package dto

import "github.com/google/uuid"

// RegisterClientRequest is the single typed input for client registration;
// the handler adapts either a JSON body or form fields into it.
type RegisterClientRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	DOB       string `json:"dob" form:"dob"`
	Gender    string `json:"gender" form:"gender"`
	Contact   string `json:"contact" form:"contact"`
	Address   string `json:"address" form:"address"`
}

type UpdateClientRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	DOB       string `json:"dob" form:"dob"`
	Gender    string `json:"gender" form:"gender"`
	Contact   string `json:"contact" form:"contact"`
	Address   string `json:"address" form:"address"`
}

// SetProgramsRequest replaces a client's entire enrolled-program set.
type SetProgramsRequest struct {
	ProgramIDs []uuid.UUID `json:"program_ids" form:"program_ids"`
}

type ClientResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	DOB      string    `json:"dob"`
	Gender   string    `json:"gender"`
	Contact  string    `json:"contact"`
	Address  string    `json:"address"`
	Programs []string  `json:"programs"`
}
