package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/medregistry/clinic-backend/internal/dto"
	"github.com/medregistry/clinic-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrProgramName     = errors.New("program name is required")
)

type ProgramService struct {
	db *gorm.DB
}

func NewProgramService(db *gorm.DB) *ProgramService {
	return &ProgramService{db: db}
}

// Create records a new program attributed to the acting doctor. Program
// names are not unique; duplicates are permitted.
func (s *ProgramService) Create(req *dto.CreateProgramRequest, creatorID uuid.UUID) (*dto.ProgramResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrProgramName
	}

	program := models.Program{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: creatorID,
	}

	if err := s.db.Create(&program).Error; err != nil {
		return nil, fmt.Errorf("failed to create program: %w", err)
	}

	return s.Get(program.ID)
}

func (s *ProgramService) Get(id uuid.UUID) (*dto.ProgramResponse, error) {
	var program models.Program
	if err := s.db.Preload("Creator").Preload("Clients").First(&program, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return mapProgramToResponse(&program), nil
}

func (s *ProgramService) List() ([]dto.ProgramResponse, error) {
	return s.list(s.db)
}

// ListByDoctor returns the programs created by one doctor, for the
// "programs created by me" dashboard view.
func (s *ProgramService) ListByDoctor(doctorID uuid.UUID) ([]dto.ProgramResponse, error) {
	return s.list(s.db.Where("created_by = ?", doctorID))
}

func (s *ProgramService) list(q *gorm.DB) ([]dto.ProgramResponse, error) {
	var programs []models.Program
	if err := q.Preload("Creator").Preload("Clients").Find(&programs).Error; err != nil {
		return nil, err
	}

	resp := make([]dto.ProgramResponse, len(programs))
	for i := range programs {
		resp[i] = *mapProgramToResponse(&programs[i])
	}
	return resp, nil
}

// Update renames a program. The creator is immutable.
func (s *ProgramService) Update(id uuid.UUID, req *dto.UpdateProgramRequest) (*dto.ProgramResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrProgramName
	}

	result := s.db.Model(&models.Program{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProgramNotFound
	}

	return s.Get(id)
}

// Delete removes the program and its enrollment memberships, leaving the
// enrolled clients intact.
func (s *ProgramService) Delete(id uuid.UUID) error {
	var program models.Program
	if err := s.db.First(&program, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgramNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&program).Association("Clients").Clear(); err != nil {
			return fmt.Errorf("failed to clear enrollments: %w", err)
		}
		return tx.Delete(&program).Error
	})
}

// Summary reports the dashboard counts: all clients in the registry and
// the programs created by the acting doctor.
func (s *ProgramService) Summary(doctorID uuid.UUID) (*dto.SummaryResponse, error) {
	var resp dto.SummaryResponse
	if err := s.db.Model(&models.Client{}).Count(&resp.TotalClients).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Program{}).Where("created_by = ?", doctorID).Count(&resp.TotalPrograms).Error; err != nil {
		return nil, err
	}
	return &resp, nil
}

func mapProgramToResponse(p *models.Program) *dto.ProgramResponse {
	createdBy := ""
	if p.Creator != nil {
		createdBy = p.Creator.Name
	}
	clients := make([]string, len(p.Clients))
	for i, c := range p.Clients {
		clients[i] = c.Name
	}
	return &dto.ProgramResponse{
		ID:              p.ID,
		Name:            p.Name,
		CreatedBy:       createdBy,
		EnrolledClients: clients,
	}
}
