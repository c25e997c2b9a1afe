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
	ErrClientNotFound = errors.New("client not found")
	ErrClientName     = errors.New("first and last name are required")
)

type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

// Register persists a new client. Only name presence is validated; DOB,
// gender, contact and address are stored exactly as given.
func (s *ClientService) Register(req *dto.RegisterClientRequest) (*dto.ClientResponse, error) {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return nil, ErrClientName
	}

	client := models.Client{
		ID:      uuid.New(),
		Name:    first + " " + last,
		DOB:     req.DOB,
		Gender:  req.Gender,
		Contact: req.Contact,
		Address: req.Address,
	}

	if err := s.db.Create(&client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return mapClientToResponse(&client), nil
}

func (s *ClientService) Get(id uuid.UUID) (*dto.ClientResponse, error) {
	client, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return mapClientToResponse(client), nil
}

// Update overwrites all mutable fields of an existing client.
func (s *ClientService) Update(id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return nil, ErrClientName
	}

	client, err := s.find(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":    first + " " + last,
		"dob":     req.DOB,
		"gender":  req.Gender,
		"contact": req.Contact,
		"address": req.Address,
	}
	if err := s.db.Model(client).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return s.Get(id)
}

// Delete removes the client and its enrollment memberships. Programs the
// client was enrolled in are left intact.
func (s *ClientService) Delete(id uuid.UUID) error {
	client, err := s.find(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(client).Association("Programs").Clear(); err != nil {
			return fmt.Errorf("failed to clear enrollments: %w", err)
		}
		return tx.Delete(client).Error
	})
}

// Search matches the query case-insensitively against client names. An
// empty query returns every client in natural storage order.
func (s *ClientService) Search(query string) ([]dto.ClientResponse, error) {
	var clients []models.Client
	q := s.db.Preload("Programs")
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if err := q.Find(&clients).Error; err != nil {
		return nil, err
	}

	resp := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		resp[i] = *mapClientToResponse(&clients[i])
	}
	return resp, nil
}

// SetPrograms replaces the client's entire enrolled-program set with the
// programs resolved from the given ids. Unknown ids are dropped silently;
// this is the sole enrollment mutation, so callers resubmit the full
// desired set rather than adding or removing one membership at a time.
func (s *ClientService) SetPrograms(clientID uuid.UUID, programIDs []uuid.UUID) (*dto.ClientResponse, error) {
	client, err := s.find(clientID)
	if err != nil {
		return nil, err
	}

	var programs []models.Program
	if len(programIDs) > 0 {
		if err := s.db.Where("id IN ?", programIDs).Find(&programs).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve programs: %w", err)
		}
	}

	assoc := s.db.Model(client).Association("Programs")
	if len(programs) == 0 {
		if err := assoc.Clear(); err != nil {
			return nil, fmt.Errorf("failed to clear enrollments: %w", err)
		}
	} else if err := assoc.Replace(&programs); err != nil {
		return nil, fmt.Errorf("failed to replace enrollments: %w", err)
	}

	return s.Get(clientID)
}

func (s *ClientService) find(id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := s.db.Preload("Programs").First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func mapClientToResponse(c *models.Client) *dto.ClientResponse {
	names := make([]string, len(c.Programs))
	for i, p := range c.Programs {
		names[i] = p.Name
	}
	return &dto.ClientResponse{
		ID:       c.ID,
		Name:     c.Name,
		DOB:      c.DOB,
		Gender:   c.Gender,
		Contact:  c.Contact,
		Address:  c.Address,
		Programs: names,
	}
}
