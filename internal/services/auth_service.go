package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/medregistry/clinic-backend/internal/config"
	"github.com/medregistry/clinic-backend/internal/dto"
	"github.com/medregistry/clinic-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers both unknown username and wrong
	// password so failed logins cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSignupFields       = errors.New("username, name and password are required")
	ErrDoctorNotFound     = errors.New("doctor not found")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Signup creates a doctor account. It does not establish a session; the
// caller logs in explicitly afterwards.
func (s *AuthService) Signup(req *dto.SignupRequest) (*dto.DoctorResponse, error) {
	username := strings.TrimSpace(req.Username)
	name := strings.TrimSpace(req.Name)
	if username == "" || name == "" || req.Password == "" {
		return nil, ErrSignupFields
	}

	var existing models.Doctor
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	doctor := models.Doctor{
		ID:           uuid.New(),
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
	}

	if err := s.db.Create(&doctor).Error; err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	return mapDoctorToResponse(&doctor), nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var doctor models.Doctor
	if err := s.db.Where("username = ?", req.Username).First(&doctor).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateSessionToken(&doctor)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:  token,
		Doctor: *mapDoctorToResponse(&doctor),
	}, nil
}

func (s *AuthService) GetDoctor(id uuid.UUID) (*dto.DoctorResponse, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return mapDoctorToResponse(&doctor), nil
}

func (s *AuthService) generateSessionToken(doctor *models.Doctor) (string, error) {
	claims := jwt.MapClaims{
		"sub":  doctor.ID.String(),
		"name": doctor.Name,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.cfg.SessionExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func mapDoctorToResponse(d *models.Doctor) *dto.DoctorResponse {
	return &dto.DoctorResponse{
		ID:       d.ID,
		Username: d.Username,
		Name:     d.Name,
	}
}
