package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/medregistry/clinic-backend/internal/config"
	"github.com/medregistry/clinic-backend/internal/dto"
	"github.com/medregistry/clinic-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Doctor{},
		&models.Client{},
		&models.Program{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		SessionExpiry: time.Hour,
		SMTPFrom:      "reports@clinic.local",
	}
}

func seedDoctor(t *testing.T, db *gorm.DB, username, name string) *models.Doctor {
	t.Helper()

	doctor := &models.Doctor{
		ID:           uuid.New(),
		Username:     username,
		Name:         name,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(doctor).Error)
	return doctor
}

func seedClient(t *testing.T, db *gorm.DB, svc *ClientService, first, last, dob string) *dto.ClientResponse {
	t.Helper()

	client, err := svc.Register(&dto.RegisterClientRequest{
		FirstName: first,
		LastName:  last,
		DOB:       dob,
		Gender:    "Other",
		Contact:   "000",
		Address:   "nowhere",
	})
	require.NoError(t, err)
	return client
}

func seedProgram(t *testing.T, db *gorm.DB, name string, creatorID uuid.UUID) *models.Program {
	t.Helper()

	program := &models.Program{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: creatorID,
	}
	require.NoError(t, db.Create(program).Error)
	return program
}
