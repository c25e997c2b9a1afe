package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a patient record. DOB is stored as the string given at
// registration; the registry never validates it as a calendar date.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	DOB       string    `gorm:"size:30" json:"dob"`
	Gender    string    `gorm:"size:20" json:"gender"`
	Contact   string    `gorm:"size:50" json:"contact"`
	Address   string    `gorm:"size:255" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Enrollment membership. The join table carries no attributes of its
	// own and is mutated only through full set replacement.
	Programs []Program `gorm:"many2many:enrollments" json:"-"`
}
