package models

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is an authenticated system user. Doctors own the programs they
// create; the creator relationship is set at creation and never reassigned.
type Doctor struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Programs []Program `gorm:"foreignKey:CreatedBy" json:"-"`
}
