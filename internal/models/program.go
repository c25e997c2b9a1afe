package models

import (
	"time"

	"github.com/google/uuid"
)

// Program is a named health initiative owned by the doctor who created it.
// Names are not unique; two doctors (or the same one) may reuse a name.
type Program struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Creator *Doctor  `gorm:"foreignKey:CreatedBy" json:"-"`
	Clients []Client `gorm:"many2many:enrollments" json:"-"`
}
