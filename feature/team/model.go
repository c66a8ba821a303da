package team

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a team member shown on the about page. At most one
// portrait per member.
type Member struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"not null" json:"name"`
	Role string    `json:"role"`
	Bio  string    `gorm:"type:text" json:"bio"`

	// PhotoURL is absent (NULL) when the member has no portrait.
	PhotoURL *string `gorm:"column:photo_url" json:"photo_url,omitempty"`

	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Member) TableName() string { return "team_members" }

func (m *Member) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Request is the create/update payload.
type Request struct {
	Name      string  `json:"name" validate:"required"`
	Role      string  `json:"role"`
	Bio       string  `json:"bio"`
	PhotoURL  *string `json:"photo_url" validate:"omitempty,url"`
	SortOrder int     `json:"sort_order"`
}
