package workshops

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Workshop is a bookable class or course held at the farm.
type Workshop struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Facilitator string    `json:"facilitator"`
	Price       float64   `json:"price"`

	// Dates are ISO date strings; upcoming sessions only.
	Dates pq.StringArray `gorm:"type:text[]" json:"dates"`

	// ImageURL is absent (NULL) when the workshop has no image.
	ImageURL *string `gorm:"column:image_url" json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Workshop) TableName() string { return "workshops" }

func (w *Workshop) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// Request is the create/update payload.
type Request struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Facilitator string   `json:"facilitator"`
	Price       float64  `json:"price" validate:"gte=0"`
	Dates       []string `json:"dates"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
}
