package experiences

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Experience is a guided activity offered to guests.
type Experience struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Duration    string    `json:"duration"`
	Price       float64   `json:"price"`

	// ImageURL is absent (NULL) when the experience has no image.
	ImageURL *string `gorm:"column:image_url" json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Experience) TableName() string { return "experiences" }

func (e *Experience) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Request is the create/update payload.
type Request struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}
