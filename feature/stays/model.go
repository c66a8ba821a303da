package stays

import (
	"time"

	"farm-cms/core/stringlist"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stay is a bookable accommodation: a cabin, yurt or guest room.
type Stay struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Slug          string    `gorm:"uniqueIndex" json:"slug"`
	Description   string    `gorm:"type:text" json:"description"`
	PricePerNight float64   `json:"price_per_night"`
	Capacity      int       `json:"capacity"`

	// ImageURLs is a text column carrying historic format drift: JSON
	// array, Postgres array literal, or delimited text. NULL means no
	// images, never an empty array. Read through Images, write through
	// SetImages.
	ImageURLs *string `gorm:"type:text;column:image_urls" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName binds the model to the stays table.
func (Stay) TableName() string { return "stays" }

// BeforeCreate assigns a fresh id when none was provided.
func (s *Stay) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Images returns the normalized image list.
func (s *Stay) Images() ([]string, error) {
	return stringlist.Parse(s.ImageURLs)
}

// SetImages stores the image list through the single encoder, which
// persists NULL for an empty list.
func (s *Stay) SetImages(urls []string) {
	s.ImageURLs = stringlist.Encode(urls)
}

// Response is the API shape of a stay, with the image list normalized.
type Response struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	PricePerNight float64   `json:"price_per_night"`
	Capacity      int       `json:"capacity"`
	ImageURLs     []string  `json:"image_urls"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToResponse converts the record for API output. Unparseable legacy
// values degrade to an empty list rather than failing the read.
func (s *Stay) ToResponse() Response {
	images, _ := s.Images()
	if images == nil {
		images = []string{}
	}
	return Response{
		ID:            s.ID,
		Name:          s.Name,
		Slug:          s.Slug,
		Description:   s.Description,
		PricePerNight: s.PricePerNight,
		Capacity:      s.Capacity,
		ImageURLs:     images,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// Request is the create/update payload.
type Request struct {
	Name          string   `json:"name" validate:"required"`
	Slug          string   `json:"slug" validate:"required"`
	Description   string   `json:"description"`
	PricePerNight float64  `json:"price_per_night" validate:"gte=0"`
	Capacity      int      `json:"capacity" validate:"gte=0"`
	ImageURLs     []string `json:"image_urls" validate:"dive,url"`
}
