package animals

import (
	"time"

	"farm-cms/core/stringlist"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Animal is a resident farm animal presented on the website.
type Animal struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Species string    `json:"species"`
	Bio     string    `gorm:"type:text" json:"bio"`

	// PhotoURLs carries the same historic format drift as stay images;
	// NULL means no photos.
	PhotoURLs *string `gorm:"type:text;column:photo_urls" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Animal) TableName() string { return "animals" }

func (a *Animal) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Photos returns the normalized photo list.
func (a *Animal) Photos() ([]string, error) {
	return stringlist.Parse(a.PhotoURLs)
}

// SetPhotos stores the photo list, persisting NULL for an empty list.
func (a *Animal) SetPhotos(urls []string) {
	a.PhotoURLs = stringlist.Encode(urls)
}

// Response is the API shape of an animal.
type Response struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Bio       string    `json:"bio"`
	PhotoURLs []string  `json:"photo_urls"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts the record for API output.
func (a *Animal) ToResponse() Response {
	photos, _ := a.Photos()
	if photos == nil {
		photos = []string{}
	}
	return Response{
		ID:        a.ID,
		Name:      a.Name,
		Species:   a.Species,
		Bio:       a.Bio,
		PhotoURLs: photos,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// Request is the create/update payload.
type Request struct {
	Name      string   `json:"name" validate:"required"`
	Species   string   `json:"species"`
	Bio       string   `json:"bio"`
	PhotoURLs []string `json:"photo_urls" validate:"dive,url"`
}
