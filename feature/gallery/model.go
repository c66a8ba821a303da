package gallery

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Album groups gallery images. CoverImageURL and ImageCount are
// denormalized from the child rows and maintained on every mutation.
type Album struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`

	CoverImageURL *string `gorm:"column:cover_image_url" json:"cover_image_url,omitempty"`
	ImageCount    int     `gorm:"not null;default:0" json:"image_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Album) TableName() string { return "gallery_albums" }

func (a *Album) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Image is one photo inside an album, joined to the media library by URL.
type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AlbumID   uuid.UUID `gorm:"type:uuid;index;not null" json:"album_id"`
	URL       string    `gorm:"not null" json:"url"`
	Caption   string    `json:"caption"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
}

func (Image) TableName() string { return "gallery_images" }

func (i *Image) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// AlbumRequest is the create/update payload for albums.
type AlbumRequest struct {
	Title       string `json:"title" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
}

// ImageRequest is the payload for adding an image to an album.
type ImageRequest struct {
	URL       string `json:"url" validate:"required,url"`
	Caption   string `json:"caption"`
	SortOrder int    `json:"sort_order"`
}
