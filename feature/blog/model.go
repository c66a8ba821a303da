package blog

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Post is a blog article. Content is stored HTML and may embed images
// from the media library; FeaturedImage is the card/header image.
type Post struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title   string    `gorm:"not null" json:"title"`
	Slug    string    `gorm:"uniqueIndex" json:"slug"`
	Excerpt string    `gorm:"type:text" json:"excerpt"`

	// FeaturedImage is absent (NULL) when the post has no header image.
	FeaturedImage *string `gorm:"column:featured_image" json:"featured_image,omitempty"`

	Content string         `gorm:"type:text" json:"content"`
	Tags    pq.StringArray `gorm:"type:text[]" json:"tags"`

	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "blog_posts" }

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Request is the create/update payload.
type Request struct {
	Title         string   `json:"title" validate:"required"`
	Slug          string   `json:"slug" validate:"required"`
	Excerpt       string   `json:"excerpt"`
	FeaturedImage *string  `json:"featured_image" validate:"omitempty,url"`
	Content       string   `json:"content"`
	Tags          []string `json:"tags"`
	Published     bool     `json:"published"`
}
