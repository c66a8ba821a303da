package media

import (
	"time"

	"farm-cms/core/reconcile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a stored reference to an uploaded file: its public URL,
// descriptive metadata, and the linkage to whichever entity displays
// it. Linkage is set at upload time or back-filled later by URL match.
type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	URL         string    `gorm:"uniqueIndex;not null" json:"url"`
	Filename    string    `json:"filename"`
	Category    string    `gorm:"index" json:"category"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`

	AccommodationID *string `gorm:"type:uuid;index" json:"accommodation_id,omitempty"`
	AnimalID        *string `gorm:"type:uuid;index" json:"animal_id,omitempty"`
	TeamMemberID    *string `gorm:"type:uuid;index" json:"team_member_id,omitempty"`
	BlogPostID      *string `gorm:"type:uuid;index" json:"blog_post_id,omitempty"`
	VisionZone      *string `json:"vision_zone,omitempty"`
	Folder          *string `gorm:"index" json:"folder,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName binds the model to the media_items table.
func (Item) TableName() string { return "media_items" }

// BeforeCreate assigns a fresh id when none was provided.
func (i *Item) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ToEngine converts the record into the reconciliation engine's view.
func (i *Item) ToEngine() reconcile.Media {
	return reconcile.Media{
		ID:       i.ID.String(),
		URL:      i.URL,
		Category: i.Category,
		Linkage: reconcile.Linkage{
			AccommodationID: i.AccommodationID,
			AnimalID:        i.AnimalID,
			TeamMemberID:    i.TeamMemberID,
			BlogPostID:      i.BlogPostID,
			VisionZone:      i.VisionZone,
			Folder:          i.Folder,
		},
	}
}
