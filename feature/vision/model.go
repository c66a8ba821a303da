package vision

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content is one version of the vision page. The table keeps history;
// the most recently created row is the one the site serves.
type Content struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title string    `json:"title"`
	Intro string    `gorm:"type:text" json:"intro"`

	// Zones is the ordered collection of farm zones shown on the map.
	Zones datatypes.JSON `json:"zones"`

	// EcosystemImageURL is the standalone ecosystem diagram, NULL when unset.
	EcosystemImageURL *string `gorm:"column:ecosystem_image_url" json:"ecosystem_image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Content) TableName() string { return "vision_contents" }

func (c *Content) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Zone is one entry of the zones collection.
type Zone struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description []string `json:"description"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"imageUrl"`
}

// ZoneList decodes the stored zones. A NULL or empty column yields an
// empty slice.
func (c *Content) ZoneList() ([]Zone, error) {
	if len(c.Zones) == 0 {
		return []Zone{}, nil
	}
	var zones []Zone
	if err := json.Unmarshal(c.Zones, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// SetZones encodes the zones back into the stored column.
func (c *Content) SetZones(zones []Zone) error {
	raw, err := json.Marshal(zones)
	if err != nil {
		return err
	}
	c.Zones = datatypes.JSON(raw)
	return nil
}

// Request is the payload for publishing a new version.
type Request struct {
	Title             string  `json:"title" validate:"required"`
	Intro             string  `json:"intro"`
	Zones             []Zone  `json:"zones"`
	EcosystemImageURL *string `json:"ecosystem_image_url" validate:"omitempty,url"`
}
