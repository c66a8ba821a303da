package reconcile

import "context"

// EntityKind identifies a content type that can reference media.
type EntityKind string

const (
	// KindAccommodation is a lodging entity with an ordered image list.
	KindAccommodation EntityKind = "accommodation"
	// KindAnimal is a farm animal with an ordered photo list.
	KindAnimal EntityKind = "animal"
	// KindTeamMember holds a single portrait URL.
	KindTeamMember EntityKind = "team_member"
	// KindBlogPost holds a featured image plus images embedded in HTML.
	KindBlogPost EntityKind = "blog_post"
	// KindVision is the vision-content singleton with per-zone images.
	KindVision EntityKind = "vision"
	// KindGallery covers album/image rows joined to media by URL only.
	KindGallery EntityKind = "gallery"
	// KindWorkshop holds a single image URL.
	KindWorkshop EntityKind = "workshop"
	// KindExperience holds a single image URL.
	KindExperience EntityKind = "experience"
)

// Linkage is the association between a media item and the entity that
// displays it. Fields are set at upload time or back-filled by URL
// match; kinds are not mutually exclusive.
type Linkage struct {
	AccommodationID *string `json:"accommodation_id,omitempty"`
	AnimalID        *string `json:"animal_id,omitempty"`
	TeamMemberID    *string `json:"team_member_id,omitempty"`
	BlogPostID      *string `json:"blog_post_id,omitempty"`
	VisionZone      *string `json:"vision_zone,omitempty"`
	Folder          *string `json:"folder,omitempty"`
}

// For returns the linkage id for the given kind, or nil when the kind
// has no id-based linkage (vision and gallery join by URL).
func (l Linkage) For(kind EntityKind) *string {
	switch kind {
	case KindAccommodation:
		return l.AccommodationID
	case KindAnimal:
		return l.AnimalID
	case KindTeamMember:
		return l.TeamMemberID
	case KindBlogPost:
		return l.BlogPostID
	default:
		return nil
	}
}

// Media is the engine's view of a stored media item. It carries only
// what reconciliation needs; the full record lives in feature/media.
type Media struct {
	ID       string
	URL      string
	Category string
	Linkage  Linkage
}

// PatchFailure records one kind-specific patch that could not complete.
type PatchFailure struct {
	Kind   EntityKind `json:"kind"`
	Reason string     `json:"reason"`
}

// Report surfaces the outcome of a deletion reconciliation for
// observability. Callers log it; nothing branches on it.
type Report struct {
	// MediaID is the id of the media item being deleted.
	MediaID string `json:"media_id"`

	// URL is the media URL whose references were reconciled.
	URL string `json:"url"`

	// Touched lists the entity kinds that were actually modified.
	Touched []EntityKind `json:"touched"`

	// Failures lists kind-specific patches that failed, with reason.
	Failures []PatchFailure `json:"failures"`

	// BlobDeleted reports whether the blob store removal succeeded.
	// It is set by the caller after the blob delete attempt.
	BlobDeleted bool `json:"blob_deleted"`
}

// Patcher repairs one entity kind's references to a deleted media item.
// Implementations live with their feature packages.
type Patcher interface {
	// Kind returns the entity kind this patcher maintains.
	Kind() EntityKind

	// Applies reports whether this patcher should run for the media
	// item. URL-joined kinds (gallery, vision) apply broadly; id-linked
	// kinds can skip items that never pointed at them.
	Applies(m Media) bool

	// PatchDeletion removes every reference to the media URL from this
	// kind's records. It returns true when at least one record changed.
	// It must be idempotent and treat already-deleted entities as
	// success.
	PatchDeletion(ctx context.Context, m Media) (bool, error)
}

// MediaStore is the slice of the media repository the engine needs for
// link maintenance. Lookups by URL are case-insensitive.
type MediaStore interface {
	// FindByURL returns the media item with the given URL, or nil when
	// none exists.
	FindByURL(ctx context.Context, url string) (*Media, error)

	// FindLinked returns every media item linked to the given entity.
	FindLinked(ctx context.Context, kind EntityKind, entityID string) ([]Media, error)

	// SetLink points a media item's linkage for kind at entityID.
	SetLink(ctx context.Context, mediaID string, kind EntityKind, entityID string) error

	// ClearLink removes a media item's linkage for kind.
	ClearLink(ctx context.Context, mediaID string, kind EntityKind) error
}
