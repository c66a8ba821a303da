package reconcile

import (
	"context"
	"strings"

	"farm-cms/core/htmlimg"

	"go.uber.org/zap"
)

// Engine dispatches reconciliation work to registered patchers and
// maintains media linkage. It holds no mutable state of its own beyond
// the patcher registry, which is fixed after startup.
type Engine struct {
	patchers []Patcher
	media    MediaStore
	logger   *zap.Logger
}

// NewEngine creates an engine over the given media store.
func NewEngine(media MediaStore, logger *zap.Logger) *Engine {
	return &Engine{media: media, logger: logger}
}

// Register adds a patcher. Call during startup only.
func (e *Engine) Register(p Patcher) {
	e.patchers = append(e.patchers, p)
}

// ReconcileDeletion computes and applies every patch required before the
// media item is permanently removed. Each applicable patcher runs
// independently; failures are logged and collected, never propagated;
// the deletion must be able to proceed over imperfect cleanup.
func (e *Engine) ReconcileDeletion(ctx context.Context, m Media) Report {
	report := Report{
		MediaID:  m.ID,
		URL:      m.URL,
		Touched:  []EntityKind{},
		Failures: []PatchFailure{},
	}

	for _, p := range e.patchers {
		if !p.Applies(m) {
			continue
		}
		touched, err := p.PatchDeletion(ctx, m)
		if err != nil {
			e.logger.Warn("reference patch failed",
				zap.String("kind", string(p.Kind())),
				zap.String("media_id", m.ID),
				zap.String("url", m.URL),
				zap.Error(err),
			)
			report.Failures = append(report.Failures, PatchFailure{
				Kind:   p.Kind(),
				Reason: err.Error(),
			})
			continue
		}
		if touched {
			report.Touched = append(report.Touched, p.Kind())
		}
	}

	return report
}

// ReconcileContentLinks aligns media linkage with the images embedded in
// a blog post's HTML. Items referenced by the content are linked to the
// post unless they already belong to a different post; items linked to
// the post but no longer referenced are unlinked. URL comparison is
// case-insensitive. Safe on create: nothing is linked yet, so only the
// link half runs.
func (e *Engine) ReconcileContentLinks(ctx context.Context, blogPostID, html string) error {
	urls := htmlimg.ExtractSrcs(html)

	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		referenced[strings.ToLower(u)] = struct{}{}
	}

	for _, u := range urls {
		m, err := e.media.FindByURL(ctx, u)
		if err != nil {
			return err
		}
		if m == nil {
			// External or not-yet-uploaded image; nothing to own.
			continue
		}
		current := m.Linkage.BlogPostID
		if current != nil {
			// Already owned, by this post or another. At-most-one-owner
			// stands either way.
			continue
		}
		if err := e.media.SetLink(ctx, m.ID, KindBlogPost, blogPostID); err != nil {
			return err
		}
	}

	linked, err := e.media.FindLinked(ctx, KindBlogPost, blogPostID)
	if err != nil {
		return err
	}
	for _, m := range linked {
		if _, ok := referenced[strings.ToLower(m.URL)]; ok {
			continue
		}
		if err := e.media.ClearLink(ctx, m.ID, KindBlogPost); err != nil {
			return err
		}
	}
	return nil
}

// SyncURLArrayLinks aligns media linkage with an entity's URL-list field
// after a create or update. Comparison against the previous state uses
// lower-cased URLs so casing-only differences cause no unlink/relink
// churn.
func (e *Engine) SyncURLArrayLinks(ctx context.Context, entityID string, kind EntityKind, urls []string) error {
	wanted := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		wanted[strings.ToLower(u)] = struct{}{}
	}

	linked, err := e.media.FindLinked(ctx, kind, entityID)
	if err != nil {
		return err
	}
	for _, m := range linked {
		if _, ok := wanted[strings.ToLower(m.URL)]; ok {
			continue
		}
		if err := e.media.ClearLink(ctx, m.ID, kind); err != nil {
			return err
		}
	}

	for _, u := range urls {
		m, err := e.media.FindByURL(ctx, u)
		if err != nil {
			return err
		}
		if m == nil {
			continue
		}
		if m.Linkage.For(kind) != nil {
			// Linked already, to this entity (no churn) or another
			// (all matches were patched at upload; leave it).
			continue
		}
		if err := e.media.SetLink(ctx, m.ID, kind, entityID); err != nil {
			return err
		}
	}
	return nil
}
