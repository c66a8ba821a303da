// Package reconcile keeps denormalized media references consistent.
//
// Media files are joined to the content that displays them by URL, not
// by foreign key: uploads may happen before the owning record exists,
// so nothing at the database level cascades. When a media item is
// deleted, every accommodation photo list, team portrait, blog body,
// vision zone and gallery album that mentions its URL must be repaired
// by hand. This package is that hand.
//
// # Engine
//
// The Engine runs a set of registered Patchers, one per entity kind.
// Each patcher is attempted independently: a failure in one is recorded
// in the Report and never prevents the others, because the caller is a
// delete request that must succeed even when cleanup is imperfect.
// Every patch is idempotent; re-running a deletion after a partial
// failure changes nothing on the second pass.
//
// # Link maintenance
//
// Beyond deletion, the engine back-fills and prunes media linkage when
// content changes: ReconcileContentLinks tracks the images embedded in
// a blog post's HTML, and SyncURLArrayLinks tracks photo-list fields.
// Both compare URLs case-insensitively so casing-only edits cause no
// relink churn.
package reconcile
