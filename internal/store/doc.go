// Package store provides JSON-file persistence for user-generated data.
//
// This package implements three small stores:
//   - History: generated number sets, newest first, capped
//   - Favorites: user-saved sets with memos, append order
//   - DrawCache: a bounded fallback cache of official draws
//
// Design decision: We keep these as plain JSON files rather than moving
// them into the SQLite database because users share and hand-edit them.
// The files are small (a few hundred entries at most), so full rewrite
// on every change is fine. Writes go through a temp file and rename so
// a crash never leaves a half-written file behind.
package store
