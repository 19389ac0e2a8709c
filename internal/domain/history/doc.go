// Package history keeps the list of recently decoded blueprint strings.
//
// The list is most-recent-first, bounded (30 entries by default) and
// deduplicated by exact string equality: recording a string that is already
// present neither adds nor reorders it.
//
// Persistence:
//   - Stored as a JSON array under a single key of a key-value store
//   - Loaded once at startup; absent or corrupt data yields an empty list
//   - Every change rewrites the full list (last writer wins)
//   - Storage failures are logged and swallowed; the in-memory list stays
//     authoritative for the session
//
// Example Usage:
//
//	store := history.NewStore(kv, logger)
//	store.Load(ctx)
//	store.Record(ctx, blueprint)
package history
