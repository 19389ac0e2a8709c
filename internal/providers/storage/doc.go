// Package storage provides the durable key-value store behind the blueprint history.
//
// Backends:
//   - file: one <key>.json file per key under <path>/storage/<namespace>/,
//     written atomically (temp file + rename) with an in-memory read cache
//   - sqlite: a single kv table in an SQLite database (modernc.org/sqlite)
//   - memory: process-local map, nothing survives a restart
//
// All backends return ErrNotFound for absent keys and ErrInvalidKey for keys
// outside [A-Za-z0-9._-]. Guard wraps any backend with a circuit breaker so
// repeated failures stop reaching the disk.
//
// Example Usage:
//
//	store, err := storage.Open(storage.Config{Backend: "file", Path: dir, Namespace: "default"})
//	err = store.Set(ctx, "blueprintHistory", data)
//	data, err := store.Get(ctx, "blueprintHistory")
package storage
