// SPDX-License-Identifier: MIT

// Package store persists study artifacts (graphs, datasets, sweep results,
// model parameters, graph caches) in a key-value Backend.
//
// Every value is wrapped in a versioned msgpack envelope
//
//	{kind: "graph" | "graphs" | "sweep" | "model" | "cache", version: 1, payload}
//
// so loading a key as the wrong artifact type, or an artifact written by an
// incompatible version, fails with ErrSchemaMismatch instead of decoding
// garbage. A missing key is ErrNotFound.
//
// Backends:
//
//   - OpenSQLite: a single-file SQLite database (modernc.org/sqlite, no cgo).
//   - OpenBadger: a badger LSM directory, or an in-memory instance for "".
//   - NewMemory:  an ordered in-process map, for tests and dry runs.
//
// Keys are plain strings; Key(experiment, label) builds the conventional
// "experiment/label" form. Usage is single-writer, single-reader.
package store
