// Package projects persists the project database as a flat JSON document and
// exposes helpers for registration, search, and archive bookkeeping.
//
// The document holds three collections: clients, projects, and the archive
// history log. Every stored project path is normalized to the canonical
// Windows form before it is written, so lookups by path are stable regardless
// of how a caller spelled the path (work drive alias, WSL mount, slashes).
//
// Writes are atomic (temp file + rename) and the document is guarded by a
// sidecar flock so a watch process and an interactive CLI cannot clobber
// each other. Status transitions are strict: active -> archived -> active,
// each recorded as one archive-history entry.
//
// Treat this package as the single source of truth for record semantics; the
// JSON shape is a compatibility contract with existing databases.
package projects
