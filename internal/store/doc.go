// Package store provides file-based persistence for the feed state.
//
// Snapshots are written as JSON through a temp file and an atomic rename, so
// a crash never leaves a half-written state file behind. All methods are
// concurrency-safe via internal locking. Files live under the configured
// home directory.
//
// The package includes:
//   - SnapshotFileStore, plain JSON (state.json)
//   - SealedSnapshotStore, passphrase-sealed with scrypt and
//     ChaCha20-Poly1305 (state.enc)
//
// The postgres and graph subpackages hold the optional external mirrors.
package store
