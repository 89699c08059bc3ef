// Package vfs defines the Virtual File Store interface the config tree
// reads through, plus two concrete implementations. The core never
// mutates through this interface and never polls it; callers decide when
// to rescan and feed the result into a ConfigChanges batch.
package vfs

// FileID identifies a file opaquely. The core treats it as an inert key;
// only the Store knows how to resolve it to bytes or a path.
type FileID int64

// Store maps file IDs to contents and paths. Implementations must be
// safe for concurrent reads; the core only ever reads through a Store
// while holding its own write lock, so Store itself need not be
// internally synchronized against the tree's own mutation schedule, but
// must tolerate being called from whichever goroutine owns that lock.
type Store interface {
	// FileContents returns the raw bytes of the file, or an error if the
	// id is unknown to this store.
	FileContents(id FileID) ([]byte, error)
	// FilePath returns a human-readable path for diagnostics.
	FilePath(id FileID) (string, error)
}
