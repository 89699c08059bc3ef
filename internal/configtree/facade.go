// Grounded on the teacher's internal/tree/navigator/cached.go: a single
// RWMutex guarding a lazily-populated cache, generalised here from a TTL
// policy to explicit subtree invalidation, and wrapping an arena instead
// of a filesystem walk.
package configtree

import (
	"sync"

	"github.com/ra-configtree/ratree/internal/logx"
	"github.com/ra-configtree/ratree/internal/parser"
	"github.com/ra-configtree/ratree/internal/rerrors"
	"github.com/ra-configtree/ratree/internal/schema"
	"github.com/ra-configtree/ratree/internal/vfs"
)

// Tree is the Concurrent Facade: single-writer/many-reader access to a
// Config Node Arena and its Computed Slot Table, plus the client overlay
// applied only at the read boundary (spec.md §4.4 — never cached).
type Tree struct {
	mu     sync.RWMutex
	arena  *arena
	client *parser.Input
}

// NewTree constructs an empty tree whose distinguished XDG node is
// addressed by xdgFileID — the user-global default config file, updated
// through the same ApplyChanges path as any other file.
func NewTree(xdgFileID vfs.FileID) *Tree {
	return &Tree{arena: newArena(xdgFileID)}
}

// ApplyChanges runs one batch under the write lock: the client overlay
// update, then reparenting, then per-file content changes, in that fixed
// order. It never partially applies a batch across calls — the whole
// batch is serialised behind the single writer invariant (spec.md's "at
// most one apply_changes in flight at a time").
func (t *Tree) ApplyChanges(changes Changes, store vfs.Store) []*rerrors.Error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sink rerrors.List

	if changes.Client.Present {
		t.client = changes.Client.Value
	}

	t.arena.apply(changes, store, &sink)

	return sink.Errors()
}

// ReadConfig resolves file_id's fully inherited, client-overlaid
// configuration. It follows the upgradable-read pattern: a cache hit is
// served entirely under a read lock, with zero writes and zero logging;
// a miss upgrades to the write lock to compute and memoise before
// re-deriving the same result with the overlay applied.
//
// The client overlay is applied fresh on every call and is never written
// into the slot table — two readers of the same node can legitimately
// observe different results if the client overlay changed between calls,
// even though the underlying node's own computed value is shared.
func (t *Tree) ReadConfig(fileID vfs.FileID) (*schema.Local, error) {
	t.mu.RLock()
	_, n, err := t.arena.nodeForFile(fileID)
	if err != nil {
		t.mu.RUnlock()
		return nil, err
	}
	if n.tombstoned {
		t.mu.RUnlock()
		return nil, rerrors.RemovedErr()
	}
	if cached := t.arena.slots.get(n.slot); cached != nil {
		client := t.client
		t.mu.RUnlock()
		return overlayClient(cached, client), nil
	}
	t.mu.RUnlock()

	// Cache miss: upgrade to the write lock and compute. compute
	// re-resolves and re-checks tombstoned itself — the node's status may
	// have changed between the read and write acquisitions.
	t.mu.Lock()
	logx.L().WithField("file", int64(fileID)).Debug("computing config (cache miss)")
	result, err := t.arena.compute(fileID)
	client := t.client
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return overlayClient(result, client), nil
}

// overlayClient applies the client layer last, per spec.md §4.4: it is
// not itself cached and never mutates the shared, memoised base value.
func overlayClient(base *schema.Local, client *parser.Input) *schema.Local {
	if client == nil {
		return base
	}
	return base.CloneWithOverrides(client.Local)
}
