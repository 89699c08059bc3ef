package configtree

import (
	"github.com/ra-configtree/ratree/internal/parser"
	"github.com/ra-configtree/ratree/internal/rerrors"
	"github.com/ra-configtree/ratree/internal/vfs"
)

// ChangeKind discriminates the three ways a watched file can change
// between apply_changes batches.
type ChangeKind int

const (
	// Create means the file_id is new to this watch session.
	Create ChangeKind = iota
	// Modify means the file's content changed in place.
	Modify
	// Delete means the file was removed from the workspace.
	Delete
)

// FileChange is one entry of the ra_toml_changes batch.
type FileChange struct {
	File vfs.FileID
	Kind ChangeKind
}

// ParentChange reassigns a node's parent edge. ParentChanges are applied
// one at a time in slice order (a later change to the same file wins, and
// each cycle check sees the edges earlier ones made), after the client
// change and before the file changes.
type ParentChange struct {
	File   vfs.FileID
	Parent parentSpec
}

// ClientChange is a tri-state update to the client overlay: Present=false
// means "no change this batch"; Present=true with Value=nil means "client
// cleared its overlay"; Present=true with Value set means "client set a
// new overlay".
type ClientChange struct {
	Present bool
	Value   *parser.Input
}

// Changes is one apply_changes batch (spec.md §4.5): a tri-state client
// overlay update, a set of reparenting operations, and a set of per-file
// content changes, applied in that fixed order.
type Changes struct {
	Client        ClientChange
	ParentChanges []ParentChange
	FileChanges   []FileChange
}

// UserDefaultParentSpec targets the distinguished XDG node from outside
// this package (a wrapper around arena.go's UserDefaultParent).
func UserDefaultParentSpec() parentSpec { return UserDefaultParent() }

// FileParentSpec targets the node for file, creating a placeholder if needed.
func FileParentSpec(file vfs.FileID) parentSpec { return FileParent(file) }

// apply runs one batch against the arena in the fixed order spec.md §4.5
// requires: client change, then reparenting, then per-file content
// changes. Every file change is attempted even if an earlier one fails;
// all failures are recorded into sink rather than aborting the batch.
func (a *arena) apply(changes Changes, store vfs.Store, sink rerrors.Sink) {
	// The client overlay (changes.Client) is applied by Tree.ApplyChanges
	// before this call returns control to it; it has no arena-side state
	// of its own (see facade.go).

	for _, pc := range changes.ParentChanges {
		nid := a.ensureNode(pc.File)
		if err := a.reparent(nid, pc.Parent); err != nil {
			path, _ := store.FilePath(pc.File)
			sink.Add(rerrors.CycleErr(path, err))
		}
	}

	for _, fc := range changes.FileChanges {
		switch fc.Kind {
		case Create:
			input, err := parser.Parse(fc.File, store, sink)
			if err != nil {
				path, _ := store.FilePath(fc.File)
				sink.Add(rerrors.NonExistentErr().WithPath(path))
				continue
			}
			// Unlike Modify, a Removed result here is not surfaced: the
			// node is still "created" even if update is a no-op against
			// a tombstoned node. No primitive currently tombstones a
			// node, so this branch is presently unreachable in practice.
			_, _ = a.updateInput(fc.File, input)

		case Modify:
			input, err := parser.Parse(fc.File, store, sink)
			if err != nil {
				path, _ := store.FilePath(fc.File)
				sink.Add(rerrors.NonExistentErr().WithPath(path))
				continue
			}
			if _, err := a.updateInput(fc.File, input); err != nil {
				if rerr, ok := err.(*rerrors.Error); ok {
					path, _ := store.FilePath(fc.File)
					sink.Add(rerr.WithPath(path))
				}
			}

		case Delete:
			if err := a.remove(fc.File); err != nil {
				if rerr, ok := err.(*rerrors.Error); ok {
					path, _ := store.FilePath(fc.File)
					sink.Add(rerr.WithPath(path))
				}
			}
		}
	}
}
