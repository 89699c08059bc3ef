package configtree

import (
	"github.com/ra-configtree/ratree/internal/logx"
	"github.com/ra-configtree/ratree/internal/rerrors"
	"github.com/ra-configtree/ratree/internal/schema"
	"github.com/ra-configtree/ratree/internal/vfs"
)

// compute is spec.md §4.4's entry point, addressed by file_id. It is the
// only place that checks for a tombstoned node — once past that check,
// computeNode treats the rest of the chain uniformly, including removed
// (input cleared but not tombstoned) or placeholder ancestors, which
// simply contribute no override of their own (their input is nil either
// way). A node whose input was merely cleared via remove() computes
// successfully here with no local overrides, per spec.md §4.2; only a
// tombstoned node (never actually produced by any primitive in this
// package — see node.go) would fail this check.
func (a *arena) compute(id vfs.FileID) (*schema.Local, error) {
	nid, n, err := a.nodeForFile(id)
	if err != nil {
		return nil, err
	}
	if n.tombstoned {
		return nil, rerrors.RemovedErr()
	}
	return a.computeNode(nid), nil
}

// computeNode implements the five-step algorithm on an already-resolved
// node, memoising into the slot table. It never errors: compute checks
// the entry node's non-existent/tombstoned status before calling it, and
// the ancestors it recurses into are not checked for tombstoning (nothing
// in this package sets that flag).
func (a *arena) computeNode(nid NodeID) *schema.Local {
	n := a.nodes[nid]

	if cached := a.slots.get(n.slot); cached != nil {
		return cached
	}

	var result *schema.Local
	if n.parent == noParent {
		if n.input == nil {
			result = schema.Default()
		} else {
			if n.input.Local.RootOnlySet() {
				logx.L().WithField("node", int(nid)).Warn("root-only key set on node used as a root; applying it")
			}
			result = schema.FromRootInput(n.input.Local).AsLocal()
		}
	} else {
		base := a.computeNode(n.parent)
		if n.input != nil {
			if n.input.Local.RootOnlySet() {
				logx.L().WithField("node", int(nid)).Warn("root-only key ignored on non-root node")
			}
			result = base.CloneWithOverrides(n.input.Local)
		} else {
			result = base
		}
	}

	a.slots.set(n.slot, result)
	return result
}
