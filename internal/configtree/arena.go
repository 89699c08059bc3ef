package configtree

import (
	"fmt"

	"github.com/ra-configtree/ratree/internal/logx"
	"github.com/ra-configtree/ratree/internal/parser"
	"github.com/ra-configtree/ratree/internal/rerrors"
	"github.com/ra-configtree/ratree/internal/vfs"
)

// arena is the Config Node Arena: an indexed tree of nodes with
// parent/child edges, plus the file_id -> node_id mapping (invariant I6)
// and the distinguished, always-present XDG node (invariant I5).
type arena struct {
	nodes   []*node
	byFile  map[vfs.FileID]NodeID
	nodeIDs map[NodeID]vfs.FileID // inverse, for diagnostics only
	slots   *slotTable
	xdg     NodeID
}

// newArena creates the arena with its distinguished, always-present XDG
// node registered under xdgFileID — the user-global default config file.
// Like any other node, its contents are mutated through the ordinary
// file-change path (spec.md §8 scenario 5: "XDG update propagates").
func newArena(xdgFileID vfs.FileID) *arena {
	a := &arena{
		byFile:  make(map[vfs.FileID]NodeID),
		nodeIDs: make(map[NodeID]vfs.FileID),
		slots:   newSlotTable(),
	}
	a.xdg = a.newNode(SourceRaToml, nil)
	a.byFile[xdgFileID] = a.xdg
	a.nodeIDs[a.xdg] = xdgFileID
	return a
}

func (a *arena) newNode(kind SourceKind, input *parser.Input) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, &node{
		kind:   kind,
		input:  input,
		slot:   a.slots.alloc(),
		parent: noParent,
	})
	return id
}

// nodeForFile resolves a file_id to its node, or rerrors.NonExistent if
// the id was never introduced (invariant I1's contrapositive).
func (a *arena) nodeForFile(id vfs.FileID) (NodeID, *node, error) {
	nid, ok := a.byFile[id]
	if !ok {
		return 0, nil, rerrors.NonExistentErr()
	}
	return nid, a.nodes[nid], nil
}

// ensureNode returns the node for file_id, creating an empty placeholder
// if none exists yet — used by reparent's Parent(file_id) form.
func (a *arena) ensureNode(id vfs.FileID) NodeID {
	if nid, ok := a.byFile[id]; ok {
		return nid
	}
	nid := a.newNode(SourceRaToml, nil)
	a.byFile[id] = nid
	a.nodeIDs[nid] = id
	return nid
}

// insert allocates a new, unparented node for file_id. Panics if file_id
// is already mapped — an internal invariant violation, not a user-facing
// error (spec.md §4.2: "fails loudly").
func (a *arena) insert(id vfs.FileID, input *parser.Input) NodeID {
	if _, ok := a.byFile[id]; ok {
		panic(fmt.Sprintf("configtree: insert called for already-mapped file id %v", id))
	}
	nid := a.newNode(SourceRaToml, input)
	a.byFile[id] = nid
	a.nodeIDs[nid] = id
	return nid
}

// updateInput is the §4.2 primitive: insert if unmapped, else replace
// input and invalidate the subtree. Returns rerrors.Removed if the node
// is tombstoned, in which case input is left untouched — the Create
// change kind calls this too but discards that particular error, while
// Modify surfaces it (see changes.go). Tombstoning is a separate
// condition from an ordinary remove(); see node.go.
func (a *arena) updateInput(id vfs.FileID, input *parser.Input) (NodeID, error) {
	nid, ok := a.byFile[id]
	if !ok {
		return a.insert(id, input), nil
	}
	n := a.nodes[nid]
	if n.tombstoned {
		return nid, rerrors.RemovedErr()
	}
	n.input = input
	a.invalidateSubtree(nid)
	return nid, nil
}

// remove clears the node's input and invalidates its subtree. The node
// remains addressable; descendants still reach it as an ancestor with no
// local overrides of its own, and a direct read of the node itself still
// succeeds, resolving as if it had never set any key (spec.md §4.2).
// This does not tombstone the node — see node.go's tombstoned field.
func (a *arena) remove(id vfs.FileID) error {
	nid, n, err := a.nodeForFile(id)
	if err != nil {
		return err
	}
	n.input = nil
	a.invalidateSubtree(nid)
	return nil
}

// parentSpec mirrors spec.md §4.2's two reparent targets.
type parentSpec struct {
	userDefault bool
	file        vfs.FileID
}

// UserDefaultParent targets the distinguished XDG node.
func UserDefaultParent() parentSpec { return parentSpec{userDefault: true} }

// FileParent targets the node for file, creating a placeholder if needed.
func FileParent(file vfs.FileID) parentSpec { return parentSpec{file: file} }

// reparent appends node as a child of newParent, rejecting the change
// (leaving the tree untouched) if it would create a cycle. It always
// invalidates node's subtree, since its inherited chain has changed.
func (a *arena) reparent(nid NodeID, spec parentSpec) error {
	var parentID NodeID
	if spec.userDefault {
		parentID = a.xdg
	} else {
		parentID = a.ensureNode(spec.file)
	}

	if parentID == nid || a.isDescendant(nid, parentID) {
		return fmt.Errorf("configtree: reparent would create a cycle")
	}

	n := a.nodes[nid]
	if n.parent != noParent {
		a.detachChild(n.parent, nid)
	}
	n.parent = parentID
	a.nodes[parentID].children = append(a.nodes[parentID].children, nid)

	a.invalidateSubtree(nid)
	return nil
}

// isDescendant reports whether candidate is nid or appears anywhere
// under nid — the cycle check spec.md §4.2/§9 requires implementers add.
func (a *arena) isDescendant(nid, candidate NodeID) bool {
	if nid == candidate {
		return true
	}
	for _, c := range a.nodes[nid].children {
		if a.isDescendant(c, candidate) {
			return true
		}
	}
	return false
}

func (a *arena) detachChild(parent, child NodeID) {
	siblings := a.nodes[parent].children
	for i, c := range siblings {
		if c == child {
			a.nodes[parent].children = append(siblings[:i], siblings[i+1:]...)
			return
		}
	}
}

// invalidateSubtree empties the cache slot of nid and every descendant
// (invariant I4), never ancestors.
func (a *arena) invalidateSubtree(nid NodeID) {
	n := a.nodes[nid]
	a.slots.clear(n.slot)
	logx.L().WithField("node", int(nid)).Debug("invalidated cache slot")
	for _, c := range n.children {
		a.invalidateSubtree(c)
	}
}
