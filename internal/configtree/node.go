// Package configtree implements the hierarchical, lazily-computed,
// concurrently-accessible configuration tree: the Config Node Arena, the
// Computed Slot Table, the compute algorithm, change application, and
// the read-write-lock facade in front of all of it.
//
// Grounded on the teacher's internal/tree (arena-of-nodes-with-parent-
// edges shape, node_types.go's field-presence discrimination) and
// internal/tree/navigator/cached.go (the RWMutex cache-invalidation
// pattern, generalised from a TTL cache to an explicit-invalidation one).
package configtree

import "github.com/ra-configtree/ratree/internal/parser"

// NodeID is a stable handle into the arena. The sentinel noParent means
// "no parent" (the node computes as its own root).
type NodeID int

const noParent NodeID = -1

// SlotKey indexes the Computed Slot Table independently of node storage,
// matching spec.md §4.3's requirement that the cache be decoupled from
// node identity.
type SlotKey int

// SourceKind discriminates spec.md's ConfigSource tag. Every node
// actually allocated in the arena is SourceRaToml; SourceClient exists
// only for documentation parity with the spec (the client layer is
// deliberately never an arena node — see facade.go).
type SourceKind int

const (
	SourceRaToml SourceKind = iota
	SourceClient
)

// node is the arena's tree payload (spec.md's ConfigNode), plus the
// bookkeeping fields (parent and child edges) the arena walks to
// reparent and invalidate.
type node struct {
	kind SourceKind

	input *parser.Input

	// tombstoned marks a node as permanently gone via the arena's actual
	// node-removal primitive, distinct from an ordinary remove(), which
	// only clears input and leaves the node addressable (spec.md §4.2:
	// "the node itself remains addressable... subsequent computation
	// treats it as having no local overrides"). No primitive in this
	// package currently sets tombstoned — the original source's
	// remove_toml only does `node.input = None` and never calls
	// indextree's real node-removal API, so this mirrors a condition
	// that, per the given source, is never actually triggered. It is
	// kept so updateInput's Removed-error branch stays meaningful if a
	// future caller ever exposes real tombstoning.
	tombstoned bool

	slot SlotKey

	parent   NodeID
	children []NodeID
}
