package parser

import "github.com/ra-configtree/ratree/internal/schema"

// Input is the immutable, shareable, structured representation of one
// configuration file's parsed content — spec.md's ConfigInput. It is
// never mutated after construction; sharing it is pointer duplication.
type Input struct {
	// Local is the sparse table of keys this file set. Per SPEC_FULL.md
	// §9.1, Local is the only sub-record carried through inheritance —
	// there is no other sub-record in this schema to be ambiguous about.
	Local schema.Sparse
}
