// Package schema defines the concrete settings surface the config tree
// resolves. The core (internal/configtree) treats this as an opaque
// layered record; it only ever calls Default, CloneWithOverrides,
// FromRootInput (with AsLocal), and RootOnlySet. A different schema can be swapped in without touching
// the tree, parser, or facade.
package schema

// DiscriminantHints is the enum domain for inlayHints.discriminantHints.enable.
type DiscriminantHints string

const (
	DiscriminantHintsNever     DiscriminantHints = "never"
	DiscriminantHintsFieldless DiscriminantHints = "fieldless"
	DiscriminantHintsAlways    DiscriminantHints = "always"
)

// SymbolSearchScope is the enum domain for the root-only
// workspace.symbol.search.scope key.
type SymbolSearchScope string

const (
	SymbolSearchScopeWorkspace        SymbolSearchScope = "workspace"
	SymbolSearchScopeWorkspaceAndDeps SymbolSearchScope = "workspaceAndDependencies"
)

// Sparse is the parsed, possibly-partial representation of one file's
// local settings table. A nil pointer means "unset" — a first-class
// state distinct from "set to the zero value" or "set to the default".
//
// SymbolSearchScope is carried here too (the parser doesn't know which
// node is root), but Local.CloneWithOverrides always skips it; only
// FromRootInput reads it. See SPEC_FULL.md §9.1.
type Sparse struct {
	CompletionAutoselfEnable          *bool
	CompletionAutoimportEnable        *bool
	SemanticHighlightingStringsEnable *bool
	InlayHintsDiscriminantHints       *DiscriminantHints
	CheckOnSaveCommand                *string
	CargoFeatures                     *[]string
	DiagnosticsDisabled               *[]string
	SymbolSearchScope                 *SymbolSearchScope
}

// IsEmpty reports whether no key in the sparse record is set. The parser
// uses it to return no input at all for a non-empty file that sets no
// recognised key and has no field that failed to decode.
func (s Sparse) IsEmpty() bool {
	return s.CompletionAutoselfEnable == nil &&
		s.CompletionAutoimportEnable == nil &&
		s.SemanticHighlightingStringsEnable == nil &&
		s.InlayHintsDiscriminantHints == nil &&
		s.CheckOnSaveCommand == nil &&
		s.CargoFeatures == nil &&
		s.DiagnosticsDisabled == nil &&
		s.SymbolSearchScope == nil
}

// RootOnlySet reports whether the root-only key is present, so callers
// can warn when it shows up on a non-root node.
func (s Sparse) RootOnlySet() bool { return s.SymbolSearchScope != nil }

// Local is the dense, defaults-applied effective configuration at a
// node. Every key always has a value. Values are shared freely —
// CloneWithOverrides and Default are the only constructors, both pure.
type Local struct {
	CompletionAutoselfEnable          bool
	CompletionAutoimportEnable        bool
	SemanticHighlightingStringsEnable bool
	InlayHintsDiscriminantHints       DiscriminantHints
	CheckOnSaveCommand                string
	CargoFeatures                     []string
	DiagnosticsDisabled               []string
}

// Default returns every key at its built-in default.
func Default() *Local {
	return &Local{
		CompletionAutoselfEnable:          true,
		CompletionAutoimportEnable:        true,
		SemanticHighlightingStringsEnable: true,
		InlayHintsDiscriminantHints:       DiscriminantHintsNever,
		CheckOnSaveCommand:                "check",
		CargoFeatures:                     nil,
		DiagnosticsDisabled:               nil,
	}
}

// CloneWithOverrides overlays any set keys from overlay onto the
// receiver, producing a fresh *Local. Unset keys in overlay pass through
// unchanged. The root-only SymbolSearchScope key is never consulted
// here — see FromRootInput.
func (l *Local) CloneWithOverrides(overlay Sparse) *Local {
	out := *l
	if overlay.CompletionAutoselfEnable != nil {
		out.CompletionAutoselfEnable = *overlay.CompletionAutoselfEnable
	}
	if overlay.CompletionAutoimportEnable != nil {
		out.CompletionAutoimportEnable = *overlay.CompletionAutoimportEnable
	}
	if overlay.SemanticHighlightingStringsEnable != nil {
		out.SemanticHighlightingStringsEnable = *overlay.SemanticHighlightingStringsEnable
	}
	if overlay.InlayHintsDiscriminantHints != nil {
		out.InlayHintsDiscriminantHints = *overlay.InlayHintsDiscriminantHints
	}
	if overlay.CheckOnSaveCommand != nil {
		out.CheckOnSaveCommand = *overlay.CheckOnSaveCommand
	}
	if overlay.CargoFeatures != nil {
		out.CargoFeatures = cloneStrings(*overlay.CargoFeatures)
	}
	if overlay.DiagnosticsDisabled != nil {
		out.DiagnosticsDisabled = cloneStrings(*overlay.DiagnosticsDisabled)
	}
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Root is "the root-layer interpretation" of a sparse input: it differs
// from Default().CloneWithOverrides(sparse) only in that it additionally
// applies the root-only SymbolSearchScope key. If that key is never set,
// Root and Default().CloneWithOverrides coincide exactly, as required.
type Root struct {
	Local
	SymbolSearchScope SymbolSearchScope
}

// FromRootInput builds the root-layer interpretation of a sparse input.
func FromRootInput(sparse Sparse) *Root {
	dense := Default().CloneWithOverrides(sparse)
	scope := SymbolSearchScopeWorkspace
	if sparse.SymbolSearchScope != nil {
		scope = *sparse.SymbolSearchScope
	}
	return &Root{Local: *dense, SymbolSearchScope: scope}
}

// AsLocal discards the root-only fields, yielding the plain dense record
// downstream layers compose with via CloneWithOverrides.
func (r *Root) AsLocal() *Local {
	l := r.Local
	return &l
}
