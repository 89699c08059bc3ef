package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func TestDefault(t *testing.T) {
	d := Default()
	assert.True(t, d.CompletionAutoselfEnable)
	assert.True(t, d.CompletionAutoimportEnable)
	assert.True(t, d.SemanticHighlightingStringsEnable)
	assert.Equal(t, DiscriminantHintsNever, d.InlayHintsDiscriminantHints)
	assert.Equal(t, "check", d.CheckOnSaveCommand)
	assert.Nil(t, d.CargoFeatures)
	assert.Nil(t, d.DiagnosticsDisabled)
}

func TestCloneWithOverrides_UnsetKeysPassThrough(t *testing.T) {
	base := Default()
	out := base.CloneWithOverrides(Sparse{})
	assert.Equal(t, base, out)
	assert.NotSame(t, base, out)
}

func TestCloneWithOverrides_SetKeysOverride(t *testing.T) {
	base := Default()
	out := base.CloneWithOverrides(Sparse{
		CompletionAutoselfEnable: boolPtr(false),
		CheckOnSaveCommand:       strPtr("clippy"),
	})

	assert.False(t, out.CompletionAutoselfEnable)
	assert.Equal(t, "clippy", out.CheckOnSaveCommand)
	assert.True(t, out.CompletionAutoimportEnable, "untouched key keeps base value")
	assert.True(t, base.CompletionAutoselfEnable, "base is not mutated")
}

func TestCloneWithOverrides_SliceIsDeepCopied(t *testing.T) {
	base := Default()
	features := []string{"default"}
	out := base.CloneWithOverrides(Sparse{CargoFeatures: &features})

	features[0] = "mutated"
	require.Len(t, out.CargoFeatures, 1)
	assert.Equal(t, "default", out.CargoFeatures[0], "overlay mutation after the fact must not leak into the clone")
}

func TestCloneWithOverrides_IgnoresSymbolSearchScope(t *testing.T) {
	base := Default()
	scope := SymbolSearchScopeWorkspaceAndDeps
	out := base.CloneWithOverrides(Sparse{SymbolSearchScope: &scope})

	// CloneWithOverrides has no field to carry this into; the call simply
	// must not panic or otherwise misbehave on a root-only key.
	assert.Equal(t, base, out)
}

func TestFromRootInput_DefaultsScopeToWorkspace(t *testing.T) {
	root := FromRootInput(Sparse{})
	assert.Equal(t, SymbolSearchScopeWorkspace, root.SymbolSearchScope)
}

func TestFromRootInput_AppliesScopeAndOtherOverrides(t *testing.T) {
	scope := SymbolSearchScopeWorkspaceAndDeps
	root := FromRootInput(Sparse{
		SymbolSearchScope:        &scope,
		CompletionAutoselfEnable: boolPtr(false),
	})

	assert.Equal(t, SymbolSearchScopeWorkspaceAndDeps, root.SymbolSearchScope)
	assert.False(t, root.CompletionAutoselfEnable)
}

func TestFromRootInput_CoincidesWithDefaultCloneWhenScopeUnset(t *testing.T) {
	overrides := Sparse{CheckOnSaveCommand: strPtr("clippy")}
	root := FromRootInput(overrides)
	plain := Default().CloneWithOverrides(overrides)

	assert.Equal(t, *plain, root.Local)
}

func TestSparse_IsEmpty(t *testing.T) {
	assert.True(t, Sparse{}.IsEmpty())
	assert.False(t, Sparse{CompletionAutoselfEnable: boolPtr(true)}.IsEmpty())
}

func TestSparse_RootOnlySet(t *testing.T) {
	assert.False(t, Sparse{}.RootOnlySet())
	scope := SymbolSearchScopeWorkspace
	assert.True(t, Sparse{SymbolSearchScope: &scope}.RootOnlySet())
}
