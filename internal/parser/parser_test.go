package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ra-configtree/ratree/internal/rerrors"
	"github.com/ra-configtree/ratree/internal/schema"
	"github.com/ra-configtree/ratree/internal/vfs"
)

func TestParse_EmptyContent(t *testing.T) {
	store := vfs.NewMemory()
	id := store.Put("ra.toml", nil)

	var sink rerrors.List
	input, err := Parse(id, store, &sink)

	require.NoError(t, err)
	assert.Nil(t, input)
	assert.Zero(t, sink.Len())
}

func TestParse_InvalidUTF8(t *testing.T) {
	store := vfs.NewMemory()
	id := store.Put("ra.toml", []byte{0xff, 0xfe, 0xfd})

	var sink rerrors.List
	input, err := Parse(id, store, &sink)

	require.NoError(t, err)
	assert.Nil(t, input)
	require.Equal(t, 1, sink.Len())
	assert.Equal(t, rerrors.Utf8, sink.Errors()[0].Kind)
}

func TestParse_SyntaxError(t *testing.T) {
	store := vfs.NewMemory()
	id := store.Put("ra.toml", []byte("completion.autoself.enable = [unterminated"))

	var sink rerrors.List
	input, err := Parse(id, store, &sink)

	require.NoError(t, err)
	assert.Nil(t, input)
	require.Equal(t, 1, sink.Len())
	assert.Equal(t, rerrors.TomlParse, sink.Errors()[0].Kind)
}

func TestParse_ValidFields(t *testing.T) {
	store := vfs.NewMemory()
	id := store.Put("ra.toml", []byte(`
[completion.autoself]
enable = false

[completion.autoimport]
enable = true

[inlayHints.discriminantHints]
enable = "fieldless"

[checkOnSave]
command = "clippy"

[cargo]
features = ["foo", "bar"]
`))

	var sink rerrors.List
	input, err := Parse(id, store, &sink)

	require.NoError(t, err)
	require.NotNil(t, input)
	assert.Zero(t, sink.Len())
	require.NotNil(t, input.Local.CompletionAutoselfEnable)
	assert.False(t, *input.Local.CompletionAutoselfEnable)
	require.NotNil(t, input.Local.CompletionAutoimportEnable)
	assert.True(t, *input.Local.CompletionAutoimportEnable)
	require.NotNil(t, input.Local.InlayHintsDiscriminantHints)
	assert.Equal(t, schema.DiscriminantHintsFieldless, *input.Local.InlayHintsDiscriminantHints)
	require.NotNil(t, input.Local.CheckOnSaveCommand)
	assert.Equal(t, "clippy", *input.Local.CheckOnSaveCommand)
	require.NotNil(t, input.Local.CargoFeatures)
	assert.Equal(t, []string{"foo", "bar"}, *input.Local.CargoFeatures)
}

func TestParse_PartialFailureIsolatesOtherFields(t *testing.T) {
	store := vfs.NewMemory()
	id := store.Put("ra.toml", []byte(`
[completion.autoself]
enable = "not-a-bool"

[completion.autoimport]
enable = true
`))

	var sink rerrors.List
	input, err := Parse(id, store, &sink)

	require.NoError(t, err)
	require.NotNil(t, input)
	require.Equal(t, 1, sink.Len())
	assert.Equal(t, rerrors.TomlDeserialize, sink.Errors()[0].Kind)
	assert.Equal(t, "completion.autoself.enable", sink.Errors()[0].Field)

	assert.Nil(t, input.Local.CompletionAutoselfEnable)
	require.NotNil(t, input.Local.CompletionAutoimportEnable)
	assert.True(t, *input.Local.CompletionAutoimportEnable)
}

func TestParse_InvalidEnumValue(t *testing.T) {
	store := vfs.NewMemory()
	id := store.Put("ra.toml", []byte(`
[inlayHints.discriminantHints]
enable = "sometimes"
`))

	var sink rerrors.List
	input, err := Parse(id, store, &sink)

	require.NoError(t, err)
	require.NotNil(t, input)
	assert.Nil(t, input.Local.InlayHintsDiscriminantHints)
	require.Equal(t, 1, sink.Len())
	assert.Equal(t, rerrors.TomlDeserialize, sink.Errors()[0].Kind)
}

func TestParse_UnknownFileID(t *testing.T) {
	store := vfs.NewMemory()

	var sink rerrors.List
	_, err := Parse(vfs.FileID(999), store, &sink)

	require.Error(t, err)
}
