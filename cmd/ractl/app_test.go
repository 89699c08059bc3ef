package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ra-configtree/ratree/internal/vfs"
)

// newTestApp builds an App wired to tmpDir with buffer-captured output,
// mirroring the teacher's App.SetOutput-based redirection rather than its
// os.Pipe()-based captureOutput helper: our App already takes writers.
func newTestApp(t *testing.T, workspaceDir string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	app := NewApp()
	var stdout, stderr bytes.Buffer
	app.SetOutput(&stdout, &stderr)
	app.workspaceDir = workspaceDir
	app.xdgPath = filepath.Join(workspaceDir, ".ra-xdg.toml")
	app.logLevel = "error"
	return app, &stdout, &stderr
}

func run(t *testing.T, app *App, args ...string) error {
	t.Helper()
	app.rootCmd.SetArgs(args)
	return app.rootCmd.Execute()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAppCommands(t *testing.T) {
	app := NewApp()
	assert.NotNil(t, app.rootCmd)
	for _, name := range []string{"init", "validate", "read", "set-client", "browse"} {
		cmd, _, err := app.rootCmd.Find([]string{name})
		assert.NoError(t, err, "command %s should exist", name)
		assert.NotNil(t, cmd, "command %s should not be nil", name)
	}
}

func TestInitCommand(t *testing.T) {
	tmpDir := t.TempDir()
	app, stdout, _ := newTestApp(t, tmpDir)

	err := run(t, app, "init", "--workspace", tmpDir)
	require.NoError(t, err)

	manifestPath := filepath.Join(tmpDir, "ratree.yaml")
	assert.FileExists(t, manifestPath)
	assert.Contains(t, stdout.String(), manifestPath)
}

func TestInitCommandRefusesToOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "ratree.yaml"), "workspace:\n  name: existing\n")

	app, _, _ := newTestApp(t, tmpDir)
	err := run(t, app, "init", "--workspace", tmpDir)
	assert.Error(t, err)
}

// buildWorkspace lays out a two-node workspace (root + child) with a
// ratree.yaml manifest wiring child off root.
func buildWorkspace(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "ra.toml"), "completion.autoself.enable = true\n")
	writeFile(t, filepath.Join(tmpDir, "child", "ra.toml"), "checkOnSave.command = \"clippy\"\n")
	writeFile(t, filepath.Join(tmpDir, "ratree.yaml"), `workspace:
  name: test-workspace
files:
  - path: "."
    parent: xdg
  - path: child
    parent: "."
`)
	return tmpDir
}

func TestValidateCommand(t *testing.T) {
	tmpDir := buildWorkspace(t)
	app, stdout, stderr := newTestApp(t, tmpDir)

	err := run(t, app, "validate", "--workspace", tmpDir)
	require.NoError(t, err)
	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), "0 diagnostic(s)")
	assert.Contains(t, stdout.String(), ".\n")
	assert.Contains(t, stdout.String(), "child")
}

func TestValidateCommandReportsUnknownManifestEntries(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "ra.toml"), "")
	writeFile(t, filepath.Join(tmpDir, "ratree.yaml"), `workspace:
  name: test-workspace
files:
  - path: missing
`)
	app, _, _ := newTestApp(t, tmpDir)
	err := run(t, app, "validate", "--workspace", tmpDir)
	assert.Error(t, err)
}

func TestReadCommand(t *testing.T) {
	tmpDir := buildWorkspace(t)
	app, stdout, _ := newTestApp(t, tmpDir)

	err := run(t, app, "read", "child", "--workspace", tmpDir)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "CheckOnSaveCommand:clippy")
}

func TestReadCommandUnknownDir(t *testing.T) {
	tmpDir := buildWorkspace(t)
	app, _, _ := newTestApp(t, tmpDir)

	err := run(t, app, "read", "nope", "--workspace", tmpDir)
	assert.Error(t, err)
}

func TestSetClientCommand(t *testing.T) {
	tmpDir := buildWorkspace(t)
	app, stdout, stderr := newTestApp(t, tmpDir)

	err := run(t, app, "set-client", "completion.autoimport.enable=true", "--workspace", tmpDir)
	require.NoError(t, err)
	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), "client overlay applied")
}

func TestSetClientCommandRejectsMalformedPair(t *testing.T) {
	tmpDir := buildWorkspace(t)
	app, _, _ := newTestApp(t, tmpDir)

	err := run(t, app, "set-client", "no-equals-sign", "--workspace", tmpDir)
	assert.Error(t, err)
}

func TestBuildTreeWithoutManifest(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "ra.toml"), "")

	app, _, _ := newTestApp(t, tmpDir)
	tree, store, nodes, errs, err := app.buildTree()
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.NotNil(t, store)
	assert.Len(t, nodes, 1)
	assert.Empty(t, errs)
}

func TestFindFile(t *testing.T) {
	nodes := []vfs.Node{
		{ID: 1, RelDir: ""},
		{ID: 2, RelDir: "child"},
		{ID: 3, RelDir: "child/grandchild"},
	}

	id, err := findFile(nodes, "child")
	require.NoError(t, err)
	assert.Equal(t, vfs.FileID(2), id)

	id, err = findFile(nodes, "child/grandchild/")
	require.NoError(t, err)
	assert.Equal(t, vfs.FileID(3), id)

	_, err = findFile(nodes, "does-not-exist")
	assert.Error(t, err)
}
