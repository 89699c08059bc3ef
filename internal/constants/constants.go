// Package constants holds default names and formatting strings shared
// across the tree, parser, and CLI packages.
package constants

// Default configuration values
const (
	// DefaultConfigFileName is the primary per-directory configuration
	// file name (the first entry of ConfigFileNames).
	DefaultConfigFileName = "ra.toml"

	// DefaultWorkspaceName is a fallback workspace name. The manifest
	// loader does not apply it: a manifest without a name fails validation.
	DefaultWorkspaceName = "workspace"

	// ManifestFileName is the workspace-layout manifest read by the CLI
	// (not the core) to seed the initial ConfigChanges batch.
	ManifestFileName = "ratree.yaml"

	// XDGParentSentinel is the manifest's spelling of "parent this file
	// directly off the distinguished XDG node" (configtree.UserDefaultParentSpec).
	XDGParentSentinel = "xdg"
)

// ConfigFileNames are the possible per-node configuration file names a
// directory scan recognises, primary name first.
var ConfigFileNames = []string{
	"ra.toml",
	".ra.toml",
}

// DefaultIgnorePatterns are directory names skipped during a workspace scan.
var DefaultIgnorePatterns = []string{
	".git",
	"node_modules",
	"vendor",
	"target",
	".idea",
	".vscode",
}

// Tree display glyphs, used by the browse TUI's list labels and by
// `ractl validate`'s workspace tree dump.
const (
	TreeBranch     = "├── "
	TreeLastBranch = "└── "
	TreeVertical   = "│   "
	TreeSpace      = "    "
)
