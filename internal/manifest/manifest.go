// Package manifest loads the static workspace shape — which files
// participate in the tree and how they're wired to each other — from a
// ratree.yaml file, grounded on the teacher's internal/config.ConfigTree
// LoadTree/Save pattern (plain YAML via gopkg.in/yaml.v3, defaults
// applied post-unmarshal, then validated).
//
// Unlike the teacher's manifest (an XML repo-tool file shelled out to
// git to manage), this one describes no external state at all: it is a
// pure, declarative seed for the first configtree.Changes batch an
// application applies at startup.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ra-configtree/ratree/internal/constants"
)

// Manifest is the on-disk shape of ratree.yaml.
type Manifest struct {
	Workspace Workspace  `yaml:"workspace"`
	Files     []FileNode `yaml:"files"`
}

// Workspace carries top-level metadata about the workspace being described.
type Workspace struct {
	Name string `yaml:"name"`
	Root string `yaml:"root,omitempty"`
}

// FileNode describes one config file's place in the tree. Path is a
// relative directory path, with "." naming the workspace root directory
// itself. Parent is another listed file's Path, or the literal string
// "xdg" to parent directly off the user-global default. An empty Parent
// means "no parent at all" (the node computes as its own root).
type FileNode struct {
	Path   string `yaml:"path"`
	Parent string `yaml:"parent,omitempty"`
}

// Default returns an empty manifest for the given workspace name.
func Default(name string) *Manifest {
	return &Manifest{Workspace: Workspace{Name: name}}
}

// Load reads and validates a manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	if m.Workspace.Root == "" {
		m.Workspace.Root = "."
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	return &m, nil
}

// Save writes m to path as YAML, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest file: %w", err)
	}

	return nil
}

// Validate checks the manifest is internally consistent: every file has a
// path, every named parent resolves to a path actually listed (or to the
// "xdg" sentinel), and no file parents itself.
func (m *Manifest) Validate() error {
	if m.Workspace.Name == "" {
		return fmt.Errorf("workspace name is required")
	}

	known := make(map[string]bool, len(m.Files))
	for _, f := range m.Files {
		if f.Path == "" {
			return fmt.Errorf("file entry missing path")
		}
		known[f.Path] = true
	}

	for _, f := range m.Files {
		if f.Parent == "" || f.Parent == constants.XDGParentSentinel {
			continue
		}
		if f.Parent == f.Path {
			return fmt.Errorf("file %s cannot parent itself", f.Path)
		}
		if !known[f.Parent] {
			return fmt.Errorf("file %s has unknown parent %s", f.Path, f.Parent)
		}
	}

	return nil
}
