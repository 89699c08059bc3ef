package vfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ra-configtree/ratree/internal/constants"
)

// Directory is a Store backed by a real workspace directory on disk. It
// assigns a stable FileID to every recognised config file name
// (constants.ConfigFileNames) the first time Scan observes it; rescans
// reuse the same FileID for a path that is still present, so callers can
// diff old and new Scan results to build a ConfigChanges batch.
//
// Directory never watches the filesystem. Rescanning is always caller
// initiated, per the core's "driven, not watching" contract.
type Directory struct {
	root string

	mu     sync.RWMutex
	byPath map[string]FileID
	paths  map[FileID]string
	nextID FileID
}

// NewDirectory creates a Directory store rooted at root.
func NewDirectory(root string) *Directory {
	return &Directory{
		root:   root,
		byPath: make(map[string]FileID),
		paths:  make(map[FileID]string),
	}
}

// Node describes one discovered config file relative to the workspace root.
type Node struct {
	ID      FileID
	RelDir  string // directory containing the config file, relative to root; "" for the root dir
	AbsPath string
}

// Scan walks the directory tree once, returning every discovered node in
// depth-first order. It does not build parent/child edges — that is the
// manifest's job (internal/manifest) or the caller's, since the core's
// ConfigChanges.parent_changes is the only channel for tree shape.
func (d *Directory) Scan() ([]Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []Node
	err := filepath.WalkDir(d.root, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			if shouldIgnoreDir(entry.Name()) && path != d.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !isConfigFileName(entry.Name()) {
			return nil
		}

		rel, err := filepath.Rel(d.root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if rel == "." {
			rel = ""
		}

		id, ok := d.byPath[path]
		if !ok {
			d.nextID++
			id = d.nextID
			d.byPath[path] = id
			d.paths[id] = path
		}
		out = append(out, Node{ID: id, RelDir: rel, AbsPath: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning workspace %s: %w", d.root, err)
	}
	return out, nil
}

// RegisterFile assigns (or reuses) a stable FileID for an arbitrary path
// outside the scanned workspace tree — used for the XDG user-default
// config file, which Scan never visits since it lives outside the
// workspace root.
func (d *Directory) RegisterFile(path string) FileID {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id, ok := d.byPath[path]; ok {
		return id
	}
	d.nextID++
	id := d.nextID
	d.byPath[path] = id
	d.paths[id] = path
	return id
}

func isConfigFileName(name string) bool {
	for _, candidate := range constants.ConfigFileNames {
		if name == candidate {
			return true
		}
	}
	return false
}

func shouldIgnoreDir(name string) bool {
	for _, pattern := range constants.DefaultIgnorePatterns {
		if name == pattern {
			return true
		}
	}
	return false
}

func (d *Directory) FileContents(id FileID) ([]byte, error) {
	d.mu.RLock()
	path, ok := d.paths[id]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("vfs: unknown file id %d", id)
	}
	return os.ReadFile(path)
}

func (d *Directory) FilePath(id FileID) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	path, ok := d.paths[id]
	if !ok {
		return "", fmt.Errorf("vfs: unknown file id %d", id)
	}
	return path, nil
}
