package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/ra-configtree/ratree/internal/configtree"
	"github.com/ra-configtree/ratree/internal/constants"
	"github.com/ra-configtree/ratree/internal/vfs"
)

// Resolve turns a manifest plus the file ids a directory scan discovered
// into the single seed Changes batch an application applies once at
// startup: a Create for every file, then a reparent for every file whose
// manifest entry named a parent.
func Resolve(m *Manifest, nodes []vfs.Node) (configtree.Changes, error) {
	byRelPath := make(map[string]vfs.FileID, len(nodes))
	for _, n := range nodes {
		key := filepath.ToSlash(n.RelDir)
		if key == "" {
			key = "."
		}
		byRelPath[key] = n.ID
	}

	var changes configtree.Changes
	for _, f := range m.Files {
		id, ok := byRelPath[filepath.ToSlash(f.Path)]
		if !ok {
			return configtree.Changes{}, fmt.Errorf("manifest: %s not found by workspace scan", f.Path)
		}
		changes.FileChanges = append(changes.FileChanges, configtree.FileChange{
			File: id,
			Kind: configtree.Create,
		})

		if f.Parent == "" {
			continue
		}
		if f.Parent == constants.XDGParentSentinel {
			changes.ParentChanges = append(changes.ParentChanges, configtree.ParentChange{
				File:   id,
				Parent: configtree.UserDefaultParentSpec(),
			})
			continue
		}
		parentID, ok := byRelPath[filepath.ToSlash(f.Parent)]
		if !ok {
			return configtree.Changes{}, fmt.Errorf("manifest: parent %s of %s not found by workspace scan", f.Parent, f.Path)
		}
		changes.ParentChanges = append(changes.ParentChanges, configtree.ParentChange{
			File:   id,
			Parent: configtree.FileParentSpec(parentID),
		})
	}

	return changes, nil
}
