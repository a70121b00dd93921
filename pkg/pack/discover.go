package pack

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/leftysay/pkg/errors"
)

// Discover scans roots in order and returns every usable pack.
//
// Manifests are looked for at most MaxDepth levels below each root. The
// first pack seen with a given name wins, so earlier roots shadow later
// ones. Packs without images are skipped. Unreadable manifests are logged
// and skipped; a missing root is not an error.
func Discover(roots []string, logger *log.Logger) []*Pack {
	if logger == nil {
		logger = log.Default()
	}

	var packs []*Pack
	seen := map[string]bool{}

	for _, root := range roots {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}
		for _, manifest := range findManifests(root) {
			p, err := Load(manifest)
			if err != nil {
				logger.Warn("skipping pack", "manifest", manifest, "err", errors.UserMessage(err))
				continue
			}
			if seen[p.Name] {
				logger.Debug("pack shadowed", "name", p.Name, "path", p.Root)
				continue
			}
			if len(p.Images) == 0 {
				logger.Debug("pack has no images", "name", p.Name, "path", p.Root)
				continue
			}
			seen[p.Name] = true
			packs = append(packs, p)
		}
	}
	return packs
}

// findManifests walks root and returns one manifest per pack directory.
func findManifests(root string) []string {
	var out []string
	taken := map[string]bool{}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		depth := depthBelow(root, path)
		if d.IsDir() {
			if depth >= MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !isManifest(d.Name()) {
			return nil
		}
		dir := filepath.Dir(path)
		if taken[dir] {
			return nil
		}
		taken[dir] = true
		out = append(out, preferredManifest(dir))
		return nil
	})
	return out
}

func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

func isManifest(name string) bool {
	for _, m := range ManifestFiles {
		if name == m {
			return true
		}
	}
	return false
}

// preferredManifest picks the highest-priority manifest present in dir.
func preferredManifest(dir string) string {
	for _, m := range ManifestFiles {
		p := filepath.Join(dir, m)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, ManifestFiles[0])
}

// Find returns the pack called name.
func Find(packs []*Pack, name string) (*Pack, error) {
	for _, p := range packs {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodePackNotFound, "pack not found: %s", name)
}
