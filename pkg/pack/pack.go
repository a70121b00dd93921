// Package pack discovers image packs and picks greetings from them.
//
// A pack is a directory holding a manifest (pack.toml, or pack.yaml for
// packs authored alongside other YAML tooling), an images directory and an
// optional messages.txt with one greeting per line:
//
//	lefty/
//	  pack.toml        name = "lefty", images_dir = "images"
//	  images/wave.png
//	  messages.txt
package pack

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/leftysay/pkg/errors"
)

// Manifest file names, in preference order.
var ManifestFiles = []string{"pack.toml", "pack.yaml", "pack.yml"}

// MessagesFile holds a pack's greetings, one per line.
const MessagesFile = "messages.txt"

// DefaultImagesDir is used when a manifest omits images_dir.
const DefaultImagesDir = "images"

// MaxDepth is how deep below a search root manifests are looked for.
const MaxDepth = 3

// Manifest is the metadata block of a pack.
type Manifest struct {
	Name        string `toml:"name" yaml:"name"`
	Version     string `toml:"version" yaml:"version"`
	License     string `toml:"license" yaml:"license"`
	Description string `toml:"description" yaml:"description"`
	ImagesDir   string `toml:"images_dir" yaml:"images_dir"`
}

// Pack is a discovered pack.
type Pack struct {
	Manifest
	// Root is the directory containing the manifest.
	Root string
	// Source is the manifest path.
	Source string
	// Images are the pack's renderable images, sorted by path.
	Images []string
	// Messages are the non-empty lines of messages.txt.
	Messages []string
}

// Load reads the pack whose manifest is at manifestPath.
func Load(manifestPath string) (*Pack, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read pack manifest")
	}

	var m Manifest
	switch filepath.Ext(manifestPath) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		_, err = toml.Decode(string(data), &m)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse pack manifest %s", manifestPath)
	}

	root := filepath.Dir(manifestPath)
	if m.Name == "" {
		m.Name = filepath.Base(root)
	}
	if err := errors.ValidatePackName(m.Name); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "pack %s", manifestPath)
	}
	if m.ImagesDir == "" {
		m.ImagesDir = DefaultImagesDir
	}

	p := &Pack{Manifest: m, Root: root, Source: manifestPath}
	p.Images = collectImages(filepath.Join(root, m.ImagesDir))
	p.Messages = readMessages(filepath.Join(root, MessagesFile))
	return p, nil
}

// collectImages returns every supported image below dir, sorted.
func collectImages(dir string) []string {
	var images []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() && errors.IsSupportedImage(path) {
			images = append(images, path)
		}
		return nil
	})
	return images
}

// readMessages returns the trimmed, non-empty lines of path.
func readMessages(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out
}
