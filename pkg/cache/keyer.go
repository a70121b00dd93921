package cache

import "strings"

// Keyer builds cache keys for rendered output.
type Keyer interface {
	// ImageKey fingerprints a chafa render of the image with contentHash.
	ImageKey(contentHash string, opts ImageKeyOpts) string
}

// ImageKeyOpts holds every render option that changes chafa's output.
type ImageKeyOpts struct {
	Cols        int    `json:"cols"`
	Rows        int    `json:"rows"`
	Format      string `json:"format"`
	Colors      string `json:"colors"`
	Animate     bool   `json:"animate"`
	Passthrough string `json:"passthrough,omitempty"`
}

// DefaultKeyer produces "image:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ImageKey hashes the content hash together with the render options.
func (DefaultKeyer) ImageKey(contentHash string, opts ImageKeyOpts) string {
	return hashKey("image", contentHash, opts)
}

// KeyType returns the prefix of a key ("image" for image keys), used to
// label cache events.
func KeyType(key string) string {
	prefix, _, _ := strings.Cut(key, ":")
	return prefix
}
