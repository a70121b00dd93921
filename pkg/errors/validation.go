package errors

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// SupportedImageExtensions lists the image file extensions chafa is asked to
// render. Matching is case-insensitive.
var SupportedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// IsSupportedImage reports whether path has a supported image extension.
func IsSupportedImage(path string) bool {
	return SupportedImageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ValidatePackName validates a pack name for safety and correctness.
//
// Pack names end up in directory listings and error messages, so the rules
// are conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidatePackName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "pack name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "pack name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "pack name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "pack name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateImagePath checks that path names an existing, regular image file.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - The file must exist and must not be a directory
//
// The extension is not checked: an explicit --image is trusted and chafa
// decides whether it can read the file.
func ValidateImagePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "image path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "image path contains invalid characters")
		}
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(ErrCodeFileNotFound, "image not found: %s", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "cannot access image %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "image path is a directory: %s", path)
	}

	return nil
}

// ValidateMaxHeightRatio checks that ratio lies in (0, 1].
func ValidateMaxHeightRatio(ratio float64) error {
	if ratio <= 0 || ratio > 1 {
		return New(ErrCodeInvalidInput, "max height ratio must be in (0, 1], got %v", ratio)
	}
	return nil
}

// ValidateRedisURL validates a redis connection URL.
// It only checks the scheme; go-redis parses the rest.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "redis_url cannot be empty when cache_backend is redis")
	}

	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") && !strings.HasPrefix(rawURL, "unix://") {
		return New(ErrCodeInvalidConfig, "redis_url must use redis, rediss or unix scheme")
	}

	return nil
}
