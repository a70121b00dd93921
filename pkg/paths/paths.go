// Package paths provides centralized path handling for leftysay.
// It follows the XDG Base Directory specification, with LEFTYSAY_*
// environment overrides for each directory.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under each XDG base directory.
const AppName = "leftysay"

// Environment variable names
const (
	// EnvConfig points at an explicit config.toml.
	EnvConfig = "LEFTYSAY_CONFIG"

	// EnvCacheDir overrides the render cache directory.
	EnvCacheDir = "LEFTYSAY_CACHE_DIR"

	// EnvDataDir overrides the data directory (user packs live in <data>/packs).
	EnvDataDir = "LEFTYSAY_DATA_DIR"

	// EnvPacksDir adds a pack search root searched before all others.
	EnvPacksDir = "LEFTYSAY_PACKS_DIR"

	// EnvChafa points at an explicit chafa executable.
	EnvChafa = "LEFTYSAY_CHAFA"

	// EnvHomebrewPrefix is consulted on macOS for Homebrew-installed packs.
	EnvHomebrewPrefix = "HOMEBREW_PREFIX"
)

// Files and directories inside the XDG roots.
const (
	ConfigFileName = "config.toml"
	PacksDirName   = "packs"
)

// SystemPacksDir is where distribution packages install packs on Linux.
const SystemPacksDir = "/usr/share/leftysay/packs"

// ConfigDir returns the directory holding config.toml.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ConfigFile returns the config file path, honoring LEFTYSAY_CONFIG.
func ConfigFile() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return ExpandHome(p)
	}
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// CacheDir returns the render cache directory, honoring LEFTYSAY_CACHE_DIR.
func CacheDir() string {
	if p := os.Getenv(EnvCacheDir); p != "" {
		return ExpandHome(p)
	}
	return filepath.Join(xdg.CacheHome, AppName)
}

// DataDir returns the data directory, honoring LEFTYSAY_DATA_DIR.
func DataDir() string {
	if p := os.Getenv(EnvDataDir); p != "" {
		return ExpandHome(p)
	}
	return filepath.Join(xdg.DataHome, AppName)
}

// PackSearchPaths returns the directories searched for packs, in priority
// order. Earlier roots win when two packs share a name.
//
//  1. $LEFTYSAY_PACKS_DIR
//  2. <data dir>/packs
//  3. Homebrew share dirs on macOS, /usr/share/leftysay/packs on Linux
//  4. ./packs
//
// Roots that do not exist are omitted, except the first two which are
// always listed so --doctor can show where packs would be found.
func PackSearchPaths() []string {
	return packSearchPaths(runtime.GOOS, os.Getenv, exists)
}

func packSearchPaths(goos string, getenv func(string) string, exists func(string) bool) []string {
	var out []string
	if p := getenv(EnvPacksDir); p != "" {
		out = append(out, ExpandHome(p))
	}
	out = append(out, filepath.Join(DataDir(), PacksDirName))

	switch goos {
	case "darwin":
		prefixes := []string{getenv(EnvHomebrewPrefix), "/opt/homebrew", "/usr/local"}
		seen := map[string]bool{}
		for _, prefix := range prefixes {
			if prefix == "" || seen[prefix] {
				continue
			}
			seen[prefix] = true
			candidate := filepath.Join(prefix, "share", AppName, PacksDirName)
			if exists(candidate) {
				out = append(out, candidate)
			}
		}
	case "linux":
		if exists(SystemPacksDir) {
			out = append(out, SystemPacksDir)
		}
	}

	if exists(PacksDirName) {
		out = append(out, PacksDirName)
	}
	return out
}

// ChafaOverride returns the LEFTYSAY_CHAFA executable path, if set.
func ChafaOverride() string {
	return ExpandHome(os.Getenv(EnvChafa))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
