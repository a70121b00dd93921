package errors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePackName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "default", false},
		{"valid with dash", "lefty-cats", false},
		{"valid with dot", "cats.v2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"path traversal", "..", true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "cat.png")
	if err := os.WriteFile(img, []byte("fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"existing file", img, ""},
		{"empty", "", ErrCodeInvalidPath},
		{"missing", filepath.Join(dir, "missing.png"), ErrCodeFileNotFound},
		{"directory", dir, ErrCodeInvalidPath},
		{"control char", "cat\x01.png", ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateImagePath(%q) code = %q, want %q (err=%v)", tt.input, got, tt.wantCode, err)
			}
		})
	}
}

func TestValidateMaxHeightRatio(t *testing.T) {
	tests := []struct {
		ratio   float64
		wantErr bool
	}{
		{0.55, false},
		{1, false},
		{0.01, false},
		{0, true},
		{-0.5, true},
		{1.01, true},
	}

	for _, tt := range tests {
		err := ValidateMaxHeightRatio(tt.ratio)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateMaxHeightRatio(%v) error = %v, wantErr %v", tt.ratio, err, tt.wantErr)
		}
	}
}

func TestValidateRedisURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"redis://localhost:6379/0", false},
		{"rediss://cache.internal:6380", false},
		{"unix:///tmp/redis.sock", false},
		{"", true},
		{"http://localhost", true},
		{"localhost:6379", true},
	}

	for _, tt := range tests {
		err := ValidateRedisURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRedisURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"cat.png", true},
		{"cat.PNG", true},
		{"cat.jpeg", true},
		{"cat.gif", true},
		{"cat.txt", false},
		{"cat", false},
	}

	for _, tt := range tests {
		if got := IsSupportedImage(tt.path); got != tt.want {
			t.Errorf("IsSupportedImage(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
