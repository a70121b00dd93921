package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "v0.3.0", "none"
	if got := Short(); got != "v0.3.0" {
		t.Errorf("Short() = %q, want v0.3.0", got)
	}

	Commit = "abc1234"
	if got := Short(); got != "v0.3.0 (abc1234)" {
		t.Errorf("Short() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if tmpl := Template(); !strings.Contains(tmpl, "{{.Name}} version") {
		t.Errorf("Template() = %q", tmpl)
	}
	if s := String(); !strings.Contains(s, "commit:") {
		t.Errorf("String() = %q", s)
	}
}
