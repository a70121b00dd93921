package chafa

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/leftysay/pkg/errors"
	"github.com/matzehuels/leftysay/pkg/term"
)

// fakeChafa writes an executable shell script standing in for chafa.
func fakeChafa(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "chafa")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake chafa: %v", err)
	}
	return path
}

func testRequest() Request {
	return Request{
		ImagePath: "/tmp/lefty.png",
		Format:    term.Symbols,
		Colors:    term.Colors256,
		Cells:     Cells{Width: 40, Height: 3},
	}
}

func TestArgs(t *testing.T) {
	got := Args(testRequest())
	want := []string{"--format", "symbols", "--colors", "256", "--size", "40x3", "--animate", "off", "/tmp/lefty.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args = %q, want %q", got, want)
	}

	req := testRequest()
	req.Format = term.Kitty
	req.Passthrough = term.MultiplexerTmux
	got = Args(req)
	want = []string{"--format", "kitty", "--colors", "256", "--size", "40x3", "--animate", "off", "--passthrough", "tmux", "/tmp/lefty.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args with passthrough = %q, want %q", got, want)
	}
}

func TestRenderCapturesOutput(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	path := fakeChafa(t, `echo "$@" > `+argsFile+`
printf 'line1\nline2\n'`)

	c := New(Options{Path: path})
	b, err := c.Render(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !reflect.DeepEqual(b.Lines, []string{"line1", "line2"}) {
		t.Errorf("Lines = %q", b.Lines)
	}
	if b.Width != 5 || b.Height != 2 {
		t.Errorf("size = %dx%d, want 5x2", b.Width, b.Height)
	}

	recorded, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	if !strings.Contains(string(recorded), "--size 40x3 --animate off") {
		t.Errorf("chafa args = %q", recorded)
	}
}

func TestRenderClipsToHeight(t *testing.T) {
	path := fakeChafa(t, `printf 'a\nb\nc\nd\ne\n'`)
	b, err := New(Options{Path: path}).Render(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.Height != 3 {
		t.Errorf("Height = %d, want 3", b.Height)
	}
}

func TestRenderFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		timeout time.Duration
		wantMsg string
	}{
		{"non-zero exit", `echo "cannot load image" >&2; exit 2`, 0, "cannot load image"},
		{"empty output", `exit 0`, 0, "no output"},
		{"timeout", `exec sleep 5`, 100 * time.Millisecond, "timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := fakeChafa(t, tt.body)
			_, err := New(Options{Path: path, Timeout: tt.timeout}).Render(context.Background(), testRequest())
			if !errors.Is(err, errors.ErrCodeRenderFailed) {
				t.Fatalf("error = %v, want RENDER_FAILED", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestRenderUnavailable(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := New(Options{}).Render(context.Background(), testRequest())
	if !errors.Is(err, errors.ErrCodeRenderUnavailable) {
		t.Fatalf("error = %v, want RENDER_UNAVAILABLE", err)
	}
	if !strings.Contains(errors.UserMessage(err), "install") {
		t.Errorf("message %q has no install hint", errors.UserMessage(err))
	}

	_, err = New(Options{Path: filepath.Join(t.TempDir(), "missing")}).Render(context.Background(), testRequest())
	if !errors.Is(err, errors.ErrCodeRenderUnavailable) {
		t.Fatalf("override error = %v, want RENDER_UNAVAILABLE", err)
	}
}

func TestVersion(t *testing.T) {
	path := fakeChafa(t, `printf 'Chafa version 1.14.0\n\nLoaders: ...\n'`)
	v, err := New(Options{Path: path}).Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != "Chafa version 1.14.0" {
		t.Errorf("Version = %q", v)
	}
}

func TestInstallHint(t *testing.T) {
	for goos, want := range map[string]string{"darwin": "brew", "linux": "apt", "plan9": "hpjansson.org"} {
		if got := InstallHint(goos); !strings.Contains(got, want) {
			t.Errorf("InstallHint(%q) = %q, want mention of %q", goos, got, want)
		}
	}
}

func TestAnimateArgs(t *testing.T) {
	got := AnimateArgs(testRequest(), 1500*time.Millisecond)
	want := []string{"--format", "symbols", "--colors", "256", "--size", "40x3", "--animate", "on", "--duration", "1.5", "/tmp/lefty.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AnimateArgs = %q, want %q", got, want)
	}
}

func TestPlay(t *testing.T) {
	t.Run("streams output", func(t *testing.T) {
		path := fakeChafa(t, `printf 'frame\n'`)
		var out strings.Builder
		if err := New(Options{Path: path}).Play(context.Background(), testRequest(), time.Second, &out); err != nil {
			t.Fatalf("Play: %v", err)
		}
		if out.String() != "frame\n" {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("duration elapses", func(t *testing.T) {
		path := fakeChafa(t, `exec sleep 5`)
		var out strings.Builder
		start := time.Now()
		err := New(Options{Path: path}).Play(context.Background(), testRequest(), 100*time.Millisecond, &out)
		if err != nil {
			t.Fatalf("Play should end quietly when the duration is up, got %v", err)
		}
		if time.Since(start) > 4*time.Second {
			t.Error("Play did not stop after its duration")
		}
	})

	t.Run("failure", func(t *testing.T) {
		path := fakeChafa(t, `echo "bad gif" >&2; exit 2`)
		var out strings.Builder
		err := New(Options{Path: path}).Play(context.Background(), testRequest(), time.Second, &out)
		if !errors.Is(err, errors.ErrCodeRenderFailed) {
			t.Fatalf("err = %v, want RENDER_FAILED", err)
		}
	})
}
