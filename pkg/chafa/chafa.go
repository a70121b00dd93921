package chafa

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/leftysay/pkg/block"
	"github.com/matzehuels/leftysay/pkg/errors"
	"github.com/matzehuels/leftysay/pkg/term"
)

// DefaultTimeout bounds a single chafa invocation.
const DefaultTimeout = 10 * time.Second

// waitDelay caps how long Render waits for output pipes after chafa is killed.
const waitDelay = time.Second

// Binary is the executable name looked up on PATH.
const Binary = "chafa"

// Options configures the chafa subprocess.
type Options struct {
	// Path is an explicit executable path. Empty means look up "chafa" on PATH.
	Path string
	// Timeout bounds each invocation. Zero means DefaultTimeout.
	Timeout time.Duration
	Logger  *log.Logger
}

// Chafa renders images by running the chafa executable.
type Chafa struct {
	opts Options
}

// New creates a Chafa renderer. The executable is located lazily on each call
// so a missing binary surfaces as RENDER_UNAVAILABLE from Render.
func New(opts Options) *Chafa {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Chafa{opts: opts}
}

// Locate returns the executable that would be run.
func (c *Chafa) Locate() (string, error) {
	if c.opts.Path != "" {
		path, err := exec.LookPath(c.opts.Path)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeRenderUnavailable, err,
				"chafa override %q is not executable", c.opts.Path)
		}
		return path, nil
	}
	path, err := exec.LookPath(Binary)
	if err != nil {
		return "", errors.New(errors.ErrCodeRenderUnavailable,
			"chafa not found on PATH; %s", InstallHint(runtime.GOOS))
	}
	return path, nil
}

// Args builds the chafa argument list for req.
func Args(req Request) []string {
	args := []string{
		"--format", string(req.Format),
		"--colors", string(req.Colors),
		"--size", req.Cells.String(),
		"--animate", "off",
	}
	if req.Passthrough != term.MultiplexerNone {
		args = append(args, "--passthrough", string(req.Passthrough))
	}
	return append(args, req.ImagePath)
}

// Render runs chafa once for req. It never retries.
func (c *Chafa) Render(ctx context.Context, req Request) (block.Block, error) {
	path, err := c.Locate()
	if err != nil {
		return block.Block{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	args := Args(req)
	c.opts.Logger.Debug("running chafa", "path", path, "args", args)

	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		return block.Block{}, errors.New(errors.ErrCodeRenderFailed,
			"chafa timed out after %s", c.opts.Timeout)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return block.Block{}, ctxErr
		}
		return block.Block{}, errors.Wrap(errors.ErrCodeRenderFailed, err,
			"chafa failed%s", stderrSuffix(stderr.Bytes()))
	}
	if len(bytes.TrimSpace(stdout.Bytes())) == 0 {
		return block.Block{}, errors.New(errors.ErrCodeRenderFailed,
			"chafa produced no output%s", stderrSuffix(stderr.Bytes()))
	}

	out := block.FromOutput(stdout.Bytes()).Clip(req.Cells.Height)
	c.opts.Logger.Debug("chafa finished", "lines", out.Height, "bytes", stdout.Len(), "duration", elapsed)
	return out, nil
}

// AnimateArgs builds the argument list for playing an animation for d.
func AnimateArgs(req Request, d time.Duration) []string {
	args := Args(req)
	for i := range args {
		if args[i] == "--animate" {
			args[i+1] = "on"
			break
		}
	}
	secs := strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
	return append(args[:len(args)-1], "--duration", secs, req.ImagePath)
}

// Play runs chafa with animation on, writing straight to out for d.
// The timeout does not apply; d bounds the run, and ctx can stop it early.
func (c *Chafa) Play(ctx context.Context, req Request, d time.Duration, out io.Writer) error {
	path, err := c.Locate()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, d+waitDelay)
	defer cancel()

	args := AnimateArgs(req, d)
	c.opts.Logger.Debug("playing animation", "path", path, "args", args)

	cmd := exec.CommandContext(ctx, path, args...)
	var stderr bytes.Buffer
	cmd.Stdout = out
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err = cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.Wrap(errors.ErrCodeRenderFailed, err,
			"chafa animation failed%s", stderrSuffix(stderr.Bytes()))
	}
	return nil
}

// Version returns the first line of `chafa --version`.
func (c *Chafa) Version(ctx context.Context) (string, error) {
	path, err := c.Locate()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRenderFailed, err, "chafa --version failed")
	}
	line, _, _ := bufio.NewReader(bytes.NewReader(out)).ReadLine()
	return strings.TrimSpace(string(line)), nil
}

// InstallHint returns platform-specific install instructions for chafa.
func InstallHint(goos string) string {
	switch goos {
	case "darwin":
		return "install with: brew install chafa"
	case "linux":
		return "install with: sudo apt install chafa (Debian/Ubuntu) or sudo pacman -S chafa (Arch)"
	default:
		return "see https://hpjansson.org/chafa/download/ for install options"
	}
}

func stderrSuffix(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return ""
	}
	return ": " + msg
}
