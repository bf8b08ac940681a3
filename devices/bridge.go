package devices

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DefaultAdbPath is used when no adb executable is configured.
const DefaultAdbPath = "adb"

// ShellResult holds everything a single adb invocation produced.
type ShellResult struct {
	ExitCode int    `json:"exitCode" yaml:"exitCode"`
	Stdout   []byte `json:"stdout" yaml:"stdout"`
	Stderr   []byte `json:"stderr" yaml:"stderr"`
}

// Output returns stderr when it is non-empty and stdout otherwise.
// Commands whose diagnostics land on stderr cannot be told apart from
// failures this way; inspect ExitCode and the raw fields when it matters.
func (r ShellResult) Output() []byte {
	if len(r.Stderr) != 0 {
		return r.Stderr
	}
	return r.Stdout
}

// Success reports a zero exit status with nothing written to stderr.
func (r ShellResult) Success() bool {
	return r.ExitCode == 0 && len(r.Stderr) == 0
}

// Bridge runs the device bridge executable with the given arguments.
type Bridge interface {
	Run(ctx context.Context, args ...string) (ShellResult, error)
}

// ExecBridge runs a local adb binary.
type ExecBridge struct {
	Path string
}

// NewExecBridge returns a bridge for the adb executable at path, or the
// one found on PATH when path is empty.
func NewExecBridge(path string) *ExecBridge {
	return &ExecBridge{Path: path}
}

func (b *ExecBridge) path() string {
	if b.Path == "" {
		return DefaultAdbPath
	}
	return b.Path
}

// Run executes adb and captures stdout and stderr separately. A non-zero
// exit status is reported in ShellResult.ExitCode, not as an error.
func (b *ExecBridge) Run(ctx context.Context, args ...string) (ShellResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, b.path(), args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ShellResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}

		return result, fmt.Errorf("failed to run %s: %w", b.path(), err)
	}

	return result, nil
}
