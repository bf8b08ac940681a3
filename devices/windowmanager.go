package devices

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

var windowSizePattern = regexp.MustCompile(`(\d+)x(\d+)`)

// ShellFunc runs a command and returns its text output.
type ShellFunc func(ctx context.Context, cmd string) (string, error)

// WindowManager wraps the `wm` service. The size is read once when the
// manager is created and is not refreshed on rotation.
type WindowManager struct {
	shell  ShellFunc
	width  int
	height int
}

// NewWindowManager creates a window manager that sends `wm` subcommands
// through shell and snapshots the current size.
func NewWindowManager(ctx context.Context, shell ShellFunc) (*WindowManager, error) {
	wm := &WindowManager{shell: shell}

	width, height, err := wm.GetSize(ctx)
	if err != nil {
		return nil, err
	}

	wm.width = width
	wm.height = height
	return wm, nil
}

// Width is the display width captured at construction.
func (wm *WindowManager) Width() int {
	return wm.width
}

// Height is the display height captured at construction.
func (wm *WindowManager) Height() int {
	return wm.height
}

// GetSize queries the device for its current display size.
func (wm *WindowManager) GetSize(ctx context.Context) (int, int, error) {
	output, err := wm.shell(ctx, "size")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query window size: %w", err)
	}

	return parseWindowSize(output)
}

// SetSize overrides the display size. The result is not verified.
func (wm *WindowManager) SetSize(ctx context.Context, width, height int) error {
	_, err := wm.shell(ctx, fmt.Sprintf("size %dx%d", width, height))
	return err
}

// ResetSize restores the physical display size.
func (wm *WindowManager) ResetSize(ctx context.Context) error {
	_, err := wm.shell(ctx, "size reset")
	return err
}

func parseWindowSize(output string) (int, int, error) {
	matches := windowSizePattern.FindStringSubmatch(output)
	if matches == nil {
		return 0, 0, &GeometryParseError{Output: output}
	}

	width, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, &GeometryParseError{Output: output}
	}

	height, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, &GeometryParseError{Output: output}
	}

	return width, height, nil
}
