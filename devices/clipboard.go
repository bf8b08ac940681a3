package devices

import (
	"context"
	"regexp"
)

// ClipperPackage is the Clipper app (github.com/majido/clipper) that
// exposes the device clipboard over broadcasts.
const ClipperPackage = "ca.zgrs.clipper"

const clipperInstallHint = "please install first: adb install -r apks/clipper1.2.1.apk"

var clipperDataPattern = regexp.MustCompile(`data="([\s\S]*?)"`)

// EnsureClipboard checks that Clipper is installed and starts it.
func (r *Robot) EnsureClipboard(ctx context.Context) error {
	installed, err := r.IsAppInstalled(ctx, ClipperPackage)
	if err != nil {
		return err
	}

	if !installed {
		return &MissingDependencyError{Package: ClipperPackage, Hint: clipperInstallHint}
	}

	return r.RunApp(ctx, ClipperPackage)
}

// ClipboardText reads the clipboard through Clipper. The first data="..."
// in the broadcast reply is used and the text may span several lines. When
// the reply has no data the problem is logged and an empty string is returned.
func (r *Robot) ClipboardText(ctx context.Context) (string, error) {
	reply, err := r.ShellText(ctx, "am broadcast -a clipper.get")
	if err != nil {
		return "", err
	}

	matches := clipperDataPattern.FindStringSubmatch(reply)
	if matches == nil {
		r.log.Error("failed to read clipboard text, make sure the clipper app is running")
		return "", nil
	}

	return matches[1], nil
}

// SetClipboardText writes text to the clipboard through Clipper. Empty text
// clears it.
func (r *Robot) SetClipboardText(ctx context.Context, text string) error {
	arg := "''"
	if text != "" {
		arg = escapeShellText(text)
	}

	_, err := r.Shell(ctx, "am broadcast -a clipper.set -e text "+arg)
	return err
}
