package devices

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultDumpFile is where uiautomator writes its dump on the device.
const DefaultDumpFile = "/sdcard/wechat_dump.xml"

const launcherCategory = "android.intent.category.LAUNCHER"

var keyMap = map[string]string{
	"home":        "3",
	"back":        "4",
	"volume_up":   "24",
	"volume_down": "25",
	"power":       "26",
	"enter":       "66",
	"del":         "67",
	"backspace":   "67",
	"menu":        "82",
	"app_switch":  "187",
	"paste":       "279",
}

// Robot drives a single Android device through adb. Every device
// interaction goes through Shell.
type Robot struct {
	serial   string
	adbPath  string
	dumpFile string
	retry    RetryPolicy
	bridge   Bridge
	log      *logrus.Entry
	wm       *WindowManager
}

// Option configures a Robot.
type Option func(*Robot)

// WithAdbPath sets the adb executable used by the default bridge.
func WithAdbPath(path string) Option {
	return func(r *Robot) {
		if path != "" {
			r.adbPath = path
		}
	}
}

// WithDumpFile sets the on-device scratch file for ui dumps.
func WithDumpFile(path string) Option {
	return func(r *Robot) {
		if path != "" {
			r.dumpFile = path
		}
	}
}

// WithRetryPolicy sets how ui dumps are retried.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(r *Robot) {
		r.retry = policy
	}
}

// WithBridge replaces the adb executable with another Bridge.
func WithBridge(bridge Bridge) Option {
	return func(r *Robot) {
		r.bridge = bridge
	}
}

// WithLogger sets the logger for this session.
func WithLogger(log *logrus.Entry) Option {
	return func(r *Robot) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRobot connects to the device with the given serial and reads its
// display size.
func NewRobot(ctx context.Context, serial string, opts ...Option) (*Robot, error) {
	r := &Robot{
		serial:   serial,
		adbPath:  DefaultAdbPath,
		dumpFile: DefaultDumpFile,
		retry:    DefaultRetryPolicy(),
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.bridge == nil {
		r.bridge = NewExecBridge(r.adbPath)
	}
	r.log = r.log.WithField("serial", serial)

	wm, err := NewWindowManager(ctx, r.wmShell)
	if err != nil {
		return nil, fmt.Errorf("failed to read display size of %s: %w", serial, err)
	}
	r.wm = wm

	return r, nil
}

func (r *Robot) Serial() string {
	return r.serial
}

func (r *Robot) DumpFile() string {
	return r.dumpFile
}

func (r *Robot) WindowManager() *WindowManager {
	return r.wm
}

// DeviceType guesses the device kind from its serial.
func (r *Robot) DeviceType() string {
	return deviceTypeFromSerial(r.serial)
}

// Shell runs cmd on the device. An empty command returns an empty result
// without invoking adb.
func (r *Robot) Shell(ctx context.Context, cmd string) (ShellResult, error) {
	if cmd == "" {
		return ShellResult{}, nil
	}

	r.log.Debugf("running shell: %s", cmd)
	result, err := r.bridge.Run(ctx, "-s", r.serial, "shell", cmd)
	if err != nil {
		return result, fmt.Errorf("shell %q failed: %w", cmd, err)
	}

	if result.ExitCode != 0 {
		r.log.WithField("exit_code", result.ExitCode).Debugf("shell exited with non-zero status: %s", cmd)
	}

	return result, nil
}

// ShellText runs cmd and returns stderr if it is non-empty, stdout otherwise.
func (r *Robot) ShellText(ctx context.Context, cmd string) (string, error) {
	output, err := r.ShellBytes(ctx, cmd)
	return string(output), err
}

// ShellBytes is ShellText without decoding.
func (r *Robot) ShellBytes(ctx context.Context, cmd string) ([]byte, error) {
	result, err := r.Shell(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return result.Output(), nil
}

func (r *Robot) wmShell(ctx context.Context, cmd string) (string, error) {
	return r.ShellText(ctx, "wm "+cmd)
}

// IsAppInstalled greps the package list for name. This is a substring
// match, so "com.example" also matches "com.example.extra".
func (r *Robot) IsAppInstalled(ctx context.Context, name string) (bool, error) {
	output, err := r.ShellText(ctx, fmt.Sprintf("pm list packages | grep %s", name))
	if err != nil {
		return false, err
	}
	return len(output) > 0, nil
}

// RunApp launches the app's launcher activity with monkey.
func (r *Robot) RunApp(ctx context.Context, name string) error {
	_, err := r.Shell(ctx, fmt.Sprintf("monkey -p %s -c %s 1", name, launcherCategory))
	return err
}

// IsScreenOn checks the input method dump for either of the flags that
// different Android versions use to report an interactive screen.
func (r *Robot) IsScreenOn(ctx context.Context) (bool, error) {
	interactive, err := r.ShellText(ctx, "dumpsys input_method | grep mInteractive=true")
	if err != nil {
		return false, err
	}

	screenOn, err := r.ShellText(ctx, "dumpsys input_method | grep mScreenOn=true")
	if err != nil {
		return false, err
	}

	return interactive != "" || screenOn != "", nil
}

func (r *Robot) ScreenOn(ctx context.Context) error {
	return r.setScreen(ctx, true)
}

func (r *Robot) ScreenOff(ctx context.Context) error {
	return r.setScreen(ctx, false)
}

func (r *Robot) setScreen(ctx context.Context, on bool) error {
	current, err := r.IsScreenOn(ctx)
	if err != nil {
		return err
	}

	if current == on {
		return nil
	}

	return r.PressKey(ctx, "power")
}

// PressKey sends a named key event.
func (r *Robot) PressKey(ctx context.Context, key string) error {
	keycode, exists := keyMap[strings.ToLower(key)]
	if !exists {
		return fmt.Errorf("unsupported key: %s", key)
	}

	_, err := r.Shell(ctx, "input keyevent "+keycode)
	return err
}

func (r *Robot) GoHome(ctx context.Context) error {
	return r.PressKey(ctx, "home")
}

func (r *Robot) GoBack(ctx context.Context) error {
	return r.PressKey(ctx, "back")
}

func (r *Robot) Enter(ctx context.Context) error {
	return r.PressKey(ctx, "enter")
}

// ForceHome tries to get back to a known state: home, back three times,
// home again. Nothing checks that it worked.
func (r *Robot) ForceHome(ctx context.Context) error {
	if err := r.GoHome(ctx); err != nil {
		return err
	}

	for i := 0; i < 3; i++ {
		if err := r.GoBack(ctx); err != nil {
			return err
		}
	}

	return r.GoHome(ctx)
}

// Tap simulates a tap at (x, y).
func (r *Robot) Tap(ctx context.Context, x, y int) error {
	_, err := r.Shell(ctx, fmt.Sprintf("input tap %d %d", x, y))
	return err
}

// Swipe drags from (x1, y1) to (x2, y2).
func (r *Robot) Swipe(ctx context.Context, x1, y1, x2, y2 int) error {
	_, err := r.Shell(ctx, fmt.Sprintf("input swipe %d %d %d %d", x1, y1, x2, y2))
	return err
}

// SwipeDown scrolls half a screen by dragging from the upper quarter to the
// lower quarter along the horizontal center.
func (r *Robot) SwipeDown(ctx context.Context) error {
	w, h := r.wm.Width(), r.wm.Height()
	return r.Swipe(ctx, w/2, h/4, w/2, h/4*3)
}

// SwipeUp is the reverse of SwipeDown.
func (r *Robot) SwipeUp(ctx context.Context) error {
	w, h := r.wm.Width(), r.wm.Height()
	return r.Swipe(ctx, w/2, h/4*3, w/2, h/4)
}

// InputText types text into the focused field. `input text` only handles
// ascii, anything else is pasted through the clipboard helper.
func (r *Robot) InputText(ctx context.Context, text string) error {
	if isAscii(text) {
		_, err := r.Shell(ctx, "input text "+escapeShellText(text))
		return err
	}

	if err := r.SetClipboardText(ctx, text); err != nil {
		return err
	}

	return r.PressKey(ctx, "paste")
}

// UIDump dumps the current screen and parses it, retrying according to
// the robot's retry policy.
func (r *Robot) UIDump(ctx context.Context) (*UITree, error) {
	return r.uiDump(ctx, r.retry)
}

// UIDumpWithRetries is UIDump with an explicit attempt count.
func (r *Robot) UIDumpWithRetries(ctx context.Context, attempts int) (*UITree, error) {
	policy := r.retry
	policy.MaxAttempts = attempts
	return r.uiDump(ctx, policy)
}

func (r *Robot) uiDump(ctx context.Context, policy RetryPolicy) (*UITree, error) {
	var tree *UITree

	err := policy.Do(ctx, func(attempt int) error {
		if _, err := r.Shell(ctx, "uiautomator dump "+r.dumpFile); err != nil {
			return err
		}

		dump, err := r.ShellBytes(ctx, "cat "+r.dumpFile)
		if err != nil {
			return err
		}
		r.log.Debugf("ui dump: %s", dump)

		tree, err = ParseUITree(dump)
		return err
	}, func(attempt int, err error) {
		r.log.WithError(err).Warnf("ui dump attempt %d/%d failed", attempt, policy.attempts())
	})

	if err != nil {
		return nil, err
	}
	return tree, nil
}

// ActivityTop returns the raw `dumpsys activity top` output.
func (r *Robot) ActivityTop(ctx context.Context) (string, error) {
	return r.ShellText(ctx, "dumpsys activity top")
}

// NodeBounds finds the bounds of the first node whose attrName equals
// attrValue, dumping the screen when tree is nil.
func (r *Robot) NodeBounds(ctx context.Context, attrName, attrValue string, tree *UITree) (string, bool, error) {
	if tree == nil {
		var err error
		tree, err = r.UIDump(ctx)
		if err != nil {
			return "", false, err
		}
	}

	return tree.NodeBounds(attrName, attrValue)
}

// PointsInBounds parses "[x1,y1][x2,y2]".
func (r *Robot) PointsInBounds(bounds string) (Bounds, error) {
	return ParseBounds(bounds)
}

// ClickBounds taps the center of bounds.
func (r *Robot) ClickBounds(ctx context.Context, bounds string) error {
	b, err := ParseBounds(bounds)
	if err != nil {
		return err
	}

	x, y := b.Center()
	return r.Tap(ctx, x, y)
}

// ClickNode dumps the screen and taps the first node whose attrName equals
// attrValue. It returns false when no such node is on screen.
func (r *Robot) ClickNode(ctx context.Context, attrName, attrValue string) (bool, error) {
	bounds, found, err := r.NodeBounds(ctx, attrName, attrValue, nil)
	if err != nil || !found {
		return false, err
	}

	if err := r.ClickBounds(ctx, bounds); err != nil {
		return false, err
	}

	return true, nil
}

func isAscii(text string) bool {
	for _, c := range text {
		if c > 127 {
			return false
		}
	}
	return true
}

const shellSpecialChars = "\\'\"`;|&()<>$*?![]{}#~ "

func escapeShellText(text string) string {
	var b strings.Builder
	for _, c := range text {
		if strings.ContainsRune(shellSpecialChars, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
