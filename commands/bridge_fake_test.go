package commands

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/mobile-next/adbrobot/config"
	"github.com/mobile-next/adbrobot/devices"
	"github.com/sirupsen/logrus/hooks/test"
)

const testSerial = "emulator-5554"

// fakeAdb answers `adb devices` and per-device shell commands from tables.
type fakeAdb struct {
	mu      sync.Mutex
	devices string
	shell   map[string]string
	calls   []string
}

func newFakeAdb() *fakeAdb {
	return &fakeAdb{
		devices: "List of devices attached\n" + testSerial + "\tdevice\n",
		shell: map[string]string{
			"wm size": "Physical size: 1080x1920\n",
		},
	}
}

func (f *fakeAdb) Run(ctx context.Context, args ...string) (devices.ShellResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(args) == 1 && args[0] == "devices" {
		return devices.ShellResult{Stdout: []byte(f.devices)}, nil
	}

	cmd := strings.Join(args, " ")
	if len(args) == 4 && args[2] == "shell" {
		cmd = args[3]
	}
	f.calls = append(f.calls, cmd)
	return devices.ShellResult{Stdout: []byte(f.shell[cmd])}, nil
}

func (f *fakeAdb) on(cmd, stdout string) *fakeAdb {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shell[cmd] = stdout
	return f
}

func (f *fakeAdb) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// useFakeAdb installs adb for the duration of the test.
func useFakeAdb(t *testing.T, adb *fakeAdb) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	Configure(Settings{Config: config.Default(), Logger: logger, Bridge: adb})
	t.Cleanup(func() {
		Configure(Settings{Config: config.Default()})
	})
}
