package devices

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

const testSerial = "emulator-5554"

// scriptedBridge answers shell commands from a table and records every call.
type scriptedBridge struct {
	mu        sync.Mutex
	responses map[string]ShellResult
	calls     []string
}

func newScriptedBridge() *scriptedBridge {
	return &scriptedBridge{
		responses: map[string]ShellResult{
			"wm size": {Stdout: []byte("Physical size: 1080x1920\n")},
		},
	}
}

func (b *scriptedBridge) on(cmd, stdout string) *scriptedBridge {
	b.responses[cmd] = ShellResult{Stdout: []byte(stdout)}
	return b
}

func (b *scriptedBridge) onStderr(cmd, stderr string) *scriptedBridge {
	b.responses[cmd] = ShellResult{Stderr: []byte(stderr), ExitCode: 1}
	return b
}

func (b *scriptedBridge) Run(ctx context.Context, args ...string) (ShellResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(args) != 4 || args[0] != "-s" || args[2] != "shell" {
		return ShellResult{}, fmt.Errorf("unexpected adb arguments: %v", args)
	}

	cmd := args[3]
	b.calls = append(b.calls, cmd)
	return b.responses[cmd], nil
}

func (b *scriptedBridge) commands() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// commandsWithPrefix drops the construction-time `wm size` query and
// anything else not starting with prefix.
func (b *scriptedBridge) commandsWithPrefix(prefix string) []string {
	var out []string
	for _, cmd := range b.commands() {
		if strings.HasPrefix(cmd, prefix) {
			out = append(out, cmd)
		}
	}
	return out
}

// mockBridge is a testify mock keyed on the full adb argument list.
type mockBridge struct {
	mock.Mock
}

func (m *mockBridge) Run(ctx context.Context, args ...string) (ShellResult, error) {
	ret := m.Called(args)
	return ret.Get(0).(ShellResult), ret.Error(1)
}

func shellArgs(cmd string) []string {
	return []string{"-s", testSerial, "shell", cmd}
}

func newTestLogger() (*logrus.Entry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(logger), hook
}
