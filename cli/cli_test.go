package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/mobile-next/adbrobot/commands"
	"github.com/mobile-next/adbrobot/config"
	"github.com/mobile-next/adbrobot/devices"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdb struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeAdb) Run(ctx context.Context, args ...string) (devices.ShellResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(args) == 1 && args[0] == "devices" {
		return devices.ShellResult{Stdout: []byte("List of devices attached\nemulator-5554\tdevice\n")}, nil
	}

	cmd := args[len(args)-1]
	f.calls = append(f.calls, cmd)
	if cmd == "wm size" {
		return devices.ShellResult{Stdout: []byte("Physical size: 1080x1920\n")}, nil
	}
	return devices.ShellResult{}, nil
}

func useFakeAdb(t *testing.T) *fakeAdb {
	t.Helper()

	adb := &fakeAdb{}
	logger, _ := test.NewNullLogger()
	commands.Configure(commands.Settings{Config: config.Default(), Logger: logger, Bridge: adb})
	t.Cleanup(func() {
		commands.Configure(commands.Settings{Config: config.Default()})
	})
	return adb
}

func TestParseCoordinates(t *testing.T) {
	coords, err := parseCoordinates("10, 20", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, coords)

	coords, err = parseCoordinates("1,2,3,4", 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, coords)

	_, err = parseCoordinates("10", 2)
	assert.Error(t, err)

	_, err = parseCoordinates("a,b", 2)
	assert.Error(t, err)
}

func TestParseSize(t *testing.T) {
	width, height, err := parseSize("720x1280")
	require.NoError(t, err)
	assert.Equal(t, 720, width)
	assert.Equal(t, 1280, height)

	width, height, err = parseSize("1080X1920")
	require.NoError(t, err)
	assert.Equal(t, 1080, width)
	assert.Equal(t, 1920, height)

	_, _, err = parseSize("720")
	assert.Error(t, err)

	_, _, err = parseSize("wide x tall")
	assert.Error(t, err)
}

func TestFormatResponse(t *testing.T) {
	response := commands.NewSuccessResponse(map[string]interface{}{"message": "hi"})

	data, err := formatResponse(response, "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"message":"hi"}}`, string(data))

	data, err = formatResponse(response, "yaml")
	require.NoError(t, err)
	assert.Equal(t, "status: ok\ndata:\n    message: hi", string(data))
}

func TestWriteResponse_Error(t *testing.T) {
	outputFormat = "json"

	var buf bytes.Buffer
	err := writeResponse(&buf, commands.NewErrorResponse(assert.AnError))
	require.Error(t, err)
	assert.Equal(t, assert.AnError.Error(), err.Error())
	assert.Contains(t, buf.String(), `"status": "error"`)
}

func TestInitConfig_RejectsUnknownOutput(t *testing.T) {
	outputFormat = "xml"
	t.Cleanup(func() { outputFormat = "json" })

	err := initConfig(rootCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestRunReplLine(t *testing.T) {
	adb := useFakeAdb(t)
	outputFormat = "json"

	var buf bytes.Buffer
	assert.True(t, runReplLine(&buf, "emulator-5554", ""))
	assert.True(t, runReplLine(&buf, "emulator-5554", "tap 10 20"))
	assert.True(t, runReplLine(&buf, "emulator-5554", "swipe down"))
	assert.True(t, runReplLine(&buf, "emulator-5554", "text hello world"))
	assert.False(t, runReplLine(&buf, "emulator-5554", "exit"))

	assert.Equal(t, []string{
		"wm size",
		"input tap 10 20",
		"input swipe 540 480 540 1440",
		`input text hello\ world`,
	}, adb.calls)
}

func TestRunReplLine_HelpAndUnknown(t *testing.T) {
	useFakeAdb(t)

	var buf bytes.Buffer
	assert.True(t, runReplLine(&buf, "emulator-5554", "help"))
	assert.Contains(t, buf.String(), "tap X Y")
	assert.Contains(t, buf.String(), "swipe up|down|X1 Y1 X2 Y2")

	buf.Reset()
	assert.True(t, runReplLine(&buf, "emulator-5554", "fly away"))
	assert.True(t, strings.HasPrefix(buf.String(), "unknown command 'fly'"))

	buf.Reset()
	assert.True(t, runReplLine(&buf, "emulator-5554", "tap ten 20"))
	assert.Contains(t, buf.String(), "invalid integer 'ten'")
}
