package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/mobile-next/adbrobot/config"
	"github.com/mobile-next/adbrobot/devices"
	"github.com/mobile-next/adbrobot/types"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsDump = `<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>
<hierarchy rotation="0">
  <node index="0" text="Settings" resource-id="android:id/title" class="android.widget.TextView" package="com.android.settings" content-desc="" clickable="false" bounds="[50,100][500,150]" />
  <node index="1" text="WLAN" resource-id="android:id/title" class="android.widget.TextView" package="com.android.settings" content-desc="" clickable="true" bounds="[42,1023][126,1080]" />
</hierarchy>`

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"k": "v"})
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]string{"k": "v"}, resp.Data)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(errors.New("boom"))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "boom", resp.Error)
	assert.Nil(t, resp.Data)
}

func TestFindRobot_AutoSelectsSingleDevice(t *testing.T) {
	useFakeAdb(t, newFakeAdb())

	robot, err := FindRobot(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, testSerial, robot.Serial())
	assert.Equal(t, 1080, robot.WindowManager().Width())
}

func TestFindRobot_CachesSessions(t *testing.T) {
	adb := newFakeAdb()
	useFakeAdb(t, adb)

	first, err := FindRobot(context.Background(), testSerial)
	require.NoError(t, err)
	second, err := FindRobot(context.Background(), testSerial)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []string{"wm size"}, adb.commands())
}

func TestFindRobot_UsesConfiguredSerial(t *testing.T) {
	adb := newFakeAdb()
	adb.devices = "List of devices attached\n"
	logger, _ := test.NewNullLogger()

	cfg := config.Default()
	cfg.Serial = "0123456789ABCDEF"
	Configure(Settings{Config: cfg, Logger: logger, Bridge: adb})
	t.Cleanup(func() { Configure(Settings{Config: config.Default()}) })

	robot, err := FindRobot(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "0123456789ABCDEF", robot.Serial())
	assert.Equal(t, "real", robot.DeviceType())
}

func TestFindRobot_NoDevices(t *testing.T) {
	adb := newFakeAdb()
	adb.devices = "List of devices attached\nemulator-5556\toffline\n"
	useFakeAdb(t, adb)

	_, err := FindRobot(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no online devices found")
}

func TestFindRobot_MultipleDevices(t *testing.T) {
	adb := newFakeAdb()
	adb.devices = "List of devices attached\nemulator-5554\tdevice\nemulator-5556\tdevice\n"
	useFakeAdb(t, adb)

	_, err := FindRobot(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple devices found (2)")
	assert.Contains(t, err.Error(), "[emulator-5554, emulator-5556]")
}

func TestDevicesCommand(t *testing.T) {
	adb := newFakeAdb()
	adb.devices = "List of devices attached\nemulator-5554\tdevice\nR58M123\tunauthorized\n"
	useFakeAdb(t, adb)

	resp := DevicesCommand(context.Background(), false)
	require.Equal(t, "ok", resp.Status)
	list := resp.Data.(map[string]interface{})["devices"].([]types.DeviceInfo)
	require.Len(t, list, 1)
	assert.Equal(t, "emulator-5554", list[0].Serial)
	assert.Equal(t, "emulator", list[0].Type)

	resp = DevicesCommand(context.Background(), true)
	list = resp.Data.(map[string]interface{})["devices"].([]types.DeviceInfo)
	require.Len(t, list, 2)
	assert.Equal(t, "unauthorized", list[1].State)
}

func TestShellCommand(t *testing.T) {
	useFakeAdb(t, newFakeAdb().on("getprop ro.product.model", "Pixel 7\n"))

	resp := ShellCommand(context.Background(), ShellRequest{Command: "getprop ro.product.model"})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Equal(t, ShellResponse{Stdout: "Pixel 7\n"}, resp.Data)

	resp = ShellCommand(context.Background(), ShellRequest{})
	assert.Equal(t, "error", resp.Status)
}

func TestScreenCommands(t *testing.T) {
	adb := newFakeAdb().on("dumpsys input_method | grep mScreenOn=true", "  mScreenOn=true\n")
	useFakeAdb(t, adb)
	ctx := context.Background()

	resp := ScreenSizeCommand(ctx, ScreenRequest{})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Equal(t, types.Size{Width: 1080, Height: 1920}, resp.Data)

	resp = ScreenStatusCommand(ctx, ScreenRequest{})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Equal(t, true, resp.Data.(map[string]interface{})["screenOn"])

	resp = ScreenPowerCommand(ctx, ScreenPowerRequest{On: true})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.NotContains(t, adb.commands(), "input keyevent 26")

	resp = ScreenPowerCommand(ctx, ScreenPowerRequest{On: false})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Contains(t, adb.commands(), "input keyevent 26")
}

func TestScreenSetSizeCommand(t *testing.T) {
	adb := newFakeAdb()
	useFakeAdb(t, adb)
	ctx := context.Background()

	resp := ScreenSetSizeCommand(ctx, ScreenSetSizeRequest{Width: 720, Height: 1280})
	require.Equal(t, "ok", resp.Status, resp.Error)

	resp = ScreenSetSizeCommand(ctx, ScreenSetSizeRequest{Reset: true})
	require.Equal(t, "ok", resp.Status, resp.Error)

	resp = ScreenSetSizeCommand(ctx, ScreenSetSizeRequest{Width: 0, Height: 1280})
	assert.Equal(t, "error", resp.Status)

	assert.Contains(t, adb.commands(), "wm size 720x1280")
	assert.Contains(t, adb.commands(), "wm size reset")
}

func TestInputCommands(t *testing.T) {
	adb := newFakeAdb()
	useFakeAdb(t, adb)
	ctx := context.Background()

	require.Equal(t, "ok", TapCommand(ctx, TapRequest{X: 10, Y: 20}).Status)
	require.Equal(t, "ok", KeyCommand(ctx, KeyRequest{Key: "BACK"}).Status)
	require.Equal(t, "ok", TextCommand(ctx, TextRequest{Text: "hi there"}).Status)
	require.Equal(t, "ok", SwipeCommand(ctx, SwipeRequest{Direction: "down"}).Status)
	require.Equal(t, "ok", SwipeCommand(ctx, SwipeRequest{X1: 1, Y1: 2, X2: 3, Y2: 4}).Status)

	assert.Equal(t, []string{
		"wm size",
		"input tap 10 20",
		"input keyevent 4",
		`input text hi\ there`,
		"input swipe 540 480 540 1440",
		"input swipe 1 2 3 4",
	}, adb.commands())
}

func TestInputCommands_Validation(t *testing.T) {
	useFakeAdb(t, newFakeAdb())
	ctx := context.Background()

	assert.Equal(t, "error", TapCommand(ctx, TapRequest{X: -1, Y: 0}).Status)
	assert.Equal(t, "error", KeyCommand(ctx, KeyRequest{}).Status)
	assert.Equal(t, "error", TextCommand(ctx, TextRequest{}).Status)
	assert.Equal(t, "error", SwipeCommand(ctx, SwipeRequest{Direction: "left"}).Status)

	resp := KeyCommand(ctx, KeyRequest{Key: "camera"})
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "unsupported key: camera")
}

func TestForceHomeCommand(t *testing.T) {
	adb := newFakeAdb()
	useFakeAdb(t, adb)

	resp := ForceHomeCommand(context.Background(), ForceHomeRequest{})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Equal(t, []string{
		"wm size",
		"input keyevent 3",
		"input keyevent 4",
		"input keyevent 4",
		"input keyevent 4",
		"input keyevent 3",
	}, adb.commands())
}

func withSettingsDump(adb *fakeAdb) *fakeAdb {
	return adb.on("cat "+devices.DefaultDumpFile, settingsDump)
}

func TestDumpUICommand(t *testing.T) {
	useFakeAdb(t, withSettingsDump(newFakeAdb()))
	ctx := context.Background()

	resp := DumpUICommand(ctx, DumpUIRequest{})
	require.Equal(t, "ok", resp.Status, resp.Error)
	elements := resp.Data.(DumpUIResponse).Elements
	require.Len(t, elements, 2)
	assert.Equal(t, "Settings", *elements[0].Text)

	resp = DumpUICommand(ctx, DumpUIRequest{Raw: true})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Equal(t, settingsDump, resp.Data.(DumpUIResponse).XML)
}

func TestDumpUICommand_InvalidDump(t *testing.T) {
	useFakeAdb(t, newFakeAdb().on("cat "+devices.DefaultDumpFile, "ERROR: could not get idle state."))

	resp := DumpUICommand(context.Background(), DumpUIRequest{Retries: 1})
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "failed to dump UI")
}

func TestFindNodeCommand(t *testing.T) {
	useFakeAdb(t, withSettingsDump(newFakeAdb()))
	ctx := context.Background()

	resp := FindNodeCommand(ctx, NodeRequest{Attribute: "text", Value: "WLAN"})
	require.Equal(t, "ok", resp.Status, resp.Error)
	node := resp.Data.(NodeResponse)
	assert.True(t, node.Found)
	assert.Equal(t, "[42,1023][126,1080]", node.Bounds)
	require.NotNil(t, node.Points)
	assert.Equal(t, devices.Bounds{X1: 42, Y1: 1023, X2: 126, Y2: 1080}, *node.Points)

	resp = FindNodeCommand(ctx, NodeRequest{Attribute: "text", Value: "Bluetooth"})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.False(t, resp.Data.(NodeResponse).Found)

	resp = FindNodeCommand(ctx, NodeRequest{Value: "WLAN"})
	assert.Equal(t, "error", resp.Status)
}

func TestClickNodeCommand(t *testing.T) {
	adb := withSettingsDump(newFakeAdb())
	useFakeAdb(t, adb)
	ctx := context.Background()

	resp := ClickNodeCommand(ctx, NodeRequest{Attribute: "text", Value: "WLAN"})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Contains(t, adb.commands(), "input tap 84 1051")

	resp = ClickNodeCommand(ctx, NodeRequest{Attribute: "text", Value: "Bluetooth"})
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "no node with text=\"Bluetooth\"")
}

func TestClickBoundsCommand(t *testing.T) {
	adb := newFakeAdb()
	useFakeAdb(t, adb)
	ctx := context.Background()

	resp := ClickBoundsCommand(ctx, ClickBoundsRequest{Bounds: "[0,0][101,51]"})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Contains(t, adb.commands(), "input tap 50 25")

	resp = ClickBoundsCommand(ctx, ClickBoundsRequest{Bounds: "0,0,10,10"})
	assert.Equal(t, "error", resp.Status)
}

func TestAppCommands(t *testing.T) {
	adb := newFakeAdb().on("pm list packages | grep com.android.settings", "package:com.android.settings\n")
	useFakeAdb(t, adb)
	ctx := context.Background()

	resp := AppInstalledCommand(ctx, AppRequest{PackageName: "com.android.settings"})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Equal(t, true, resp.Data.(map[string]interface{})["installed"])

	resp = AppInstalledCommand(ctx, AppRequest{PackageName: "com.example.missing"})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Equal(t, false, resp.Data.(map[string]interface{})["installed"])

	resp = LaunchAppCommand(ctx, AppRequest{PackageName: "com.android.settings"})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Contains(t, adb.commands(), "monkey -p com.android.settings -c android.intent.category.LAUNCHER 1")

	assert.Equal(t, "error", LaunchAppCommand(ctx, AppRequest{}).Status)
}

func TestClipboardCommands(t *testing.T) {
	adb := newFakeAdb().
		on("am broadcast -a clipper.get", "Broadcasting: Intent { act=clipper.get }\nBroadcast completed: result=-1, data=\"hello\"\n")
	useFakeAdb(t, adb)
	ctx := context.Background()

	resp := ClipboardGetCommand(ctx, ClipboardRequest{})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Equal(t, "hello", resp.Data.(map[string]interface{})["text"])

	resp = ClipboardSetCommand(ctx, ClipboardRequest{Text: "a b"})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Contains(t, adb.commands(), `am broadcast -a clipper.set -e text a\ b`)

	resp = ClipboardEnsureCommand(ctx, ClipboardRequest{})
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, devices.ClipperPackage)
}

func TestActivityTopCommand(t *testing.T) {
	useFakeAdb(t, newFakeAdb().on("dumpsys activity top", "TASK com.android.settings id=12\n"))

	resp := ActivityTopCommand(context.Background(), ActivityTopRequest{})
	require.Equal(t, "ok", resp.Status, resp.Error)
	assert.Equal(t, "TASK com.android.settings id=12\n", resp.Data.(map[string]interface{})["output"])
}

func TestDoctorCommand(t *testing.T) {
	useFakeAdb(t, newFakeAdb())

	resp := DoctorCommand(context.Background(), "1.2.3")
	require.Equal(t, "ok", resp.Status)
	info := resp.Data.(DoctorInfo)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, 1, info.OnlineDevices)
	assert.Equal(t, devices.DefaultDumpFile, info.DumpFile)
	assert.Equal(t, devices.DefaultDumpAttempts, info.RetryAttempts)
}
