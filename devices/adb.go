package devices

import (
	"context"
	"fmt"
	"strings"

	"github.com/mobile-next/adbrobot/types"
)

func deviceTypeFromSerial(serial string) string {
	if strings.HasPrefix(serial, "emulator-") {
		return "emulator"
	}
	return "real"
}

func parseAdbDevicesOutput(output string) []types.DeviceInfo {
	var devices []types.DeviceInfo

	lines := strings.Split(output, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		devices = append(devices, types.DeviceInfo{
			Serial: parts[0],
			State:  parts[1],
			Type:   deviceTypeFromSerial(parts[0]),
		})
	}

	return devices
}

// ListDevices returns every device adb knows about, online or not.
func ListDevices(ctx context.Context, bridge Bridge) ([]types.DeviceInfo, error) {
	result, err := bridge.Run(ctx, "devices")
	if err != nil {
		return nil, fmt.Errorf("failed to run 'adb devices': %w", err)
	}

	if result.ExitCode != 0 {
		return nil, fmt.Errorf("'adb devices' exited with status %d: %s", result.ExitCode, strings.TrimSpace(string(result.Stderr)))
	}

	return parseAdbDevicesOutput(string(result.Stdout)), nil
}
