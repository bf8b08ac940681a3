package commands

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mobile-next/adbrobot/devices"
)

type DoctorInfo struct {
	Version       string `json:"version" yaml:"version"`
	OS            string `json:"os" yaml:"os"`
	OSVersion     string `json:"os_version" yaml:"os_version"`
	AndroidHome   string `json:"android_home" yaml:"android_home"`
	ADBPath       string `json:"adb_path" yaml:"adb_path"`
	ADBVersion    string `json:"adb_version,omitempty" yaml:"adb_version,omitempty"`
	DumpFile      string `json:"dump_file" yaml:"dump_file"`
	RetryAttempts int    `json:"retry_attempts" yaml:"retry_attempts"`
	OnlineDevices int    `json:"online_devices" yaml:"online_devices"`
}

func getAndroidSdkPath() string {
	sdkPath := os.Getenv("ANDROID_HOME")
	if sdkPath != "" {
		if _, err := os.Stat(sdkPath); err == nil {
			return sdkPath
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = append(candidates, filepath.Join(homeDir, "Library", "Android", "sdk"))
	case "windows":
		candidates = append(candidates, filepath.Join(homeDir, "AppData", "Local", "Android", "Sdk"))
	default:
		candidates = append(candidates, filepath.Join(homeDir, "Android", "Sdk"))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// resolveAdbPath finds the adb executable: the configured one if it is on
// PATH or absolute, then the sdk's platform-tools.
func resolveAdbPath(configured string) string {
	if configured != "" {
		if path, err := exec.LookPath(configured); err == nil {
			return path
		}
	}

	sdkPath := getAndroidSdkPath()
	if sdkPath != "" {
		adbPath := filepath.Join(sdkPath, "platform-tools", "adb")
		if runtime.GOOS == "windows" {
			adbPath += ".exe"
		}

		if _, err := os.Stat(adbPath); err == nil {
			return adbPath
		}
	}

	return ""
}

func getAdbVersion(ctx context.Context, adbPath string) string {
	if adbPath == "" {
		return ""
	}

	result, err := devices.NewExecBridge(adbPath).Run(ctx, "version")
	if err != nil || !result.Success() {
		return ""
	}

	// only the first line carries the version
	output := string(result.Stdout)
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "Android Debug Bridge version") {
			return strings.TrimSpace(line)
		}
	}

	return strings.TrimSpace(output)
}

func getOSVersion() string {
	switch runtime.GOOS {
	case "darwin":
		output, err := exec.Command("sw_vers", "-productVersion").CombinedOutput()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(output))
	case "windows":
		output, err := exec.Command("cmd", "/c", "ver").CombinedOutput()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(output))
	case "linux":
		data, err := os.ReadFile("/etc/os-release")
		if err != nil {
			return ""
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.HasPrefix(line, "PRETTY_NAME=") {
				return strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), "\"")
			}
		}
		return ""
	default:
		return ""
	}
}

// DoctorCommand performs system diagnostics and returns information about the environment
func DoctorCommand(ctx context.Context, version string) *CommandResponse {
	s := currentSettings()

	info := DoctorInfo{
		Version:       version,
		OS:            runtime.GOOS,
		OSVersion:     getOSVersion(),
		AndroidHome:   getAndroidSdkPath(),
		ADBPath:       resolveAdbPath(s.Config.AdbPath),
		DumpFile:      s.Config.DumpFile,
		RetryAttempts: s.Config.RetryAttempts,
	}

	if info.ADBPath != "" {
		info.ADBVersion = getAdbVersion(ctx, info.ADBPath)
	}

	if list, err := devices.ListDevices(ctx, s.bridge()); err == nil {
		for _, d := range list {
			if d.Online() {
				info.OnlineDevices++
			}
		}
	}

	return NewSuccessResponse(info)
}
