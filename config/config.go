// Package config loads session profiles for adbrobot.
//
// A profile is an optional INI file:
//
//	[device]
//	serial = emulator-5554
//	adb = /opt/android/platform-tools/adb
//	dump_file = /sdcard/wechat_dump.xml
//
//	[retry]
//	attempts = 3
//	delay = 500ms
//
// Values given on the command line override the profile.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mobile-next/adbrobot/devices"
	"gopkg.in/ini.v1"
)

// EnvVar names the profile file when --config is not given.
const EnvVar = "ADBROBOT_CONFIG"

const defaultFileName = ".adbrobot.ini"

// Config is one automation session's settings.
type Config struct {
	Serial        string
	AdbPath       string
	DumpFile      string
	RetryAttempts int
	RetryDelay    time.Duration
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		AdbPath:       devices.DefaultAdbPath,
		DumpFile:      devices.DefaultDumpFile,
		RetryAttempts: devices.DefaultDumpAttempts,
	}
}

// DefaultPath returns the profile location: $ADBROBOT_CONFIG, or
// ~/.adbrobot.ini.
func DefaultPath() string {
	if path := os.Getenv(EnvVar); path != "" {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homeDir, defaultFileName)
}

// Load reads the profile at path on top of Default. A missing file is not
// an error when required is false.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	device := file.Section("device")
	cfg.Serial = device.Key("serial").MustString(cfg.Serial)
	cfg.AdbPath = device.Key("adb").MustString(cfg.AdbPath)
	cfg.DumpFile = device.Key("dump_file").MustString(cfg.DumpFile)

	retry := file.Section("retry")
	if retry.HasKey("attempts") {
		attempts, err := retry.Key("attempts").Int()
		if err != nil || attempts < 1 {
			return cfg, fmt.Errorf("invalid retry attempts in %s: %q", path, retry.Key("attempts").String())
		}
		cfg.RetryAttempts = attempts
	}

	if retry.HasKey("delay") {
		delay, err := retry.Key("delay").Duration()
		if err != nil {
			return cfg, fmt.Errorf("invalid retry delay in %s: %w", path, err)
		}
		cfg.RetryDelay = delay
	}

	return cfg, nil
}

// RetryPolicy returns the ui dump retry policy for these settings.
func (c Config) RetryPolicy() devices.RetryPolicy {
	return devices.RetryPolicy{
		MaxAttempts: c.RetryAttempts,
		Delay:       c.RetryDelay,
	}
}

// RobotOptions turns the settings into device session options.
func (c Config) RobotOptions() []devices.Option {
	return []devices.Option{
		devices.WithAdbPath(c.AdbPath),
		devices.WithDumpFile(c.DumpFile),
		devices.WithRetryPolicy(c.RetryPolicy()),
	}
}
