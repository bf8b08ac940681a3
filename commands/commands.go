package commands

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mobile-next/adbrobot/config"
	"github.com/mobile-next/adbrobot/devices"
	"github.com/mobile-next/adbrobot/types"
	"github.com/mobile-next/adbrobot/utils"
	"github.com/sirupsen/logrus"
)

// robotCacheSize bounds how many device sessions stay open at once.
const robotCacheSize = 16

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status" yaml:"status"`
	Data   interface{} `json:"data,omitempty" yaml:"data,omitempty"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

func messageResponse(format string, args ...interface{}) *CommandResponse {
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf(format, args...),
	})
}

// Settings is what every device session is created with.
type Settings struct {
	Config config.Config
	Logger *logrus.Logger
	// Bridge replaces the adb executable named in Config, mostly for tests.
	Bridge devices.Bridge
}

var (
	settingsMu sync.RWMutex
	settings   = Settings{Config: config.Default()}
	robotCache = newRobotCache()
)

func newRobotCache() *lru.Cache[string, *devices.Robot] {
	cache, err := lru.New[string, *devices.Robot](robotCacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return cache
}

// Configure replaces the session settings and drops cached sessions.
// Call it once at startup, before running commands.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	settings = s
	robotCache.Purge()
}

func currentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func (s Settings) bridge() devices.Bridge {
	if s.Bridge != nil {
		return s.Bridge
	}
	return devices.NewExecBridge(s.Config.AdbPath)
}

func (s Settings) logger() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.Logger()
}

func (s Settings) robotOptions() []devices.Option {
	opts := s.Config.RobotOptions()
	return append(opts,
		devices.WithBridge(s.bridge()),
		devices.WithLogger(logrus.NewEntry(s.logger())),
	)
}

// FindRobot returns the session for serial, creating it on first use. An
// empty serial falls back to the configured one, then to the only online
// device.
func FindRobot(ctx context.Context, serial string) (*devices.Robot, error) {
	s := currentSettings()

	if serial == "" {
		serial = s.Config.Serial
	}

	if serial == "" {
		selected, err := autoSelectSerial(ctx, s)
		if err != nil {
			return nil, err
		}
		serial = selected
	}

	if robot, exists := robotCache.Get(serial); exists {
		return robot, nil
	}

	robot, err := devices.NewRobot(ctx, serial, s.robotOptions()...)
	if err != nil {
		return nil, err
	}

	robotCache.Add(serial, robot)
	return robot, nil
}

func autoSelectSerial(ctx context.Context, s Settings) (string, error) {
	all, err := devices.ListDevices(ctx, s.bridge())
	if err != nil {
		return "", fmt.Errorf("error getting devices: %w", err)
	}

	var online []types.DeviceInfo
	for _, d := range all {
		if d.Online() {
			online = append(online, d)
		}
	}

	if len(online) == 0 {
		return "", fmt.Errorf("no online devices found")
	}

	if len(online) > 1 {
		return "", fmt.Errorf("multiple devices found (%d), please specify --device with one of: %s", len(online), getDeviceIDList(online))
	}

	return online[0].Serial, nil
}

// getDeviceIDList returns a comma-separated list of device IDs for error messages
func getDeviceIDList(list []types.DeviceInfo) string {
	var ids []string
	for _, d := range list {
		ids = append(ids, d.Serial)
	}
	return fmt.Sprintf("[%s]", strings.Join(ids, ", "))
}
