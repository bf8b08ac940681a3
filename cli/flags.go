package cli

import "time"

var (
	verbose bool

	// global session flags
	deviceId     string
	adbPath      string
	dumpFile     string
	retries      int
	configFile   string
	outputFormat string
	timeout      time.Duration

	// for devices command
	showAllDevices bool

	// for dump ui command
	dumpRaw bool
)
