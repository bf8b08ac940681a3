package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mobile-next/adbrobot/commands"
	"github.com/mobile-next/adbrobot/config"
	"github.com/mobile-next/adbrobot/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "adbrobot",
	Short: "Drive an Android device over adb",
	Long:  `Automate an Android device through adb: read and resize the display, tap, swipe, type, dump and search the UI tree, and run a JSON-RPC server exposing the same operations.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

func GetVersion() string {
	return version
}

// initConfig loads the profile and lets explicitly set flags override it.
func initConfig(cmd *cobra.Command, args []string) error {
	utils.SetVerbose(verbose)

	if outputFormat != "json" && outputFormat != "yaml" {
		return fmt.Errorf("unsupported output format '%s', expected json or yaml", outputFormat)
	}

	path := configFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path, configFile != "")
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("device") {
		cfg.Serial = deviceId
	}
	if flags.Changed("adb") {
		cfg.AdbPath = adbPath
	}
	if flags.Changed("dump-file") {
		cfg.DumpFile = dumpFile
	}
	if flags.Changed("retries") {
		if retries < 1 {
			return fmt.Errorf("--retries must be at least 1, got %d", retries)
		}
		cfg.RetryAttempts = retries
	}

	utils.Verbose("using adb %s, dump file %s, %d dump attempts", cfg.AdbPath, cfg.DumpFile, cfg.RetryAttempts)

	commands.Configure(commands.Settings{
		Config: cfg,
		Logger: utils.Logger(),
	})

	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&deviceId, "device", "", "serial of the device to control (default: the only online device)")
	flags.StringVar(&adbPath, "adb", "", "path to the adb executable (default: adb)")
	flags.StringVar(&dumpFile, "dump-file", "", "on-device scratch file for ui dumps")
	flags.IntVar(&retries, "retries", 0, "ui dump attempts before giving up")
	flags.StringVar(&configFile, "config", "", fmt.Sprintf("profile to load (default: $%s or ~/.adbrobot.ini)", config.EnvVar))
	flags.StringVarP(&outputFormat, "output", "o", "json", "output format: json or yaml")
	flags.DurationVar(&timeout, "timeout", 0, "give up on device calls after this long (default: no limit)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// commandContext bounds a single command by --timeout.
func commandContext() (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// printResponse writes a command response in the selected format and turns
// an error response into a command error.
func printResponse(response *commands.CommandResponse) error {
	return writeResponse(os.Stdout, response)
}

func writeResponse(w io.Writer, response *commands.CommandResponse) error {
	data, err := formatResponse(response, outputFormat)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, string(data))

	if response.Status == "error" {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}

func formatResponse(response *commands.CommandResponse, format string) ([]byte, error) {
	if format == "yaml" {
		data, err := yaml.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		// yaml.Marshal always ends with a newline
		return data[:len(data)-1], nil
	}

	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return data, nil
}

// runCommand is the shared RunE body: bound the context, run, print.
func runCommand(fn func(ctx context.Context) *commands.CommandResponse) error {
	ctx, cancel := commandContext()
	defer cancel()

	return printResponse(fn(ctx))
}
