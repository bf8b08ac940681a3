package cli

import (
	"context"
	"strings"

	"github.com/mobile-next/adbrobot/commands"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell [command...]",
	Short: "Run a shell command on the device",
	Long:  `Runs a command with "adb shell" and prints its exit code, stdout and stderr separately.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ShellCommand(ctx, commands.ShellRequest{
				DeviceID: deviceId,
				Command:  strings.Join(args, " "),
			})
		})
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Activity manager queries",
}

var activityTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Dump the foreground activity",
	Long:  `Prints the raw "dumpsys activity top" output.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ActivityTopCommand(ctx, commands.ActivityTopRequest{DeviceID: deviceId})
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(activityCmd)

	activityCmd.AddCommand(activityTopCmd)
}
