package cli

import (
	"context"

	"github.com/mobile-next/adbrobot/commands"
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Manage applications on devices",
	Long:  `Check for and launch applications on the device.`,
}

var appsInstalledCmd = &cobra.Command{
	Use:   "installed [package]",
	Short: "Check whether a package is installed",
	Long:  `Greps the package list for the given name. This is a substring match, so "com.example" also matches "com.example.extra".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.AppInstalledCommand(ctx, commands.AppRequest{
				DeviceID:    deviceId,
				PackageName: args[0],
			})
		})
	},
}

var appsLaunchCmd = &cobra.Command{
	Use:   "launch [package]",
	Short: "Launch an app on a device",
	Long:  `Launches the launcher activity of the given package (e.g., "com.android.settings").`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.LaunchAppCommand(ctx, commands.AppRequest{
				DeviceID:    deviceId,
				PackageName: args[0],
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(appsCmd)

	appsCmd.AddCommand(appsInstalledCmd)
	appsCmd.AddCommand(appsLaunchCmd)
}
