package cli

import (
	"context"

	"github.com/mobile-next/adbrobot/commands"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected devices",
	Long:  `List the Android devices and emulators adb can see. Offline and unauthorized devices are shown with --all.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.DevicesCommand(ctx, showAllDevices)
		})
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)

	devicesCmd.Flags().BoolVar(&showAllDevices, "all", false, "show all devices including offline ones")
}
