package cli

import (
	"context"

	"github.com/mobile-next/adbrobot/commands"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump operations with devices",
	Long:  `Perform dump operations like UI tree extraction from devices.`,
}

var dumpUICmd = &cobra.Command{
	Use:   "ui",
	Short: "Dump the UI tree of the current screen",
	Long:  `Runs uiautomator and prints the visible elements, or the raw XML with --raw. Failed dumps are retried.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.DumpUICommand(ctx, commands.DumpUIRequest{
				DeviceID: deviceId,
				Raw:      dumpRaw,
			})
		})
	},
}

var findCmd = &cobra.Command{
	Use:   "find [attribute] [value]",
	Short: "Find a UI node by attribute",
	Long:  `Dumps the screen and prints the bounds of the first node whose attribute equals value, e.g. "adbrobot find text WLAN".`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.FindNodeCommand(ctx, commands.NodeRequest{
				DeviceID:  deviceId,
				Attribute: args[0],
				Value:     args[1],
			})
		})
	},
}

var clickCmd = &cobra.Command{
	Use:   "click [attribute] [value]",
	Short: "Tap a UI node by attribute",
	Long:  `Dumps the screen and taps the center of the first node whose attribute equals value.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ClickNodeCommand(ctx, commands.NodeRequest{
				DeviceID:  deviceId,
				Attribute: args[0],
				Value:     args[1],
			})
		})
	},
}

var clickBoundsCmd = &cobra.Command{
	Use:   "click-bounds [bounds]",
	Short: "Tap the center of a bounds descriptor",
	Long:  `Taps the center of a uiautomator bounds descriptor such as "[42,1023][126,1080]".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ClickBoundsCommand(ctx, commands.ClickBoundsRequest{
				DeviceID: deviceId,
				Bounds:   args[0],
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(clickCmd)
	rootCmd.AddCommand(clickBoundsCmd)

	dumpCmd.AddCommand(dumpUICmd)

	dumpUICmd.Flags().BoolVar(&dumpRaw, "raw", false, "print the raw uiautomator XML")
}
