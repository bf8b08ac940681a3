package cli

import (
	"context"

	"github.com/mobile-next/adbrobot/commands"
	"github.com/spf13/cobra"
)

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Read and write the device clipboard",
	Long:  `Clipboard access goes through the Clipper app (ca.zgrs.clipper), which must be installed on the device.`,
}

var clipboardGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the clipboard text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ClipboardGetCommand(ctx, commands.ClipboardRequest{DeviceID: deviceId})
		})
	},
}

var clipboardSetCmd = &cobra.Command{
	Use:   "set [text]",
	Short: "Replace the clipboard text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ClipboardSetCommand(ctx, commands.ClipboardRequest{
				DeviceID: deviceId,
				Text:     args[0],
			})
		})
	},
}

var clipboardEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Check that Clipper is installed and start it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ClipboardEnsureCommand(ctx, commands.ClipboardRequest{DeviceID: deviceId})
		})
	},
}

func init() {
	rootCmd.AddCommand(clipboardCmd)

	clipboardCmd.AddCommand(clipboardGetCmd)
	clipboardCmd.AddCommand(clipboardSetCmd)
	clipboardCmd.AddCommand(clipboardEnsureCmd)
}
