package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mobile-next/adbrobot/commands"
	"github.com/spf13/cobra"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Display and screen power commands",
	Long:  `Read or override the display size and turn the screen on or off.`,
}

var screenSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Print the display size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ScreenSizeCommand(ctx, commands.ScreenRequest{DeviceID: deviceId})
		})
	},
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(arg string) (int, int, error) {
	parts := strings.Split(strings.ToLower(arg), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size '%s', expected WIDTHxHEIGHT", arg)
	}

	width, errW := strconv.Atoi(parts[0])
	height, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("invalid size '%s', width and height must be integers", arg)
	}

	return width, height, nil
}

var screenSetSizeCmd = &cobra.Command{
	Use:   "set-size [WIDTHxHEIGHT]",
	Short: "Override the display size",
	Long:  `Overrides the display size with "wm size", e.g. "adbrobot screen set-size 720x1280".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, height, err := parseSize(args[0])
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ScreenSetSizeCommand(ctx, commands.ScreenSetSizeRequest{
				DeviceID: deviceId,
				Width:    width,
				Height:   height,
			})
		})
	},
}

var screenResetSizeCmd = &cobra.Command{
	Use:   "reset-size",
	Short: "Restore the physical display size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ScreenSetSizeCommand(ctx, commands.ScreenSetSizeRequest{
				DeviceID: deviceId,
				Reset:    true,
			})
		})
	},
}

func screenPowerCmd(on bool) *cobra.Command {
	state := "off"
	if on {
		state = "on"
	}

	return &cobra.Command{
		Use:   state,
		Short: fmt.Sprintf("Turn the screen %s", state),
		Long:  fmt.Sprintf(`Presses power only if the screen is not already %s.`, state),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(func(ctx context.Context) *commands.CommandResponse {
				return commands.ScreenPowerCommand(ctx, commands.ScreenPowerRequest{
					DeviceID: deviceId,
					On:       on,
				})
			})
		},
	}
}

var screenStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the screen is on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ScreenStatusCommand(ctx, commands.ScreenRequest{DeviceID: deviceId})
		})
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.AddCommand(screenSizeCmd)
	screenCmd.AddCommand(screenSetSizeCmd)
	screenCmd.AddCommand(screenResetSizeCmd)
	screenCmd.AddCommand(screenPowerCmd(true))
	screenCmd.AddCommand(screenPowerCmd(false))
	screenCmd.AddCommand(screenStatusCmd)
}
