package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mobile-next/adbrobot/commands"
	"github.com/spf13/cobra"
)

// parseCoordinates parses "x,y" style arguments into n integers.
func parseCoordinates(arg string, n int) ([]int, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("invalid coordinate format. Expected %d comma-separated values, got '%s'", n, arg)
	}

	values := make([]int, n)
	for i, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate value '%s', coordinates must be integers", part)
		}
		values[i] = value
	}

	return values, nil
}

var tapCmd = &cobra.Command{
	Use:   "tap [x,y]",
	Short: "Tap on the device screen at the given coordinates",
	Long:  `Sends a tap event at the given x,y coordinates. Coordinates should be provided as a single string "x,y".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		coords, err := parseCoordinates(args[0], 2)
		if err != nil {
			return printResponse(commands.NewErrorResponse(err))
		}

		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.TapCommand(ctx, commands.TapRequest{
				DeviceID: deviceId,
				X:        coords[0],
				Y:        coords[1],
			})
		})
	},
}

var keyCmd = &cobra.Command{
	Use:   "key [name]",
	Short: "Press a key on the device",
	Long:  `Sends a key event. Supported names: home, back, enter, power, menu, volume_up, volume_down, del, app_switch, paste. Names are case-insensitive.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.KeyCommand(ctx, commands.KeyRequest{
				DeviceID: deviceId,
				Key:      args[0],
			})
		})
	},
}

var forceHomeCmd = &cobra.Command{
	Use:   "force-home",
	Short: "Return to the home screen",
	Long:  `Presses home, back three times and home again to leave whatever app is in front.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.ForceHomeCommand(ctx, commands.ForceHomeRequest{DeviceID: deviceId})
		})
	},
}

var textCmd = &cobra.Command{
	Use:   "text [text]",
	Short: "Send text input to the device",
	Long:  `Types text into the focused field. Non-ascii text is pasted through the Clipper clipboard app.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.TextCommand(ctx, commands.TextRequest{
				DeviceID: deviceId,
				Text:     args[0],
			})
		})
	},
}

var swipeCmd = &cobra.Command{
	Use:   "swipe [up|down|x1,y1,x2,y2]",
	Short: "Swipe on the device screen",
	Long:  `Swipes half a screen up or down along the horizontal center, or between two points given as a single string "x1,y1,x2,y2".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.SwipeRequest{DeviceID: deviceId}

		switch args[0] {
		case "up", "down":
			req.Direction = args[0]
		default:
			coords, err := parseCoordinates(args[0], 4)
			if err != nil {
				return printResponse(commands.NewErrorResponse(err))
			}
			req.X1, req.Y1, req.X2, req.Y2 = coords[0], coords[1], coords[2], coords[3]
		}

		return runCommand(func(ctx context.Context) *commands.CommandResponse {
			return commands.SwipeCommand(ctx, req)
		})
	},
}

func init() {
	rootCmd.AddCommand(tapCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(forceHomeCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(swipeCmd)
}
