package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mobile-next/adbrobot/commands"
	"github.com/mobile-next/adbrobot/utils"
	"github.com/spf13/cobra"
)

// replCommand is one line-oriented command. run receives the words after
// the command name.
type replCommand struct {
	usage string
	run   func(ctx context.Context, serial string, args []string) *commands.CommandResponse
}

func errorf(format string, args ...interface{}) *commands.CommandResponse {
	return commands.NewErrorResponse(fmt.Errorf(format, args...))
}

func atoiArgs(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d integers, got %d arguments", n, len(args))
	}

	values := make([]int, n)
	for i, arg := range args {
		value, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid integer '%s'", arg)
		}
		values[i] = value
	}
	return values, nil
}

var replCommands = map[string]replCommand{
	"size": {
		usage: "size",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			return commands.ScreenSizeCommand(ctx, commands.ScreenRequest{DeviceID: serial})
		},
	},
	"screen": {
		usage: "screen on|off|status",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			if len(args) != 1 {
				return errorf("usage: screen on|off|status")
			}
			switch args[0] {
			case "on", "off":
				return commands.ScreenPowerCommand(ctx, commands.ScreenPowerRequest{DeviceID: serial, On: args[0] == "on"})
			case "status":
				return commands.ScreenStatusCommand(ctx, commands.ScreenRequest{DeviceID: serial})
			}
			return errorf("unknown screen action '%s'", args[0])
		},
	},
	"tap": {
		usage: "tap X Y",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			coords, err := atoiArgs(args, 2)
			if err != nil {
				return commands.NewErrorResponse(err)
			}
			return commands.TapCommand(ctx, commands.TapRequest{DeviceID: serial, X: coords[0], Y: coords[1]})
		},
	},
	"swipe": {
		usage: "swipe up|down|X1 Y1 X2 Y2",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			if len(args) == 1 {
				return commands.SwipeCommand(ctx, commands.SwipeRequest{DeviceID: serial, Direction: args[0]})
			}
			coords, err := atoiArgs(args, 4)
			if err != nil {
				return commands.NewErrorResponse(err)
			}
			return commands.SwipeCommand(ctx, commands.SwipeRequest{
				DeviceID: serial,
				X1:       coords[0],
				Y1:       coords[1],
				X2:       coords[2],
				Y2:       coords[3],
			})
		},
	},
	"key": {
		usage: "key NAME",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			if len(args) != 1 {
				return errorf("usage: key NAME")
			}
			return commands.KeyCommand(ctx, commands.KeyRequest{DeviceID: serial, Key: args[0]})
		},
	},
	"home": {
		usage: "home",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			return commands.ForceHomeCommand(ctx, commands.ForceHomeRequest{DeviceID: serial})
		},
	},
	"text": {
		usage: "text TEXT...",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			return commands.TextCommand(ctx, commands.TextRequest{DeviceID: serial, Text: strings.Join(args, " ")})
		},
	},
	"dump": {
		usage: "dump [raw]",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			raw := len(args) == 1 && args[0] == "raw"
			return commands.DumpUICommand(ctx, commands.DumpUIRequest{DeviceID: serial, Raw: raw})
		},
	},
	"find": {
		usage: "find ATTRIBUTE VALUE...",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			if len(args) < 2 {
				return errorf("usage: find ATTRIBUTE VALUE...")
			}
			return commands.FindNodeCommand(ctx, commands.NodeRequest{DeviceID: serial, Attribute: args[0], Value: strings.Join(args[1:], " ")})
		},
	},
	"click": {
		usage: "click ATTRIBUTE VALUE...",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			if len(args) < 2 {
				return errorf("usage: click ATTRIBUTE VALUE...")
			}
			return commands.ClickNodeCommand(ctx, commands.NodeRequest{DeviceID: serial, Attribute: args[0], Value: strings.Join(args[1:], " ")})
		},
	},
	"bounds": {
		usage: "bounds [X1,Y1][X2,Y2]",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			if len(args) != 1 {
				return errorf("usage: bounds [X1,Y1][X2,Y2]")
			}
			return commands.ClickBoundsCommand(ctx, commands.ClickBoundsRequest{DeviceID: serial, Bounds: args[0]})
		},
	},
	"launch": {
		usage: "launch PACKAGE",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			if len(args) != 1 {
				return errorf("usage: launch PACKAGE")
			}
			return commands.LaunchAppCommand(ctx, commands.AppRequest{DeviceID: serial, PackageName: args[0]})
		},
	},
	"installed": {
		usage: "installed PACKAGE",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			if len(args) != 1 {
				return errorf("usage: installed PACKAGE")
			}
			return commands.AppInstalledCommand(ctx, commands.AppRequest{DeviceID: serial, PackageName: args[0]})
		},
	},
	"activity": {
		usage: "activity",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			return commands.ActivityTopCommand(ctx, commands.ActivityTopRequest{DeviceID: serial})
		},
	},
	"clip": {
		usage: "clip [TEXT...]",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			if len(args) == 0 {
				return commands.ClipboardGetCommand(ctx, commands.ClipboardRequest{DeviceID: serial})
			}
			return commands.ClipboardSetCommand(ctx, commands.ClipboardRequest{DeviceID: serial, Text: strings.Join(args, " ")})
		},
	},
	"shell": {
		usage: "shell COMMAND...",
		run: func(ctx context.Context, serial string, args []string) *commands.CommandResponse {
			return commands.ShellCommand(ctx, commands.ShellRequest{DeviceID: serial, Command: strings.Join(args, " ")})
		},
	},
}

func printReplHelp(w io.Writer) {
	names := make([]string, 0, len(replCommands))
	for name := range replCommands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Commands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", replCommands[name].usage)
	}
	fmt.Fprintln(w, "  help")
	fmt.Fprintln(w, "  exit")
}

// runReplLine executes one input line. It returns false when the session
// should end.
func runReplLine(w io.Writer, serial, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	name := strings.ToLower(fields[0])
	switch name {
	case "exit", "quit":
		return false
	case "help", "?":
		printReplHelp(w)
		return true
	}

	command, exists := replCommands[name]
	if !exists {
		fmt.Fprintf(w, "unknown command '%s', type 'help' for a list\n", name)
		return true
	}

	ctx, cancel := commandContext()
	defer cancel()

	// error responses are already printed
	_ = writeResponse(w, command.run(ctx, serial, fields[1:]))
	return true
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive device session",
	Long:  `Opens an interactive prompt bound to one device. Type 'help' for the available commands.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		robot, err := commands.FindRobot(ctx, deviceId)
		cancel()
		if err != nil {
			return printResponse(commands.NewErrorResponse(fmt.Errorf("error finding device: %v", err)))
		}

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          robot.Serial() + "> ",
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return fmt.Errorf("failed to create readline: %w", err)
		}
		defer rl.Close()

		// keep log lines from tearing the prompt
		utils.Logger().SetOutput(rl.Stderr())

		printReplHelp(rl.Stdout())

		for {
			line, err := rl.Readline()
			if err == readline.ErrInterrupt {
				continue
			}
			if err != nil {
				return nil
			}

			if !runReplLine(rl.Stdout(), robot.Serial(), line) {
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
