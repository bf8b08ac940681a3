package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mobile-next/adbrobot/commands"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(ctx context.Context, params json.RawMessage) (interface{}, error)

// commandHandler adapts a command into a handler: required fields are
// checked, params decoded into the request, and an error response turned
// into an error.
func commandHandler[T any](required []string, run func(context.Context, T) *commands.CommandResponse) HandlerFunc {
	return func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		if err := requireParams(params, required...); err != nil {
			return nil, err
		}

		var req T
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}

		return responseResult(run(ctx, req))
	}
}

func responseResult(response *commands.CommandResponse) (interface{}, error) {
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

type devicesParams struct {
	All *bool `json:"all"`
}

// handleDevicesList shows all devices unless "all" is false.
func handleDevicesList(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p devicesParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	showAll := p.All == nil || *p.All
	return responseResult(commands.DevicesCommand(ctx, showAll))
}

func handleScreenPower(on bool) HandlerFunc {
	return commandHandler(nil, func(ctx context.Context, req commands.ScreenRequest) *commands.CommandResponse {
		return commands.ScreenPowerCommand(ctx, commands.ScreenPowerRequest{DeviceID: req.DeviceID, On: on})
	})
}

// GetMethodRegistry returns a map of method names to handler functions
func GetMethodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"devices":          handleDevicesList,
		"shell":            commandHandler([]string{"command"}, commands.ShellCommand),
		"screen_size":      commandHandler(nil, commands.ScreenSizeCommand),
		"screen_set_size":  commandHandler(nil, commands.ScreenSetSizeCommand),
		"screen_on":        handleScreenPower(true),
		"screen_off":       handleScreenPower(false),
		"screen_status":    commandHandler(nil, commands.ScreenStatusCommand),
		"io_tap":           commandHandler([]string{"x", "y"}, commands.TapCommand),
		"io_key":           commandHandler([]string{"key"}, commands.KeyCommand),
		"io_text":          commandHandler([]string{"text"}, commands.TextCommand),
		"io_swipe":         commandHandler(nil, commands.SwipeCommand),
		"force_home":       commandHandler(nil, commands.ForceHomeCommand),
		"dump_ui":          commandHandler(nil, commands.DumpUICommand),
		"find_node":        commandHandler([]string{"attribute", "value"}, commands.FindNodeCommand),
		"click_node":       commandHandler([]string{"attribute", "value"}, commands.ClickNodeCommand),
		"click_bounds":     commandHandler([]string{"bounds"}, commands.ClickBoundsCommand),
		"apps_installed":   commandHandler([]string{"packageName"}, commands.AppInstalledCommand),
		"apps_launch":      commandHandler([]string{"packageName"}, commands.LaunchAppCommand),
		"activity_top":     commandHandler(nil, commands.ActivityTopCommand),
		"clipboard_get":    commandHandler(nil, commands.ClipboardGetCommand),
		"clipboard_set":    commandHandler([]string{"text"}, commands.ClipboardSetCommand),
		"clipboard_ensure": commandHandler(nil, commands.ClipboardEnsureCommand),
	}
}

// Execute dispatches a method call using the registry
func Execute(ctx context.Context, method string, params json.RawMessage) (interface{}, error) {
	handler, exists := GetMethodRegistry()[method]
	if !exists {
		return nil, fmt.Errorf("method not found: %s", method)
	}

	return handler(ctx, params)
}
