package commands

import (
	"context"
	"fmt"

	"github.com/mobile-next/adbrobot/types"
)

// ScreenRequest represents the parameters for screen commands
type ScreenRequest struct {
	DeviceID string `json:"deviceId"`
}

// ScreenSetSizeRequest represents the parameters for overriding the display size
type ScreenSetSizeRequest struct {
	DeviceID string `json:"deviceId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Reset    bool   `json:"reset"`
}

// ScreenPowerRequest represents the parameters for turning the screen on or off
type ScreenPowerRequest struct {
	DeviceID string `json:"deviceId"`
	On       bool   `json:"on"`
}

// ScreenSizeCommand queries the current display size
func ScreenSizeCommand(ctx context.Context, req ScreenRequest) *CommandResponse {
	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	width, height, err := robot.WindowManager().GetSize(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to get screen size of device %s: %v", robot.Serial(), err))
	}

	return NewSuccessResponse(types.Size{Width: width, Height: height})
}

// ScreenSetSizeCommand overrides or resets the display size
func ScreenSetSizeCommand(ctx context.Context, req ScreenSetSizeRequest) *CommandResponse {
	if !req.Reset && (req.Width <= 0 || req.Height <= 0) {
		return NewErrorResponse(fmt.Errorf("width and height must be positive, got width=%d, height=%d", req.Width, req.Height))
	}

	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	if req.Reset {
		if err := robot.WindowManager().ResetSize(ctx); err != nil {
			return NewErrorResponse(fmt.Errorf("failed to reset screen size of device %s: %v", robot.Serial(), err))
		}
		return messageResponse("Reset screen size of device %s", robot.Serial())
	}

	if err := robot.WindowManager().SetSize(ctx, req.Width, req.Height); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to set screen size of device %s: %v", robot.Serial(), err))
	}

	return messageResponse("Set screen size of device %s to %dx%d", robot.Serial(), req.Width, req.Height)
}

// ScreenStatusCommand reports whether the screen is on
func ScreenStatusCommand(ctx context.Context, req ScreenRequest) *CommandResponse {
	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	on, err := robot.IsScreenOn(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to read screen state of device %s: %v", robot.Serial(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"screenOn": on,
	})
}

// ScreenPowerCommand turns the screen on or off, pressing power only when needed
func ScreenPowerCommand(ctx context.Context, req ScreenPowerRequest) *CommandResponse {
	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	state := "off"
	if req.On {
		state = "on"
		err = robot.ScreenOn(ctx)
	} else {
		err = robot.ScreenOff(ctx)
	}

	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to turn screen %s on device %s: %v", state, robot.Serial(), err))
	}

	return messageResponse("Screen of device %s is %s", robot.Serial(), state)
}
