package commands

import (
	"context"
	"fmt"
)

// TapRequest represents the parameters for a tap command
type TapRequest struct {
	DeviceID string `json:"deviceId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// KeyRequest represents the parameters for a key press command
type KeyRequest struct {
	DeviceID string `json:"deviceId"`
	Key      string `json:"key"`
}

// TextRequest represents the parameters for a text input command
type TextRequest struct {
	DeviceID string `json:"deviceId"`
	Text     string `json:"text"`
}

// SwipeRequest represents the parameters for a swipe command. Direction
// "up" or "down" swipes half a screen; otherwise the coordinates are used.
type SwipeRequest struct {
	DeviceID  string `json:"deviceId"`
	Direction string `json:"direction,omitempty"`
	X1        int    `json:"x1"`
	Y1        int    `json:"y1"`
	X2        int    `json:"x2"`
	Y2        int    `json:"y2"`
}

// ForceHomeRequest represents the parameters for a force home command
type ForceHomeRequest struct {
	DeviceID string `json:"deviceId"`
}

// TapCommand performs a tap operation on the specified device
func TapCommand(ctx context.Context, req TapRequest) *CommandResponse {
	if req.X < 0 || req.Y < 0 {
		return NewErrorResponse(fmt.Errorf("x and y coordinates must be non-negative, got x=%d, y=%d", req.X, req.Y))
	}

	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	err = robot.Tap(ctx, req.X, req.Y)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to tap on device %s: %v", robot.Serial(), err))
	}

	return messageResponse("Tapped on device %s at (%d,%d)", robot.Serial(), req.X, req.Y)
}

// KeyCommand presses a named key on the specified device
func KeyCommand(ctx context.Context, req KeyRequest) *CommandResponse {
	if req.Key == "" {
		return NewErrorResponse(fmt.Errorf("key name is required"))
	}

	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	err = robot.PressKey(ctx, req.Key)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to press key on device %s: %v", robot.Serial(), err))
	}

	return messageResponse("Pressed key '%s' on device %s", req.Key, robot.Serial())
}

// TextCommand sends text input to the specified device
func TextCommand(ctx context.Context, req TextRequest) *CommandResponse {
	if req.Text == "" {
		return NewErrorResponse(fmt.Errorf("text is required"))
	}

	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	err = robot.InputText(ctx, req.Text)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to send text to device %s: %v", robot.Serial(), err))
	}

	return messageResponse("Sent text to device %s", robot.Serial())
}

// SwipeCommand performs a swipe operation on the specified device
func SwipeCommand(ctx context.Context, req SwipeRequest) *CommandResponse {
	switch req.Direction {
	case "", "up", "down":
	default:
		return NewErrorResponse(fmt.Errorf("direction must be 'up' or 'down', got '%s'", req.Direction))
	}

	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	switch req.Direction {
	case "up":
		err = robot.SwipeUp(ctx)
	case "down":
		err = robot.SwipeDown(ctx)
	default:
		err = robot.Swipe(ctx, req.X1, req.Y1, req.X2, req.Y2)
	}

	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to swipe on device %s: %v", robot.Serial(), err))
	}

	if req.Direction != "" {
		return messageResponse("Swiped %s on device %s", req.Direction, robot.Serial())
	}

	return messageResponse("Swiped on device %s from (%d,%d) to (%d,%d)", robot.Serial(), req.X1, req.Y1, req.X2, req.Y2)
}

// ForceHomeCommand returns the device to the home screen
func ForceHomeCommand(ctx context.Context, req ForceHomeRequest) *CommandResponse {
	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	err = robot.ForceHome(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to go home on device %s: %v", robot.Serial(), err))
	}

	return messageResponse("Returned device %s to the home screen", robot.Serial())
}
