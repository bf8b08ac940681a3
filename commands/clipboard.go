package commands

import (
	"context"
	"fmt"
)

// ClipboardRequest represents the parameters for clipboard commands
type ClipboardRequest struct {
	DeviceID string `json:"deviceId"`
	Text     string `json:"text,omitempty"`
}

// ClipboardEnsureCommand checks for and starts the clipboard helper app
func ClipboardEnsureCommand(ctx context.Context, req ClipboardRequest) *CommandResponse {
	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	if err := robot.EnsureClipboard(ctx); err != nil {
		return NewErrorResponse(err)
	}

	return messageResponse("Clipboard helper running on device %s", robot.Serial())
}

// ClipboardGetCommand reads the clipboard
func ClipboardGetCommand(ctx context.Context, req ClipboardRequest) *CommandResponse {
	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	text, err := robot.ClipboardText(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to read clipboard of device %s: %v", robot.Serial(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"text": text,
	})
}

// ClipboardSetCommand writes the clipboard
func ClipboardSetCommand(ctx context.Context, req ClipboardRequest) *CommandResponse {
	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	if err := robot.SetClipboardText(ctx, req.Text); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to write clipboard of device %s: %v", robot.Serial(), err))
	}

	return messageResponse("Clipboard of device %s updated", robot.Serial())
}
