package commands

import (
	"context"
	"fmt"
)

// ShellRequest represents the parameters for a raw shell command
type ShellRequest struct {
	DeviceID string `json:"deviceId"`
	Command  string `json:"command"`
}

// ShellResponse keeps the exit status and both streams apart
type ShellResponse struct {
	ExitCode int    `json:"exitCode" yaml:"exitCode"`
	Stdout   string `json:"stdout" yaml:"stdout"`
	Stderr   string `json:"stderr" yaml:"stderr"`
}

// ShellCommand runs a shell command on the device
func ShellCommand(ctx context.Context, req ShellRequest) *CommandResponse {
	if req.Command == "" {
		return NewErrorResponse(fmt.Errorf("command is required"))
	}

	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	result, err := robot.Shell(ctx, req.Command)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to run shell command on device %s: %v", robot.Serial(), err))
	}

	return NewSuccessResponse(ShellResponse{
		ExitCode: result.ExitCode,
		Stdout:   string(result.Stdout),
		Stderr:   string(result.Stderr),
	})
}

// ActivityTopRequest represents the parameters for the foreground activity dump
type ActivityTopRequest struct {
	DeviceID string `json:"deviceId"`
}

// ActivityTopCommand returns the raw `dumpsys activity top` output
func ActivityTopCommand(ctx context.Context, req ActivityTopRequest) *CommandResponse {
	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	output, err := robot.ActivityTop(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to dump top activity on device %s: %v", robot.Serial(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"output": output,
	})
}
