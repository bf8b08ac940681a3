package commands

import (
	"context"
	"fmt"
)

// AppRequest represents the parameters for app-related commands
type AppRequest struct {
	DeviceID    string `json:"deviceId"`
	PackageName string `json:"packageName"`
}

// AppInstalledCommand checks whether a package is installed. The check is a
// substring match on the package list.
func AppInstalledCommand(ctx context.Context, req AppRequest) *CommandResponse {
	if req.PackageName == "" {
		return NewErrorResponse(fmt.Errorf("package name is required"))
	}

	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	installed, err := robot.IsAppInstalled(ctx, req.PackageName)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to list packages on device %s: %v", robot.Serial(), err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"packageName": req.PackageName,
		"installed":   installed,
	})
}

// LaunchAppCommand launches an app on the specified device
func LaunchAppCommand(ctx context.Context, req AppRequest) *CommandResponse {
	if req.PackageName == "" {
		return NewErrorResponse(fmt.Errorf("package name is required"))
	}

	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	err = robot.RunApp(ctx, req.PackageName)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to launch app on device %s: %v", robot.Serial(), err))
	}

	return messageResponse("Launched app '%s' on device %s", req.PackageName, robot.Serial())
}
