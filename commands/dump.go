package commands

import (
	"context"
	"fmt"

	"github.com/mobile-next/adbrobot/devices"
	"github.com/mobile-next/adbrobot/types"
)

// DumpUIRequest represents the parameters for dumping the UI tree
type DumpUIRequest struct {
	DeviceID string `json:"deviceId"`
	Raw      bool   `json:"raw"`
	Retries  int    `json:"retries,omitempty"`
}

// DumpUIResponse represents the response for a dump UI command
type DumpUIResponse struct {
	Elements []types.ScreenElement `json:"elements,omitempty" yaml:"elements,omitempty"`
	XML      string                `json:"xml,omitempty" yaml:"xml,omitempty"`
}

// NodeRequest selects a node by attribute
type NodeRequest struct {
	DeviceID  string `json:"deviceId"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// NodeResponse describes the outcome of a node lookup
type NodeResponse struct {
	Found  bool            `json:"found" yaml:"found"`
	Bounds string          `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Points *devices.Bounds `json:"points,omitempty" yaml:"points,omitempty"`
}

// ClickBoundsRequest represents the parameters for tapping a bounds descriptor
type ClickBoundsRequest struct {
	DeviceID string `json:"deviceId"`
	Bounds   string `json:"bounds"`
}

func dumpUI(ctx context.Context, robot *devices.Robot, retries int) (*devices.UITree, error) {
	if retries > 0 {
		return robot.UIDumpWithRetries(ctx, retries)
	}
	return robot.UIDump(ctx)
}

// DumpUICommand dumps the UI tree from the specified device
func DumpUICommand(ctx context.Context, req DumpUIRequest) *CommandResponse {
	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	tree, err := dumpUI(ctx, robot, req.Retries)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to dump UI from device %s: %v", robot.Serial(), err))
	}

	if req.Raw {
		return NewSuccessResponse(DumpUIResponse{XML: string(tree.Raw())})
	}

	return NewSuccessResponse(DumpUIResponse{Elements: tree.Elements()})
}

func validateNodeRequest(req NodeRequest) error {
	if req.Attribute == "" {
		return fmt.Errorf("attribute is required")
	}
	return nil
}

// FindNodeCommand looks up the bounds of the first node whose attribute matches
func FindNodeCommand(ctx context.Context, req NodeRequest) *CommandResponse {
	if err := validateNodeRequest(req); err != nil {
		return NewErrorResponse(err)
	}

	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	bounds, found, err := robot.NodeBounds(ctx, req.Attribute, req.Value, nil)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to look up node on device %s: %v", robot.Serial(), err))
	}

	if !found {
		return NewSuccessResponse(NodeResponse{Found: false})
	}

	response := NodeResponse{Found: true, Bounds: bounds}
	if points, err := robot.PointsInBounds(bounds); err == nil {
		response.Points = &points
	}

	return NewSuccessResponse(response)
}

// ClickNodeCommand taps the center of the first node whose attribute matches
func ClickNodeCommand(ctx context.Context, req NodeRequest) *CommandResponse {
	if err := validateNodeRequest(req); err != nil {
		return NewErrorResponse(err)
	}

	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	clicked, err := robot.ClickNode(ctx, req.Attribute, req.Value)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to click node on device %s: %v", robot.Serial(), err))
	}

	if !clicked {
		return NewErrorResponse(fmt.Errorf("no node with %s=%q on device %s", req.Attribute, req.Value, robot.Serial()))
	}

	return messageResponse("Clicked node %s=%q on device %s", req.Attribute, req.Value, robot.Serial())
}

// ClickBoundsCommand taps the center of a bounds descriptor
func ClickBoundsCommand(ctx context.Context, req ClickBoundsRequest) *CommandResponse {
	if _, err := devices.ParseBounds(req.Bounds); err != nil {
		return NewErrorResponse(err)
	}

	robot, err := FindRobot(ctx, req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding device: %v", err))
	}

	err = robot.ClickBounds(ctx, req.Bounds)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to click bounds on device %s: %v", robot.Serial(), err))
	}

	return messageResponse("Clicked %s on device %s", req.Bounds, robot.Serial())
}
