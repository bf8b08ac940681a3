package commands

import (
	"context"

	"github.com/mobile-next/adbrobot/devices"
)

// DevicesCommand lists the devices adb can see. Offline devices are
// included only when showAll is set.
func DevicesCommand(ctx context.Context, showAll bool) *CommandResponse {
	list, err := devices.ListDevices(ctx, currentSettings().bridge())
	if err != nil {
		return NewErrorResponse(err)
	}

	if !showAll {
		filtered := list[:0]
		for _, d := range list {
			if d.Online() {
				filtered = append(filtered, d)
			}
		}
		list = filtered
	}

	return NewSuccessResponse(map[string]interface{}{
		"devices": list,
	})
}
