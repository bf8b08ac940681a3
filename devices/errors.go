package devices

import "fmt"

// GeometryParseError is returned when `wm size` output has no WxH pair.
type GeometryParseError struct {
	Output string
}

func (e *GeometryParseError) Error() string {
	return fmt.Sprintf("failed to parse window size from output: %q", e.Output)
}

// BoundsParseError is returned for a bounds string not shaped like [x1,y1][x2,y2].
type BoundsParseError struct {
	Bounds string
}

func (e *BoundsParseError) Error() string {
	return fmt.Sprintf("invalid bounds format: %q", e.Bounds)
}

// MissingDependencyError reports a helper app that must be installed on the device.
type MissingDependencyError struct {
	Package string
	Hint    string
}

func (e *MissingDependencyError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s is not installed on the device", e.Package)
	}
	return fmt.Sprintf("%s is not installed on the device, %s", e.Package, e.Hint)
}

// DumpError is returned when uiautomator produced something that is not xml.
type DumpError struct {
	Payload []byte
}

func (e *DumpError) Error() string {
	payload := e.Payload
	if len(payload) > 200 {
		payload = payload[:200]
	}
	return fmt.Sprintf("ui dump is not an xml document: %q", payload)
}
