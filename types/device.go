package types

// Size represents width and height dimensions.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// DeviceInfo is one line of `adb devices` output.
type DeviceInfo struct {
	Serial string `json:"serial" yaml:"serial"`
	State  string `json:"state" yaml:"state"`
	Type   string `json:"type" yaml:"type"` // "emulator" or "real"
}

// Online reports whether adb considers the device usable.
func (d DeviceInfo) Online() bool {
	return d.State == "device"
}
