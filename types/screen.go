package types

type ScreenElementRect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

type ScreenElement struct {
	Type       string            `json:"type" yaml:"type"`
	Label      *string           `json:"label,omitempty" yaml:"label,omitempty"`
	Text       *string           `json:"text,omitempty" yaml:"text,omitempty"`
	Identifier *string           `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Package    string            `json:"package,omitempty" yaml:"package,omitempty"`
	Bounds     string            `json:"bounds" yaml:"bounds"`
	Rect       ScreenElementRect `json:"rect" yaml:"rect"`
	Clickable  bool              `json:"clickable,omitempty" yaml:"clickable,omitempty"`
	Focused    *bool             `json:"focused,omitempty" yaml:"focused,omitempty"`
}
