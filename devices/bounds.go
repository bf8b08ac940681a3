package devices

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/mobile-next/adbrobot/types"
)

var boundsPattern = regexp.MustCompile(`^\[(\d+),(\d+)\]\[(\d+),(\d+)\]`)

// Bounds is the rectangle encoded by uiautomator as "[x1,y1][x2,y2]".
type Bounds struct {
	X1 int `json:"x1" yaml:"x1"`
	Y1 int `json:"y1" yaml:"y1"`
	X2 int `json:"x2" yaml:"x2"`
	Y2 int `json:"y2" yaml:"y2"`
}

// ParseBounds parses a bounds descriptor. Corner ordering is not checked.
func ParseBounds(bounds string) (Bounds, error) {
	matches := boundsPattern.FindStringSubmatch(bounds)
	if matches == nil {
		return Bounds{}, &BoundsParseError{Bounds: bounds}
	}

	var points [4]int
	for i := range points {
		value, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return Bounds{}, &BoundsParseError{Bounds: bounds}
		}
		points[i] = value
	}

	return Bounds{X1: points[0], Y1: points[1], X2: points[2], Y2: points[3]}, nil
}

// Points returns x1, y1, x2, y2 in order.
func (b Bounds) Points() []int {
	return []int{b.X1, b.Y1, b.X2, b.Y2}
}

// Center returns the midpoint, truncating odd sums toward zero.
func (b Bounds) Center() (int, int) {
	return (b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2
}

// Rect converts the corners into origin plus size.
func (b Bounds) Rect() types.ScreenElementRect {
	return types.ScreenElementRect{
		X:      b.X1,
		Y:      b.Y1,
		Width:  b.X2 - b.X1,
		Height: b.Y2 - b.Y1,
	}
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%d,%d][%d,%d]", b.X1, b.Y1, b.X2, b.Y2)
}
