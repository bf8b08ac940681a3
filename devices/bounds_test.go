package devices

import (
	"testing"

	"github.com/mobile-next/adbrobot/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBounds(t *testing.T) {
	tests := []struct {
		name    string
		bounds  string
		want    Bounds
		wantErr bool
	}{
		{"valid bounds", "[42,1023][126,1080]", Bounds{42, 1023, 126, 1080}, false},
		{"full screen", "[0,0][1080,2400]", Bounds{0, 0, 1080, 2400}, false},
		{"trailing text ignored", "[1,2][3,4] extra", Bounds{1, 2, 3, 4}, false},
		{"inverted corners not validated", "[100,100][0,0]", Bounds{100, 100, 0, 0}, false},
		{"missing brackets", "42,1023,126,1080", Bounds{}, true},
		{"negative values", "[-1,0][10,10]", Bounds{}, true},
		{"leading text", "bounds=[1,2][3,4]", Bounds{}, true},
		{"empty string", "", Bounds{}, true},
		{"overflow", "[99999999999999999999,0][1,1]", Bounds{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBounds(tt.bounds)
			if tt.wantErr {
				var boundsErr *BoundsParseError
				require.ErrorAs(t, err, &boundsErr)
				assert.Equal(t, tt.bounds, boundsErr.Bounds)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBounds_Center(t *testing.T) {
	tests := []struct {
		bounds Bounds
		wantX  int
		wantY  int
	}{
		{Bounds{42, 1023, 126, 1080}, 84, 1051},
		{Bounds{0, 0, 1080, 1920}, 540, 960},
		{Bounds{0, 0, 1, 1}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.bounds.String(), func(t *testing.T) {
			x, y := tt.bounds.Center()
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestBounds_RectAndString(t *testing.T) {
	b := Bounds{100, 200, 500, 600}

	assert.Equal(t, types.ScreenElementRect{X: 100, Y: 200, Width: 400, Height: 400}, b.Rect())
	assert.Equal(t, "[100,200][500,600]", b.String())
	assert.Equal(t, []int{100, 200, 500, 600}, b.Points())
}
