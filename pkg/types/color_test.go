package types

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBAPremultiplied(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 128, G: 0, B: 0, A: 128}, RGBA(255, 0, 0, 0.5))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, RGBA(255, 255, 255, 1))
	assert.Equal(t, color.RGBA{}, RGBA(255, 255, 255, -1))
	assert.Equal(t, RGBA(10, 20, 30, 1), RGBA(10, 20, 30, 7))
}

func TestParseCSSColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"rgba(255, 0, 0, 0.5)", RGBA(255, 0, 0, 0.5), false},
		{"RGBA(255,0,0,0.3)", RGBA(255, 0, 0, 0.3), false},
		{"rgb(248, 113, 113)", color.RGBA{R: 248, G: 113, B: 113, A: 255}, false},
		{"#f87171", color.RGBA{R: 248, G: 113, B: 113, A: 255}, false},
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"rgba(255, 0, 0)", color.RGBA{}, true},
		{"rgba(256, 0, 0, 1)", color.RGBA{}, true},
		{"rgba(255, 0, 0, 1.5)", color.RGBA{}, true},
		{"#12345", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
		{"red", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCSSColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
