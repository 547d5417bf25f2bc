package capture

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{"jpeg", FormatJPEG, false},
		{"JPG", FormatJPEG, false},
		{" Jpeg ", FormatJPEG, false},
		{"webp", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrFormat, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestEncode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))

	data, err := Encode(img, FormatPNG)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Width)

	data, err = Encode(img, FormatJPEG)
	require.NoError(t, err)
	cfg, err = jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Height)

	_, err = Encode(img, Format("bmp"))
	assert.ErrorIs(t, err, ErrFormat)
}
