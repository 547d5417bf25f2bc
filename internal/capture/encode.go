package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"strings"
)

// Format is an output image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// JPEGQuality is the quality used for jpeg output.
const JPEGQuality = 80

// ErrFormat is returned for formats other than png and jpeg.
var ErrFormat = errors.New("unsupported image format")

// ParseFormat accepts "png", "jpeg" or "jpg" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: %q (expected png or jpeg)", ErrFormat, s)
	}
}

// Encode renders img in format f.
func Encode(img image.Image, f Format) ([]byte, error) {
	buf := &bytes.Buffer{}
	var err error
	switch f {
	case FormatJPEG:
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: JPEGQuality})
	case FormatPNG:
		err = png.Encode(buf, img)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, string(f))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile encodes img and writes it to path.
func WriteFile(path string, img image.Image, f Format) error {
	data, err := Encode(img, f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
