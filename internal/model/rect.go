package model

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rect is an integer screen rectangle in absolute pixels.
type Rect struct {
	Left, Top, Right, Bottom int
}

// ShortString renders the rectangle as "[left,top][right,bottom]".
// This string doubles as the node fingerprint on the wire.
func (r Rect) ShortString() string {
	return fmt.Sprintf("[%d,%d][%d,%d]", r.Left, r.Top, r.Right, r.Bottom)
}

func (r Rect) String() string { return r.ShortString() }

// Width returns Right-Left.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns Bottom-Top.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Left >= r.Right || r.Top >= r.Bottom }

// Contains reports whether (x, y) lies inside r. Right and bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Center returns the midpoint of r.
func (r Rect) Center() (int, int) {
	return (r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2
}

// ParseRect parses the "[l,t][r,b]" form produced by ShortString.
func ParseRect(s string) (Rect, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return Rect{}, fmt.Errorf("invalid bounds %q: expected [l,t][r,b]", s)
	}
	parts := strings.Split(trimmed[1:len(trimmed)-1], "][")
	if len(parts) != 2 {
		return Rect{}, fmt.Errorf("invalid bounds %q: expected [l,t][r,b]", s)
	}
	var vals [4]int
	for i, p := range parts {
		xy := strings.Split(p, ",")
		if len(xy) != 2 {
			return Rect{}, fmt.Errorf("invalid bounds %q: expected [l,t][r,b]", s)
		}
		for j, v := range xy {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return Rect{}, fmt.Errorf("invalid bounds %q: %w", s, err)
			}
			vals[i*2+j] = n
		}
	}
	return Rect{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, nil
}

// MarshalYAML writes the rectangle in its short string form.
func (r Rect) MarshalYAML() (interface{}, error) {
	return r.ShortString(), nil
}

// UnmarshalYAML accepts the short string form or a [l, t, r, b] sequence.
func (r *Rect) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var vals []int
		if err := node.Decode(&vals); err != nil {
			return err
		}
		if len(vals) != 4 {
			return fmt.Errorf("invalid bounds: expected 4 values, got %d", len(vals))
		}
		*r = Rect{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseRect(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText lets encoding/json render the short string form.
func (r Rect) MarshalText() ([]byte, error) {
	return []byte(r.ShortString()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (r *Rect) UnmarshalText(b []byte) error {
	parsed, err := ParseRect(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
