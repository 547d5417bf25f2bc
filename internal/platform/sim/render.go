package sim

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/mj1618/a11y-bridge/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	backgroundColor = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	boxColor        = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	editableColor   = color.RGBA{R: 30, G: 110, B: 230, A: 255}
	focusColor      = color.RGBA{R: 230, G: 40, B: 40, A: 255}
	textColor       = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	outlineColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Render paints a wireframe of the tree on a canvas the size of screen.
// Each node gets an outline; nodes with text or a content description get
// a label centered in their bounds.
func Render(root model.Element, screen model.Rect) *image.RGBA {
	w, h := screen.Width(), screen.Height()
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	renderElement(img, root, screen.Left, screen.Top)
	return img
}

func renderElement(img *image.RGBA, el model.Element, originX, originY int) {
	b := el.Bounds
	if !b.Empty() {
		c := color.Color(boxColor)
		switch {
		case el.Focused:
			c = focusColor
		case el.Editable:
			c = editableColor
		}
		drawRectangle(img, b.Left-originX, b.Top-originY, b.Right-originX, b.Bottom-originY, c)

		label := el.Text
		if label == "" {
			label = el.ContentDesc
		}
		if label != "" {
			cx, cy := b.Center()
			drawTextWithOutline(img, label, cx-originX, cy-originY, textColor, outlineColor)
		}
	}
	for _, child := range el.Children {
		renderElement(img, child, originX, originY)
	}
}

func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws a rectangle outline clipped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		if isWithinBounds(bounds, x, y1) {
			img.Set(x, y1, c)
		}
		if isWithinBounds(bounds, x, y2-1) {
			img.Set(x, y2-1, c)
		}
	}
	for y := y1; y < y2; y++ {
		if isWithinBounds(bounds, x1, y) {
			img.Set(x1, y, c)
		}
		if isWithinBounds(bounds, x2-1, y) {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline centers text at (x, y) using basicfont.Face7x13
// (7px advance, 13px height) with a one-pixel halo.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, fg, halo color.Color) {
	offsetX := x - len(text)*7/2
	baseline := y + 13/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, offsetX+dx, baseline+dy, halo)
		}
	}
	drawString(img, text, offsetX, baseline, fg)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
