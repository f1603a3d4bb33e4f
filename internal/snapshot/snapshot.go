// Package snapshot renders frames as raster images.
// Each non-blank cell becomes a block in its role color on a light grid;
// glyphs are not drawn, so emoji themes render the same as ASCII ones.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-flight/internal/core"
)

// DefaultCellSize is the width of one cell in pixels. Cells are twice as
// tall as they are wide, like terminal cells.
const DefaultCellSize = 8

// MaxScale bounds Scale to keep images small.
const MaxScale = 8

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:      {R: 0x20, G: 0x20, B: 0x20, A: 0xff},
	core.ColorRed:          {R: 0xcc, G: 0x22, B: 0x22, A: 0xff},
	core.ColorGreen:        {R: 0x22, G: 0xaa, B: 0x44, A: 0xff},
	core.ColorYellow:       {R: 0xcc, G: 0xaa, B: 0x22, A: 0xff},
	core.ColorBlue:         {R: 0x22, G: 0x55, B: 0xcc, A: 0xff},
	core.ColorCyan:         {R: 0x22, G: 0xaa, B: 0xaa, A: 0xff},
	core.ColorWhite:        {R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff},
	core.ColorBrightYellow: {R: 0xff, G: 0xdd, B: 0x33, A: 0xff},
	core.ColorBrightCyan:   {R: 0x55, G: 0xff, B: 0xff, A: 0xff},
	core.ColorOrange:       {R: 0xff, G: 0x87, B: 0x00, A: 0xff},
	core.ColorGray:         {R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff},
}

// ColorOf returns the fill color used for c.
func ColorOf(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[core.ColorDefault]
}

// Render draws frame with cells cellSize pixels wide.
func Render(frame *core.Screen, cellSize int) image.Image {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	cw, ch := cellSize, cellSize*2
	width, height := frame.Width()*cw, frame.Height()*ch

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	renderGrid(dc, width, height, cw, ch)

	for y := range frame.Height() {
		for x := range frame.Width() {
			cell := frame.GetCell(x, y)
			if cell.Rune == ' ' {
				continue
			}
			dc.SetColor(ColorOf(cell.Color))
			dc.DrawRectangle(float64(x*cw), float64(y*ch), float64(cw), float64(ch))
			dc.Fill()
		}
	}
	return dc.Image()
}

func renderGrid(dc *gg.Context, width, height, cw, ch int) {
	dc.SetRGB(0.9, 0.9, 0.9)
	dc.SetLineWidth(1)
	for x := 0; x <= width; x += cw {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += ch {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}

// Scale enlarges img by an integer factor without smoothing.
func Scale(img image.Image, factor int) (image.Image, error) {
	if factor < 1 || factor > MaxScale {
		return nil, fmt.Errorf("snapshot: scale %d out of range 1..%d", factor, MaxScale)
	}
	if factor == 1 {
		return img, nil
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor), nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("snapshot: cannot encode png: %w", err)
	}
	return nil
}
