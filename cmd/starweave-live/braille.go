package main

import (
	"image"
	"image/color"

	"github.com/satindergrewal/starweave"
)

// Braille cells hold a 2×4 grid of dots.
const (
	dotsX = 2
	dotsY = 4
)

// brailleBits maps a dot position (x, y) inside a cell to its bit in the
// Unicode braille block.
var brailleBits = [dotsX][dotsY]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// inkThreshold is the minimum summed channel distance from the background
// for a pixel to count as drawn.
const inkThreshold = 96

// cell is one terminal character of a braille frame.
type cell struct {
	r   rune
	ink color.RGBA // average color of the drawn dots
}

// brailleFrame converts img into cols×rows braille cells. The image should
// be cols*2 pixels wide and rows*4 pixels high; pixels outside it are blank.
func brailleFrame(img *image.RGBA, bg starweave.Color, cols, rows int) [][]cell {
	cells := make([][]cell, rows)
	bounds := img.Bounds()

	for cy := 0; cy < rows; cy++ {
		cells[cy] = make([]cell, cols)
		for cx := 0; cx < cols; cx++ {
			var bits rune
			var sr, sg, sb, n int
			for dx := 0; dx < dotsX; dx++ {
				for dy := 0; dy < dotsY; dy++ {
					x := bounds.Min.X + cx*dotsX + dx
					y := bounds.Min.Y + cy*dotsY + dy
					if !(image.Point{X: x, Y: y}.In(bounds)) {
						continue
					}
					c := img.RGBAAt(x, y)
					if inkDistance(c, bg) < inkThreshold {
						continue
					}
					bits |= brailleBits[dx][dy]
					sr += int(c.R)
					sg += int(c.G)
					sb += int(c.B)
					n++
				}
			}

			if n == 0 {
				cells[cy][cx] = cell{r: ' '}
				continue
			}
			cells[cy][cx] = cell{
				r: 0x2800 + bits,
				ink: color.RGBA{
					R: uint8(sr / n),
					G: uint8(sg / n),
					B: uint8(sb / n),
					A: 0xff,
				},
			}
		}
	}
	return cells
}

func inkDistance(c color.RGBA, bg starweave.Color) int {
	return absDiff(c.R, bg.R) + absDiff(c.G, bg.G) + absDiff(c.B, bg.B)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
