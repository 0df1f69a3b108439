package viz

import (
	"strings"

	"github.com/golang/geo/r2"
)

// Braille patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights a dot at sub-pixel (x, y). The canvas is (Width*2)x(Height*4)
// sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line in sub-pixel space using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps a rectangular world region onto a braille canvas, with the
// world y-axis pointing up.
type Viewport struct {
	Canvas     *Canvas
	MinX, MaxX float64
	MinY, MaxY float64
}

func NewViewport(w, h int, minX, maxX, minY, maxY float64) *Viewport {
	return &Viewport{
		Canvas: NewCanvas(w, h),
		MinX:   minX, MaxX: maxX,
		MinY: minY, MaxY: maxY,
	}
}

func (v *Viewport) subWidth() int  { return v.Canvas.Width * 2 }
func (v *Viewport) subHeight() int { return v.Canvas.Height * 4 }

func (v *Viewport) project(p r2.Point) (int, int) {
	x := (p.X - v.MinX) / (v.MaxX - v.MinX) * float64(v.subWidth()-1)
	y := (p.Y - v.MinY) / (v.MaxY - v.MinY) * float64(v.subHeight()-1)
	return int(x), v.subHeight() - 1 - int(y)
}

// WorldAtCell inverts the projection for a terminal cell, returning the
// world point under the cell's center. Used to turn mouse clicks into
// targets.
func (v *Viewport) WorldAtCell(col, row int) r2.Point {
	sx := float64(col*2 + 1)
	sy := float64(v.subHeight() - 1 - (row*4 + 2))
	return r2.Point{
		X: v.MinX + sx/float64(v.subWidth()-1)*(v.MaxX-v.MinX),
		Y: v.MinY + sy/float64(v.subHeight()-1)*(v.MaxY-v.MinY),
	}
}

// Contains reports whether a terminal cell lies on the canvas.
func (v *Viewport) Contains(col, row int) bool {
	return col >= 0 && col < v.Canvas.Width && row >= 0 && row < v.Canvas.Height
}

func (v *Viewport) Clear() {
	v.Canvas.Clear()
}

func (v *Viewport) String() string {
	return v.Canvas.String()
}

// DrawSegment draws a world-space line segment.
func (v *Viewport) DrawSegment(a, b r2.Point) {
	x0, y0 := v.project(a)
	x1, y1 := v.project(b)
	v.Canvas.DrawLine(x0, y0, x1, y1)
}

// DrawChain draws the arm: segments between consecutive joints with a dot
// cluster at each joint.
func (v *Viewport) DrawChain(pose []r2.Point) {
	for i := 1; i < len(pose); i++ {
		v.DrawSegment(pose[i-1], pose[i])
	}
	for _, p := range pose {
		v.MarkDot(p)
	}
}

// MarkDot lights a small 2x2 block around a world point.
func (v *Viewport) MarkDot(p r2.Point) {
	x, y := v.project(p)
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 2; dy++ {
			v.Canvas.Set(x+dx, y+dy)
		}
	}
}

// MarkTarget draws a diamond around a world point.
func (v *Viewport) MarkTarget(p r2.Point) {
	x, y := v.project(p)
	r := 3
	v.Canvas.DrawLine(x-r, y, x, y-r)
	v.Canvas.DrawLine(x, y-r, x+r, y)
	v.Canvas.DrawLine(x+r, y, x, y+r)
	v.Canvas.DrawLine(x, y+r, x-r, y)
}

// MarkCross draws a small cross, used for the arm base.
func (v *Viewport) MarkCross(p r2.Point) {
	x, y := v.project(p)
	r := 2
	v.Canvas.DrawLine(x-r, y, x+r, y)
	v.Canvas.DrawLine(x, y-r, x, y+r)
}
