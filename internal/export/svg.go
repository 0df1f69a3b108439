package export

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"
)

const (
	background = "#0a0a0a"
	armColor   = "#00ff00"
	trailColor = "#005500"
	targetFill = "#ffff00"
	baseFill   = "#ff0000"
)

// frame maps world coordinates onto an SVG viewport with 10% padding and a
// flipped y-axis.
type frame struct {
	minX, minY     float64
	rangeX, rangeY float64
	width, height  int
}

func newFrame(points []r2.Point, width, height int) frame {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	return frame{minX: minX, minY: minY, rangeX: rangeX, rangeY: rangeY, width: width, height: height}
}

func (f frame) place(p r2.Point) (float64, float64) {
	x := (p.X - f.minX) / f.rangeX * float64(f.width)
	y := float64(f.height) - (p.Y-f.minY)/f.rangeY*float64(f.height)
	return x, y
}

// ArmToSVG renders an arm pose, its target, and the end-effector trail.
// Pose is base first; trail may be empty.
func ArmToSVG(pose []r2.Point, target r2.Point, trail []r2.Point, width, height int) string {
	if len(pose) < 2 {
		return ""
	}

	all := make([]r2.Point, 0, len(pose)+len(trail)+1)
	all = append(all, pose...)
	all = append(all, trail...)
	all = append(all, target)
	f := newFrame(all, width, height)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	if len(trail) >= 2 {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" d="M`, trailColor))
		for i, p := range trail {
			x, y := f.place(p)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="2.5" d="M`, armColor))
	for i, p := range pose {
		x, y := f.place(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	for _, p := range pose {
		x, y := f.place(p)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, armColor))
	}

	bx, by := f.place(pose[0])
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, bx, by, baseFill))

	tx, ty := f.place(target)
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="5" fill="none" stroke="%s" stroke-width="2"/>
`, tx, ty, targetFill))

	sb.WriteString("</svg>")
	return sb.String()
}
