package export

import (
	"strings"
	"testing"

	"github.com/golang/geo/r2"
)

func TestArmToSVG(t *testing.T) {
	pose := []r2.Point{{}, {X: 2, Y: 0}, {X: 3, Y: 1}}
	target := r2.Point{X: 3, Y: 1}
	trail := []r2.Point{{X: 1, Y: 3}, {X: 2, Y: 2}, {X: 3, Y: 1.2}}

	svg := ArmToSVG(pose, target, trail, 400, 400)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400"`) {
		t.Error("missing svg element with dimensions")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated svg")
	}

	// Two paths: trail + arm.
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	// Joint circles (3) + base + target ring.
	if got := strings.Count(svg, "<circle"); got != 5 {
		t.Errorf("expected 5 circles, got %d", got)
	}
}

func TestArmToSVGNoTrail(t *testing.T) {
	pose := []r2.Point{{}, {X: 1, Y: 1}}
	svg := ArmToSVG(pose, r2.Point{X: 2, Y: 0}, nil, 200, 200)

	if got := strings.Count(svg, "<path"); got != 1 {
		t.Errorf("expected only the arm path, got %d", got)
	}
}

func TestArmToSVGDegeneratePose(t *testing.T) {
	if svg := ArmToSVG([]r2.Point{{}}, r2.Point{}, nil, 100, 100); svg != "" {
		t.Error("single-point pose should render nothing")
	}
}
