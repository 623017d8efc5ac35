package gesture

import (
	"testing"

	"github.com/lumenwm/lumen/internal/geometry"
)

func screenBounds() geometry.Rect {
	return geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
}

func TestEdgeSwipeFromLeft(t *testing.T) {
	r := NewEdgeSwipe(EdgeSwipeConfig{Bounds: screenBounds()})

	r.Update(press(5, 540, 0))
	if !r.Active() {
		t.Fatalf("press inside the edge band must arm")
	}
	// 30px inward: under the minimum travel.
	if info := r.Update(move(35, 540, 50)); info != nil {
		t.Fatalf("short travel must not emit, got %v", info.State)
	}
	info := r.Update(move(80, 540, 100))
	if info == nil || info.State != Began {
		t.Fatalf("expected Began at 75px travel, got %+v", info)
	}
	if info.Edge != EdgeLeft || info.Direction != DirectionRight {
		t.Fatalf("wrong edge/direction: %v %v", info.Edge, info.Direction)
	}
	info = r.Update(move(120, 540, 150))
	if info == nil || info.State != Changed {
		t.Fatalf("expected Changed, got %+v", info)
	}
	info = r.Update(release(120, 540, 200))
	if info == nil || info.State != Ended {
		t.Fatalf("expected Ended, got %+v", info)
	}
}

func TestEdgeSwipeEdges(t *testing.T) {
	cases := []struct {
		name         string
		startX, endX float64
		startY, endY float64
		edge         Edge
		dir          Direction
	}{
		{"right", 1915, 1800, 540, 540, EdgeRight, DirectionLeft},
		{"top", 960, 960, 5, 120, EdgeTop, DirectionDown},
		{"bottom", 960, 960, 1075, 960, EdgeBottom, DirectionUp},
	}
	for _, tc := range cases {
		r := NewEdgeSwipe(EdgeSwipeConfig{Bounds: screenBounds()})
		r.Update(press(tc.startX, tc.startY, 0))
		info := r.Update(move(tc.endX, tc.endY, 100))
		if info == nil || info.State != Began {
			t.Fatalf("%s: expected Began, got %+v", tc.name, info)
		}
		if info.Edge != tc.edge || info.Direction != tc.dir {
			t.Fatalf("%s: got edge %v dir %v", tc.name, info.Edge, info.Direction)
		}
	}
}

func TestEdgeSwipeCornerResolvesVertical(t *testing.T) {
	r := NewEdgeSwipe(EdgeSwipeConfig{Bounds: screenBounds()})
	// Top-left corner: the left edge wins over the top.
	r.Update(press(10, 10, 0))
	info := r.Update(move(100, 10, 100))
	if info == nil || info.Edge != EdgeLeft {
		t.Fatalf("corner press must resolve to the left edge, got %+v", info)
	}
}

func TestEdgeSwipeFromInterior(t *testing.T) {
	r := NewEdgeSwipe(EdgeSwipeConfig{Bounds: screenBounds()})
	r.Update(press(960, 540, 0))
	if r.Active() {
		t.Fatalf("press away from every edge must not arm")
	}
	if info := r.Update(move(1100, 540, 100)); info != nil {
		t.Fatalf("unarmed recognizer must be silent, got %v", info.State)
	}
}

func TestEdgeSwipeTimeout(t *testing.T) {
	r := NewEdgeSwipe(EdgeSwipeConfig{Bounds: screenBounds(), MaxTimeMS: 500})

	r.Update(press(5, 540, 0))
	info := r.Update(move(100, 540, 100))
	if info == nil || info.State != Began {
		t.Fatalf("expected Began, got %+v", info)
	}
	// Over time after recognition: the gesture cancels.
	info = r.Update(move(150, 540, 700))
	if info == nil || info.State != Cancelled {
		t.Fatalf("expected Cancelled past the deadline, got %+v", info)
	}
	if r.Active() {
		t.Fatalf("recognizer must reset after Cancelled")
	}
}

func TestEdgeSwipeOutwardMotionIgnored(t *testing.T) {
	// Start in the right-edge band and move further right off screen.
	r := NewEdgeSwipe(EdgeSwipeConfig{Bounds: screenBounds()})
	r.Update(press(1910, 540, 0))
	if info := r.Update(move(1919, 540, 100)); info != nil {
		t.Fatalf("outward motion counts as zero travel, got %v", info.State)
	}
}

func TestEdgeSwipeSetBounds(t *testing.T) {
	r := NewEdgeSwipe(EdgeSwipeConfig{Bounds: screenBounds()})
	r.Update(press(5, 540, 0))
	r.SetBounds(geometry.Rect{X: 0, Y: 0, Width: 1280, Height: 720})
	if r.Active() {
		t.Fatalf("bounds change must reset a gesture in flight")
	}
	// The new right edge is at 1280.
	r.Update(press(1275, 360, 1000))
	info := r.Update(move(1150, 360, 1100))
	if info == nil || info.Edge != EdgeRight {
		t.Fatalf("expected right-edge swipe against new bounds, got %+v", info)
	}
}
