package gesture

import "testing"

func TestSwipeRight(t *testing.T) {
	r := NewSwipe(SwipeConfig{})

	r.Update(press(100, 100, 0))
	// 30px: under the minimum distance, silent.
	if info := r.Update(move(130, 100, 50)); info != nil {
		t.Fatalf("short move must not emit, got %v", info.State)
	}
	// 80px: qualifies.
	info := r.Update(move(180, 100, 100))
	if info == nil || info.State != Changed {
		t.Fatalf("expected Changed, got %+v", info)
	}
	if info.Direction != DirectionRight {
		t.Fatalf("expected right, got %v", info.Direction)
	}
	info = r.Update(release(200, 100, 150))
	if info == nil || info.State != Ended {
		t.Fatalf("expected Ended, got %+v", info)
	}
	if info.Delta.X != 100 || info.Delta.Y != 0 {
		t.Fatalf("wrong delta %+v", info.Delta)
	}
}

func TestSwipeTooSlow(t *testing.T) {
	r := NewSwipe(SwipeConfig{MaxTimeMS: 500})
	r.Update(press(0, 0, 0))
	if info := r.Update(move(200, 0, 800)); info != nil {
		t.Fatalf("slow move must not emit, got %v", info.State)
	}
	if info := r.Update(release(200, 0, 900)); info != nil {
		t.Fatalf("slow release must not emit, got %v", info.State)
	}
}

func TestSwipeDirections(t *testing.T) {
	cases := []struct {
		dx, dy float64
		want   Direction
	}{
		{100, 0, DirectionRight},
		{-100, 0, DirectionLeft},
		{0, -100, DirectionUp},
		{0, 100, DirectionDown},
		{80, -80, DirectionUpRight},
		{-80, -80, DirectionUpLeft},
		{80, 80, DirectionDownRight},
		{-80, 80, DirectionDownLeft},
		// Dominant axis wins when the minor component is small.
		{100, 20, DirectionRight},
		{-20, -100, DirectionUp},
	}
	for _, tc := range cases {
		r := NewSwipe(SwipeConfig{})
		r.Update(press(500, 500, 0))
		info := r.Update(release(500+tc.dx, 500+tc.dy, 200))
		if info == nil {
			t.Fatalf("swipe (%v,%v) not recognized", tc.dx, tc.dy)
		}
		if info.Direction != tc.want {
			t.Fatalf("swipe (%v,%v): expected %v, got %v", tc.dx, tc.dy, tc.want, info.Direction)
		}
	}
}

func TestSwipeTouch(t *testing.T) {
	r := NewSwipe(SwipeConfig{})
	r.Update(touchBegin(1, 0, 0, 0))
	info := r.Update(touchEnd(1, 0, 120, 300))
	if info == nil || info.State != Ended || info.Direction != DirectionDown {
		t.Fatalf("expected downward touch swipe, got %+v", info)
	}
}
