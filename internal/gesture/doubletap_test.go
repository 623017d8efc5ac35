package gesture

import "testing"

func TestDoubleTapRecognized(t *testing.T) {
	r := NewDoubleTap(DoubleTapConfig{})

	r.Update(press(100, 100, 0))
	if info := r.Update(release(100, 100, 100)); info != nil {
		t.Fatalf("first tap must not emit, got %v", info.State)
	}
	r.Update(press(102, 101, 300))
	info := r.Update(release(102, 101, 380))
	if info == nil || info.State != Recognized {
		t.Fatalf("expected Recognized, got %+v", info)
	}
	if info.Kind != DoubleTap {
		t.Fatalf("wrong kind %v", info.Kind)
	}
	if r.Active() {
		t.Fatalf("recognizer must reset after the second tap")
	}
}

func TestDoubleTapIntervalExpired(t *testing.T) {
	r := NewDoubleTap(DoubleTapConfig{IntervalMS: 400})
	r.Update(press(100, 100, 0))
	r.Update(release(100, 100, 100))

	// Too late: this press restarts the sequence instead.
	r.Update(press(100, 100, 600))
	if info := r.Update(release(100, 100, 700)); info != nil {
		t.Fatalf("late tap completes a NEW first tap, must not emit: %v", info.State)
	}

	// A timely third tap then completes the restarted sequence.
	r.Update(press(100, 100, 900))
	info := r.Update(release(100, 100, 980))
	if info == nil || info.State != Recognized {
		t.Fatalf("expected Recognized from restarted sequence, got %+v", info)
	}
}

func TestDoubleTapTooFarApart(t *testing.T) {
	r := NewDoubleTap(DoubleTapConfig{MovementThreshold: 10})
	r.Update(press(100, 100, 0))
	r.Update(release(100, 100, 80))

	// Second press 40px away: new sequence at the new position.
	r.Update(press(140, 100, 200))
	if info := r.Update(release(140, 100, 280)); info != nil {
		t.Fatalf("distant tap must not complete, got %v", info.State)
	}
	r.Update(press(141, 100, 400))
	info := r.Update(release(141, 100, 470))
	if info == nil || info.State != Recognized {
		t.Fatalf("expected Recognized at relocated position, got %+v", info)
	}
}
