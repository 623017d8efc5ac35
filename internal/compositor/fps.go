package compositor

import "time"

// fpsWindowSize is how many frame timestamps the counter keeps.
const fpsWindowSize = 100

// fpsCounter derives the frame rate from a ring of recent frame
// timestamps.
type fpsCounter struct {
	frames []time.Time
	head   int
	count  int
}

func newFPSCounter() *fpsCounter {
	return &fpsCounter{frames: make([]time.Time, fpsWindowSize)}
}

func (f *fpsCounter) addFrame(t time.Time) {
	f.frames[f.head] = t
	f.head = (f.head + 1) % len(f.frames)
	if f.count < len(f.frames) {
		f.count++
	}
}

// fps returns (count-1) / (newest - oldest), or 0 with fewer than two
// samples or a zero span.
func (f *fpsCounter) fps() float64 {
	if f.count < 2 {
		return 0
	}
	newest := f.frames[(f.head-1+len(f.frames))%len(f.frames)]
	oldestIdx := 0
	if f.count == len(f.frames) {
		oldestIdx = f.head
	}
	oldest := f.frames[oldestIdx]
	span := newest.Sub(oldest).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(f.count-1) / span
}
