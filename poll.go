package uartprobe

import (
	"runtime"
	"time"
)

// pollLoop drives a measurement loop with an iteration bound, a wall-clock
// deadline, or both. All four probes poll through it so the busy-wait
// discipline lives in one place: no loop suspends indefinitely, and an
// iteration either sleeps a fixed wait or yields the processor before the
// next attempt.
type pollLoop struct {
	bound    int           // max iterations; 0 means no iteration bound
	wait     time.Duration // sleep between attempts; 0 yields instead
	deadline time.Duration // wall-clock limit; 0 means no deadline
}

// run calls step until it reports done or the loop exhausts. It returns the
// number of completed iterations and whether step succeeded. step receives
// the zero-based iteration index.
func (l pollLoop) run(step func(i int) bool) (int, bool) {
	var end time.Time
	if l.deadline > 0 {
		end = time.Now().Add(l.deadline)
	}

	for i := 0; l.bound == 0 || i < l.bound; i++ {
		if !end.IsZero() && !time.Now().Before(end) {
			return i, false
		}
		if step(i) {
			return i + 1, true
		}
		if l.wait > 0 {
			time.Sleep(l.wait)
		} else {
			runtime.Gosched()
		}
	}
	return l.bound, false
}
