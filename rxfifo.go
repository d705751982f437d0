package uartprobe

import "time"

// rxFIFOSize fills the receive queue over loopback without ever draining it,
// so it must eventually saturate, and watches line status for the overrun flag.
// The queue depth is the number of bytes that had arrived when the next one
// was discarded.
func rxFIFOSize(h Handle, t timing) (int, error) {
	sent, overrun := pollLoop{bound: maxFIFOProbe}.run(func(int) bool {
		h.WriteRegister(RegTHR, fillByte)
		time.Sleep(t.fillDelay)
		return h.ReadRegister(RegLSR)&lsrOverrunError != 0
	})

	// The byte that tripped the flag was dropped; the queue held sent-1.
	// Some implementations drain faster than this loop can fill, so hitting
	// the bound is an inconclusive observation rather than a hard fault.
	if !overrun || sent <= 1 {
		return 0, ErrOverrunNotDetected
	}
	return sent - 1, nil
}
