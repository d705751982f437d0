package uartprobe

import "time"

// rxTriggerLevel sends one byte at a time over loopback until the interrupt
// identification register reports a pending receive-data-available condition.
// The byte count at that point is the receive trigger level. The UART does
// not expose it as a readable value on all variants, so it is observed
// indirectly through IIR.
func rxTriggerLevel(h Handle, t timing) (int, error) {
	h.WriteRegister(RegIER, ierRecvDataAvail)

	trig, found := pollLoop{bound: maxTriggerSearch}.run(func(int) bool {
		h.WriteRegister(RegTHR, triggerByte)

		// The byte must have fully arrived before the status read or the
		// level is under-reported; one byte at divisor 1 takes ~87 µs.
		time.Sleep(t.byteSettle)

		iir := h.ReadRegister(RegIIR)
		return iir&iirNoInterrupt == 0 && iir&iirSourceMask == iirRecvDataAvail
	})

	// Success or not: disarm the interrupt and leave no residual bytes.
	h.WriteRegister(RegIER, 0)
	drainReceiver(h)

	if !found {
		return 0, ErrNoTriggerDetected
	}
	return trig, nil
}
