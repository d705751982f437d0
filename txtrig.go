package uartprobe

// txTriggerLevel fills the transmit queue to its rated depth, then drains the
// loopback receive side while watching the interrupt identification register.
// The number of bytes drained when the THR-empty condition asserts is the
// transmit trigger level.
func txTriggerLevel(h Handle, t timing) (int, error) {
	// Discard anything stale before arming the interrupt.
	drainReceiver(h)

	oldIER := h.ReadRegister(RegIER)
	h.WriteRegister(RegIER, ierTHREmpty)

	// The fill is capped at the rated depth plus one: overfilling makes the
	// hardware silently drop and interleave transmissions, which invalidates
	// the measurement. The rated size comes from the device's static
	// capability, not from a prior probe.
	fill := h.RatedFIFOSize() + 1
	for i := 0; i < fill; i++ {
		h.WriteRegister(RegTHR, fillByte)
	}

	drained := 0
	_, found := pollLoop{deadline: t.txTrigDeadline}.run(func(int) bool {
		if h.ReadRegister(RegLSR)&lsrDataReady != 0 {
			h.ReadRegister(RegRBR)
			drained++
		}
		iir := h.ReadRegister(RegIIR)
		return iir&iirNoInterrupt == 0 && iir&iirSourceMask == iirTHREmpty
	})

	// The interrupt-enable register is not part of the snapshot; put it back
	// before the session restores the rest, and leave the queue empty.
	h.WriteRegister(RegIER, oldIER)
	drainReceiver(h)

	if !found || drained == 0 {
		return 0, ErrLoopbackFailed
	}
	return drained, nil
}
