package uartprobe

// session is a scoped loopback mode: constructing it captures a register
// snapshot and reconfigures the device for probing, exit restores the
// snapshot. Every probe body runs bracketed by enterLoopback / exit; exit is
// deferred so restoration happens on all paths, including inconclusive
// measurements.
type session struct {
	h    Handle
	snap Snapshot
}

// enterLoopback captures the current configuration, then applies the probe
// environment: FIFO enabled with both queues cleared, internal loopback in
// modem control, divisor latch 1 (a fixed, fast reference baud so one byte
// time is predictable regardless of how the port was configured), and an 8N1
// frame.
func enterLoopback(h Handle) *session {
	s := &session{h: h, snap: captureConfig(h)}

	h.WriteRegister(RegFCR, fcrEnableFIFO|fcrClearRecv|fcrClearXmit)
	h.WriteRegister(RegMCR, s.snap.MCR|mcrLoopback)

	// Divisor access needs DLAB; the pre-probe divisor is recorded here while
	// the latch is addressable.
	h.WriteRegister(RegLCR, lcrDLAB)
	s.snap.Divisor = uint16(h.ReadRegister(RegDLL)) |
		uint16(h.ReadRegister(RegDLM))<<8
	h.WriteRegister(RegDLL, 1)
	h.WriteRegister(RegDLM, 0)
	h.WriteRegister(RegLCR, lcrWordLen8)

	return s
}

// exit restores the captured configuration. Safe to defer immediately after
// enterLoopback.
func (s *session) exit() {
	s.snap.restore(s.h)
}

// drainReceiver empties the receive queue, reading while line status reports
// data ready. Probes use it to leave no residual bytes behind and to discard
// stale data before a measurement.
func drainReceiver(h Handle) {
	for h.ReadRegister(RegLSR)&lsrDataReady != 0 {
		h.ReadRegister(RegRBR)
	}
}
