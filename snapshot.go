package uartprobe

// Snapshot holds the mutable configuration registers captured before a probe
// reconfigures the device. It is created at probe entry, restored at probe
// exit, and never persisted.
type Snapshot struct {
	LCR     byte
	FCR     byte // software shadow; FCR is not hardware-readable on all variants
	MCR     byte
	Divisor uint16
}

// captureConfig reads the registers that loopback setup will clobber. The
// divisor latch is not read here: divisor access requires the DLAB
// configuration mode, so the session records it while it already holds LCR in
// that mode.
func captureConfig(h Handle) Snapshot {
	return Snapshot{
		LCR: h.ReadRegister(RegLCR),
		FCR: h.ShadowFCR(),
		MCR: h.ReadRegister(RegMCR),
	}
}

// restore writes the snapshot back in a fixed order: FIFO control, modem
// control, then the divisor pair under a configuration-mode line control
// value, and the original line control last. The ordering matters: the divisor
// latch is only addressable while DLAB is set, so the operating LCR value must
// not be restored before the divisor bytes.
func (s Snapshot) restore(h Handle) {
	h.WriteRegister(RegFCR, s.FCR)
	h.WriteRegister(RegMCR, s.MCR)
	h.WriteRegister(RegLCR, lcrDLAB)
	h.WriteRegister(RegDLL, byte(s.Divisor&0xff))
	h.WriteRegister(RegDLM, byte(s.Divisor>>8))
	h.WriteRegister(RegLCR, s.LCR)
}
