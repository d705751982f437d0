package uartprobe

import (
	"testing"
	"time"
)

// regWrite is one journal entry: every register write the engine issues is
// recorded so tests can assert restoration order byte-for-byte.
type regWrite struct {
	reg Register
	val byte
}

// mockHandle emulates an 8250-family UART with internal loopback well enough
// to drive all four probes without hardware. Behavior knobs script when the
// interrupt and error conditions assert.
type mockHandle struct {
	rated int
	busy  bool

	lcr, mcr, ier byte
	fcr           byte
	dll, dlm      byte

	fifo    []byte // receive queue when loopback is on
	overrun bool   // sticky until LSR is read or the queue is cleared

	// Behavior knobs. Zero disables a condition.
	rxTriggerAt  int // IIR asserts RDI once the queue holds this many bytes
	overrunAfter int // LSR asserts OE when a byte arrives on a queue this full
	txTrigAfter  int // IIR asserts THRI once this many bytes were drained
	echoLimit    int // loopback echoes at most this many bytes; -1 = unlimited

	writes    []regWrite
	thrWrites int // transmit holding register writes (fill cap accounting)
	drained   int // receive buffer reads since the queues were last cleared
	rbrReads  int // receive buffer reads, never reset
	closed    int
}

func newMockHandle() *mockHandle {
	return &mockHandle{
		rated:     16,
		lcr:       0x13,
		mcr:       0x08,
		ier:       0x05,
		fcr:       0xc7,
		dll:       0x0c,
		dlm:       0x00,
		echoLimit: -1,
	}
}

var _ Handle = (*mockHandle)(nil)

func (m *mockHandle) dlab() bool { return m.lcr&lcrDLAB != 0 }

func (m *mockHandle) WriteRegister(reg Register, val byte) {
	m.writes = append(m.writes, regWrite{reg, val})

	switch reg {
	case RegTHR: // also RegDLL
		if m.dlab() {
			m.dll = val
			return
		}
		m.thrWrites++
		m.transmit(val)
	case RegIER: // also RegDLM
		if m.dlab() {
			m.dlm = val
			return
		}
		m.ier = val
	case RegFCR:
		m.fcr = val
		if val&(fcrClearRecv|fcrClearXmit) != 0 {
			m.fifo = nil
			m.overrun = false
			m.drained = 0
		}
	case RegLCR:
		m.lcr = val
	case RegMCR:
		m.mcr = val
	}
}

// transmit models the loopback path: with the loopback bit set, a written
// byte lands in the receive queue unless the echo limit or queue capacity
// drops it.
func (m *mockHandle) transmit(val byte) {
	if m.mcr&mcrLoopback == 0 {
		return
	}
	if m.echoLimit >= 0 && len(m.fifo) >= m.echoLimit {
		return
	}
	if m.overrunAfter > 0 && len(m.fifo) >= m.overrunAfter {
		m.overrun = true
		return
	}
	m.fifo = append(m.fifo, val)
}

func (m *mockHandle) ReadRegister(reg Register) byte {
	switch reg {
	case RegRBR: // also RegDLL
		if m.dlab() {
			return m.dll
		}
		if len(m.fifo) == 0 {
			return 0
		}
		b := m.fifo[0]
		m.fifo = m.fifo[1:]
		m.drained++
		m.rbrReads++
		return b
	case RegIER: // also RegDLM
		if m.dlab() {
			return m.dlm
		}
		return m.ier
	case RegIIR:
		if m.ier&ierRecvDataAvail != 0 && m.rxTriggerAt > 0 && len(m.fifo) >= m.rxTriggerAt {
			return iirRecvDataAvail
		}
		if m.ier&ierTHREmpty != 0 && m.txTrigAfter > 0 && m.drained >= m.txTrigAfter {
			return iirTHREmpty
		}
		return iirNoInterrupt
	case RegLCR:
		return m.lcr
	case RegMCR:
		return m.mcr
	case RegLSR:
		var lsr byte
		if len(m.fifo) > 0 {
			lsr |= lsrDataReady
		}
		if m.overrun {
			lsr |= lsrOverrunError
			m.overrun = false // cleared by reading line status
		}
		return lsr
	}
	return 0
}

func (m *mockHandle) ShadowFCR() byte    { return m.fcr }
func (m *mockHandle) RatedFIFOSize() int { return m.rated }
func (m *mockHandle) Busy() bool         { return m.busy }
func (m *mockHandle) Close() error       { m.closed++; return nil }

// mockBinding hands out a fixed handle, or a fixed resolution error.
type mockBinding struct {
	h   Handle
	err error
}

func (b mockBinding) Resolve(string) (Handle, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.h, nil
}

// fastTiming keeps the busy-wait budgets tiny so the full probe suite runs in
// milliseconds against the mock.
var fastTiming = timing{
	byteSettle:     0,
	fillDelay:      0,
	txSettle:       0,
	txDeadline:     200 * time.Millisecond,
	txTrigDeadline: 200 * time.Millisecond,
}

// testProber wires a prober to the given handle with fast timing.
func testProber(h Handle) *Prober {
	p := NewProber(mockBinding{h: h})
	p.timing = fastTiming
	return p
}

// wantRestored asserts that the tail of the write journal is the exact
// restoration sequence for the given pre-probe state: FIFO control, modem
// control, configuration-mode line control, divisor low, divisor high, and
// the operating-mode line control last.
func wantRestored(t *testing.T, m *mockHandle, want Snapshot) {
	t.Helper()

	tail := []regWrite{
		{RegFCR, want.FCR},
		{RegMCR, want.MCR},
		{RegLCR, lcrDLAB},
		{RegDLL, byte(want.Divisor & 0xff)},
		{RegDLM, byte(want.Divisor >> 8)},
		{RegLCR, want.LCR},
	}
	if len(m.writes) < len(tail) {
		t.Fatalf("journal too short for restore sequence: %d writes", len(m.writes))
	}
	got := m.writes[len(m.writes)-len(tail):]
	for i := range tail {
		if got[i] != tail[i] {
			t.Errorf("restore write %d = {reg %d, val %#02x}, want {reg %d, val %#02x}",
				i, got[i].reg, got[i].val, tail[i].reg, tail[i].val)
		}
	}

	if m.lcr != want.LCR || m.mcr != want.MCR || m.fcr != want.FCR {
		t.Errorf("final registers LCR=%#02x MCR=%#02x FCR=%#02x, want %#02x %#02x %#02x",
			m.lcr, m.mcr, m.fcr, want.LCR, want.MCR, want.FCR)
	}
	if m.dll != byte(want.Divisor&0xff) || m.dlm != byte(want.Divisor>>8) {
		t.Errorf("final divisor %#02x%02x, want %#04x", m.dlm, m.dll, want.Divisor)
	}
}

// preState captures the mock's register values before a probe, in Snapshot
// form, for comparison after restoration.
func preState(m *mockHandle) Snapshot {
	return Snapshot{
		LCR:     m.lcr,
		FCR:     m.fcr,
		MCR:     m.mcr,
		Divisor: uint16(m.dll) | uint16(m.dlm)<<8,
	}
}
