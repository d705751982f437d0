package uartprobe

import (
	"sync"
	"time"
)

const (
	// maxTriggerSearch bounds the RX trigger search; no 8250-family FIFO has
	// a trigger level above 255 bytes.
	maxTriggerSearch = 255

	// maxFIFOProbe bounds the FIFO fill loops.
	maxFIFOProbe = 512

	// triggerByte is the pattern sent while hunting for the RX trigger level.
	triggerByte = 0x55

	// fillByte is the pattern used when saturating a queue; the TX size probe
	// counts only bytes that echo back as this value.
	fillByte = 0xff
)

// timing holds the probe wait budgets. These are measurement constraints, not
// tunables: the per-byte settle must cover one byte time at the reference
// baud (~87 µs at divisor 1) or the trigger probe under-reports. Tests
// shrink them through the package-internal field.
type timing struct {
	byteSettle     time.Duration // one byte over loopback at divisor 1
	fillDelay      time.Duration // per-byte delay while forcing RX overrun
	txSettle       time.Duration // quiet period after saturating the TX queue
	txDeadline     time.Duration // echo-count budget for the TX size probe
	txTrigDeadline time.Duration // drain budget for the TX trigger probe
}

var defaultTiming = timing{
	byteSettle:     100 * time.Microsecond,
	fillDelay:      time.Millisecond,
	txSettle:       50 * time.Millisecond,
	txDeadline:     500 * time.Millisecond,
	txTrigDeadline: 1500 * time.Millisecond,
}

// Prober runs FIFO capacity and trigger measurements against named serial
// devices. Probes against the same device are serialized; a second request
// while one is in flight fails with ErrDeviceBusy rather than queueing.
type Prober struct {
	binding Binding
	timing  timing

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewProber returns a Prober resolving devices through the given Binding.
// Production callers pass SystemBinding(); tests inject a mock.
func NewProber(binding Binding) *Prober {
	return &Prober{
		binding:  binding,
		timing:   defaultTiming,
		inFlight: map[string]bool{},
	}
}

// acquire takes the per-device probe lock without blocking.
func (p *Prober) acquire(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight[name] {
		return ErrDeviceBusy
	}
	p.inFlight[name] = true
	return nil
}

func (p *Prober) release(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inFlight, name)
}

// run executes one probe body under the full discipline every measurement
// shares: resolve, exclusivity lock, idleness check, loopback session, and
// guaranteed restoration. Resolution and contention failures return before
// any register is written; once the session is entered, restoration and lock
// release happen on every path.
func (p *Prober) run(name string, probe func(h Handle, t timing) (int, error)) (int, error) {
	h, err := p.binding.Resolve(name)
	if err != nil {
		return 0, err
	}
	defer h.Close()

	if err := p.acquire(name); err != nil {
		return 0, err
	}
	defer p.release(name)

	if h.Busy() {
		return 0, ErrDeviceBusy
	}

	s := enterLoopback(h)
	defer s.exit()

	return probe(h, p.timing)
}

// RXTriggerLevel measures how many bytes must accumulate in the receive
// queue before the receive-data-available interrupt condition asserts.
func (p *Prober) RXTriggerLevel(device string) (int, error) {
	return p.run(device, rxTriggerLevel)
}

// RXFIFOSize measures how many bytes the receive queue holds before the
// hardware signals overrun.
func (p *Prober) RXFIFOSize(device string) (int, error) {
	return p.run(device, rxFIFOSize)
}

// TXFIFOSize measures the transmit queue depth by saturating it and counting
// the bytes that survive the loopback round trip.
func (p *Prober) TXFIFOSize(device string) (int, error) {
	return p.run(device, txFIFOSize)
}

// TXTriggerLevel measures the transmit-queue occupancy at which the transmit
// holding register empty interrupt condition asserts.
func (p *Prober) TXTriggerLevel(device string) (int, error) {
	return p.run(device, txTriggerLevel)
}
