// Package uartprobe empirically characterizes the FIFO capacity and interrupt
// trigger thresholds of 8250-family UARTs by exercising them in internal
// loopback mode and observing timing and status feedback. No static register
// exposes this information.
//
// # Probing
//
// Each probe resolves a device, takes an exclusive per-device lock, snapshots
// the mutable configuration registers, reconfigures the port for loopback,
// runs its measurement loop, and restores the snapshot before returning. The
// restore step runs on every path, including inconclusive measurements, so a
// probe can never leave the UART misconfigured.
//
//	prober := uartprobe.NewProber(uartprobe.SystemBinding())
//
//	trig, err := prober.RXTriggerLevel("ttyS0")  // RX interrupt trigger level
//	size, err := prober.RXFIFOSize("ttyS0")      // RX queue depth via overrun
//	size, err = prober.TXFIFOSize("ttyS0")       // TX queue depth via loopback
//	trig, err = prober.TXTriggerLevel("ttyS0")   // THR-empty trigger level
//
// Probing reconfigures live hardware, so it refuses devices that are open
// elsewhere and requires access to /dev/port (root or CAP_SYS_RAWIO).
//
// # Round-trip latency
//
// MeasureRoundTrip is a companion tool with no hardware-state hazard: it
// writes one byte through the ordinary tty layer and times the echo.
//
//	rtt, err := uartprobe.MeasureRoundTrip("/dev/ttyS0",
//	    uartprobe.WithRTTBaudRate(19200),
//	    uartprobe.WithRTTTimeout(time.Second),
//	)
//
// # Port Discovery
//
// List candidate devices and their probe capability:
//
//	ports, err := uartprobe.ListPorts()
//	for _, p := range ports {
//	    fmt.Printf("%s: %s fifo=%d capable=%v\n",
//	        p.Path, p.Family, p.RatedFIFOSize, p.ProbeCapable)
//	}
//
// # Error Handling
//
// The library provides specific error types for robust error handling:
//
//	var (
//	    ErrDeviceNotFound     // no such device
//	    ErrUnsupportedDevice  // no register access or loopback capability
//	    ErrDeviceBusy         // open elsewhere, or a probe already in flight
//	    ErrNoTriggerDetected  // RX trigger search bound exhausted
//	    ErrOverrunNotDetected // RX queue never overran within the fill bound
//	    ErrLoopbackFailed     // loopback produced no data
//	    // ... and more
//	)
//
// Use errors.Is() for error type checking:
//
//	if errors.Is(err, uartprobe.ErrDeviceBusy) {
//	    // retry later
//	}
//
// Resolution and contention errors are reported before any register is
// written. Inconclusive measurements are results, not faults: the hardware
// has already been restored when they are returned.
//
// # Platform Support
//
// The probe engine is Linux-only and drives port-mapped 8250-compatible UARTs
// through sysfs and /dev/port. Round-trip measurement and port listing work
// with any tty serial device.
package uartprobe
