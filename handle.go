package uartprobe

// Handle is a borrowed reference to a concrete serial port capable of raw
// register access. Implementations are owned by the Binding that resolved
// them; the probe engine holds a Handle only for the duration of one probe
// and must Close it when done.
//
// ReadRegister and WriteRegister are deliberately side-effect primitives with
// no error return: on the 8250 family a register access cannot fail once the
// port is mapped, and the mock used in tests models hardware the same way.
type Handle interface {
	ReadRegister(reg Register) byte
	WriteRegister(reg Register, val byte)

	// ShadowFCR returns the last value written to the FIFO control register.
	// FCR is write-only on most variants, so restoration depends on this
	// software shadow rather than a hardware read-back.
	ShadowFCR() byte

	// RatedFIFOSize returns the FIFO depth the device family is rated for.
	// This is static capability data, not a measurement.
	RatedFIFOSize() int

	// Busy reports whether the device currently has users outside the probe
	// engine. A busy device must not be reconfigured.
	Busy() bool

	Close() error
}

// family describes the static capabilities of a known 8250-compatible UART
// family: the rated FIFO depth and the FIFO control value its driver programs
// at startup, which seeds the FCR shadow on variants where FCR cannot be read
// back.
type family struct {
	name       string
	fifoSize   int
	defaultFCR byte
}

// families maps the numeric UART type exposed by the serial core (sysfs
// "type" attribute) to its rated capabilities. Types without a trigger-
// controllable FIFO resolve as unsupported.
var families = map[int]family{
	1:  {name: "8250", fifoSize: 1, defaultFCR: 0x00},
	2:  {name: "16450", fifoSize: 1, defaultFCR: 0x00},
	3:  {name: "16550", fifoSize: 1, defaultFCR: 0x00},
	4:  {name: "16550A", fifoSize: 16, defaultFCR: fcrEnableFIFO | 0x80},
	6:  {name: "16650", fifoSize: 32, defaultFCR: fcrEnableFIFO | 0x80},
	7:  {name: "16650V2", fifoSize: 32, defaultFCR: fcrEnableFIFO | 0x80},
	8:  {name: "16750", fifoSize: 64, defaultFCR: fcrEnableFIFO | 0x80},
	9:  {name: "Startech", fifoSize: 1, defaultFCR: 0x00},
	10: {name: "16C950", fifoSize: 128, defaultFCR: fcrEnableFIFO | 0x80},
	12: {name: "16654", fifoSize: 64, defaultFCR: fcrEnableFIFO | 0x80},
	13: {name: "16850", fifoSize: 128, defaultFCR: fcrEnableFIFO | 0x80},
}

// probeCapable reports whether a UART type has an actual FIFO to measure.
// Single-byte holding register families (original 8250, 16450, plain 16550)
// have nothing to probe and are rejected at resolve time.
func probeCapable(uartType int) bool {
	f, ok := families[uartType]
	return ok && f.fifoSize > 1
}

// Binding resolves device names to controllable port handles. The production
// implementation reads sysfs and /dev/port; tests inject a Binding returning
// mock handles.
type Binding interface {
	Resolve(name string) (Handle, error)
}
