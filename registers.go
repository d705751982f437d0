package uartprobe

// Register identifies an 8250-family register by its offset from the port
// base. Offsets 0-2 are overloaded: the meaning depends on the access
// direction and, for the divisor latch, on the DLAB bit in the line control
// register.
type Register uint8

const (
	RegRBR Register = 0 // receive buffer (read)
	RegTHR Register = 0 // transmit holding (write)
	RegDLL Register = 0 // divisor latch low (DLAB=1)
	RegIER Register = 1 // interrupt enable
	RegDLM Register = 1 // divisor latch high (DLAB=1)
	RegIIR Register = 2 // interrupt identification (read)
	RegFCR Register = 2 // FIFO control (write)
	RegLCR Register = 3 // line control
	RegMCR Register = 4 // modem control
	RegLSR Register = 5 // line status
	RegMSR Register = 6 // modem status
	RegSCR Register = 7 // scratch
)

// Interrupt enable register bits.
const (
	ierRecvDataAvail = 0x01 // receive data available interrupt
	ierTHREmpty      = 0x02 // transmit holding register empty interrupt
)

// Interrupt identification register bits. Bit 0 is set when NO interrupt is
// pending; bits 1-3 encode the source of the highest-priority pending one.
const (
	iirNoInterrupt   = 0x01
	iirSourceMask    = 0x0e
	iirRecvDataAvail = 0x04
	iirTHREmpty      = 0x02
)

// FIFO control register bits.
const (
	fcrEnableFIFO = 0x01
	fcrClearRecv  = 0x02
	fcrClearXmit  = 0x04
)

// Line control register values. Setting DLAB switches offsets 0/1 to the
// divisor latch pair; WLEN8 is the plain 8-data-bit no-parity operating mode.
const (
	lcrDLAB     = 0x80
	lcrWordLen8 = 0x03
)

// Modem control register bits.
const (
	mcrLoopback = 0x10
)

// Line status register bits.
const (
	lsrDataReady    = 0x01
	lsrOverrunError = 0x02
)
