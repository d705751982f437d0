package uartprobe

import (
	"golang.org/x/sys/unix"
)

// portHandle drives an 8250-family UART through /dev/port, where a one-byte
// pread/pwrite at offset N performs an x86 I/O port access at address N.
type portHandle struct {
	name    string
	devPath string
	procFS  string
	base    int64
	portFD  int // /dev/port
	ttyFD   int // device node, held with TIOCEXCL while the handle lives
	fcr     byte
	fam     family
}

var _ Handle = (*portHandle)(nil)

func (h *portHandle) ReadRegister(reg Register) byte {
	var buf [1]byte
	if _, err := unix.Pread(h.portFD, buf[:], h.base+int64(reg)); err != nil {
		return 0
	}
	return buf[0]
}

func (h *portHandle) WriteRegister(reg Register, val byte) {
	if reg == RegFCR {
		h.fcr = val
	}
	buf := [1]byte{val}
	_, _ = unix.Pwrite(h.portFD, buf[:], h.base+int64(reg))
}

func (h *portHandle) ShadowFCR() byte { return h.fcr }

func (h *portHandle) RatedFIFOSize() int { return h.fam.fifoSize }

// Busy re-checks for users outside the engine. The TIOCEXCL fd blocks new
// opens, but a descriptor opened before Resolve would still be live.
func (h *portHandle) Busy() bool {
	return len(openersOf(h.procFS, h.devPath)) > 0
}

func (h *portHandle) Close() error {
	perr := unix.Close(h.portFD)
	terr := unix.Close(h.ttyFD)
	if perr != nil {
		return perr
	}
	return terr
}
