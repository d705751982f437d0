package uartprobe

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// sysBinding resolves device names against the running kernel's serial core:
// family and I/O base come from the sysfs tty attributes, register access
// goes through /dev/port, and the tty device node is held open with TIOCEXCL
// for the probe's duration so normal opens fail instead of racing a probe.
type sysBinding struct {
	sysRoot string // /sys/class/tty
	devRoot string // /dev
	procFS  string // /proc, for open-file scanning
}

// SystemBinding returns the Binding backed by sysfs and /dev/port. Register
// access requires root (or CAP_SYS_RAWIO for /dev/port).
func SystemBinding() Binding {
	return &sysBinding{
		sysRoot: "/sys/class/tty",
		devRoot: "/dev",
		procFS:  "/proc",
	}
}

func (b *sysBinding) Resolve(name string) (Handle, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." {
		return nil, ErrDeviceNotFound
	}

	devPath := filepath.Join(b.devRoot, name)
	if !isCharacterDevice(devPath) {
		return nil, ErrDeviceNotFound
	}

	uartType, err := b.sysAttrInt(name, "type")
	if err != nil {
		// No serial-core attributes: not a UART the probe engine can drive.
		return nil, ErrUnsupportedDevice
	}
	if !probeCapable(uartType) {
		return nil, ErrUnsupportedDevice
	}

	// Only port-mapped devices are reachable through /dev/port. io_type 0 is
	// UPIO_PORT; memory-mapped variants would need /dev/mem and are rejected.
	if ioType, err := b.sysAttrInt(name, "io_type"); err != nil || ioType != 0 {
		return nil, ErrUnsupportedDevice
	}

	base, err := b.sysAttrHex(name, "port")
	if err != nil || base == 0 {
		return nil, ErrUnsupportedDevice
	}

	if pids := openersOf(b.procFS, devPath); len(pids) > 0 {
		return nil, ErrDeviceBusy
	}

	// Hold the node exclusively while the handle lives. A concurrent TIOCEXCL
	// holder surfaces here as EBUSY.
	ttyFD, err := unix.Open(devPath, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		if err == unix.EBUSY {
			return nil, ErrDeviceBusy
		}
		return nil, fmt.Errorf("failed to open %s: %w", devPath, err)
	}
	if err := unix.IoctlSetInt(ttyFD, unix.TIOCEXCL, 0); err != nil {
		unix.Close(ttyFD)
		return nil, fmt.Errorf("failed to set exclusive mode on %s: %w", devPath, err)
	}

	portFD, err := unix.Open("/dev/port", unix.O_RDWR, 0)
	if err != nil {
		unix.Close(ttyFD)
		return nil, fmt.Errorf("failed to open /dev/port: %w", err)
	}

	fam := families[uartType]
	return &portHandle{
		name:    name,
		devPath: devPath,
		procFS:  b.procFS,
		base:    base,
		portFD:  portFD,
		ttyFD:   ttyFD,
		fcr:     fam.defaultFCR,
		fam:     fam,
	}, nil
}

// sysAttrInt reads a decimal sysfs attribute for the named tty.
func (b *sysBinding) sysAttrInt(name, attr string) (int, error) {
	raw, err := os.ReadFile(filepath.Join(b.sysRoot, name, attr))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(raw)))
}

// sysAttrHex reads a hexadecimal sysfs attribute (e.g. port base "0x3f8").
func (b *sysBinding) sysAttrHex(name, attr string) (int64, error) {
	raw, err := os.ReadFile(filepath.Join(b.sysRoot, name, attr))
	if err != nil {
		return 0, err
	}
	s := strings.TrimPrefix(strings.TrimSpace(string(raw)), "0x")
	return strconv.ParseInt(s, 16, 64)
}

// openersOf scans /proc/<pid>/fd for descriptors referring to the device
// node and returns the owning pids, excluding this process. Unreadable proc
// entries (other users' processes without privilege) are skipped; with the
// privileges required for /dev/port access the scan sees everything.
func openersOf(procFS, devPath string) []int {
	self := os.Getpid()
	entries, err := os.ReadDir(procFS)
	if err != nil {
		return nil
	}

	var pids []int
	for _, e := range entries {
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid == self {
			continue
		}
		fdDir := filepath.Join(procFS, e.Name(), "fd")
		fds, err := os.ReadDir(fdDir)
		if err != nil {
			continue
		}
		for _, fd := range fds {
			target, err := os.Readlink(filepath.Join(fdDir, fd.Name()))
			if err != nil {
				continue
			}
			if target == devPath {
				pids = append(pids, pid)
				break
			}
		}
	}
	return pids
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
