package uartprobe

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// PortInfo describes one serial device and whether the probe engine can
// drive it.
type PortInfo struct {
	Path          string // device node, e.g. /dev/ttyS0
	Name          string // node name, e.g. ttyS0
	Family        string // UART family name, empty when unknown
	PortBase      int64  // I/O port base, 0 when not port-mapped
	IRQ           int
	RatedFIFOSize int
	ProbeCapable  bool // register access + loopback + a real FIFO
}

// Patterns for devices worth listing. Loopback probing only works on
// port-mapped 8250-family ports (ttyS*), but the round-trip tool accepts any
// of these, so the listing covers them all and marks capability per device.
var portPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ttyS\d+$`),   // standard serial ports
	regexp.MustCompile(`^ttyUSB\d+$`), // USB serial adapters
	regexp.MustCompile(`^ttyACM\d+$`), // USB CDC/ACM devices
	regexp.MustCompile(`^ttyAMA\d+$`), // ARM/Raspberry Pi serial
}

// ListPorts returns the serial devices present on the system, annotated with
// the sysfs attributes the probe engine cares about. Devices whose serial
// core attributes are missing or that are not port-mapped are listed with
// ProbeCapable false.
func ListPorts() ([]PortInfo, error) {
	return listPorts("/sys/class/tty", "/dev")
}

func listPorts(sysRoot, devRoot string) ([]PortInfo, error) {
	entries, err := os.ReadDir(devRoot)
	if err != nil {
		return nil, err
	}

	b := &sysBinding{sysRoot: sysRoot, devRoot: devRoot}

	var ports []PortInfo
	for _, entry := range entries {
		name := entry.Name()

		matched := false
		for _, pattern := range portPatterns {
			if pattern.MatchString(name) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		path := filepath.Join(devRoot, name)
		if !isCharacterDevice(path) {
			continue
		}

		ports = append(ports, portInfoFor(b, name, path))
	}

	sort.Slice(ports, func(i, j int) bool { return ports[i].Path < ports[j].Path })
	return ports, nil
}

// portInfoFor fills in the sysfs-derived fields; absence of any attribute
// just degrades the entry to not probe-capable.
func portInfoFor(b *sysBinding, name, path string) PortInfo {
	info := PortInfo{Path: path, Name: name}

	uartType, err := b.sysAttrInt(name, "type")
	if err != nil {
		return info
	}
	if fam, ok := families[uartType]; ok {
		info.Family = fam.name
		info.RatedFIFOSize = fam.fifoSize
	}
	if irq, err := b.sysAttrInt(name, "irq"); err == nil {
		info.IRQ = irq
	}

	ioType, err := b.sysAttrInt(name, "io_type")
	if err != nil || ioType != 0 {
		return info
	}
	base, err := b.sysAttrHex(name, "port")
	if err != nil {
		return info
	}

	info.PortBase = base
	info.ProbeCapable = probeCapable(uartType) && base != 0
	return info
}
