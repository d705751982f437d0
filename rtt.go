package uartprobe

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// RTTConfig holds the configuration for a round-trip latency measurement.
type RTTConfig struct {
	BaudRate  int
	ProbeByte byte
	Timeout   time.Duration
}

// RTTOption is a functional option for configuring a round-trip measurement
type RTTOption func(*RTTConfig) error

// DefaultRTTConfig returns a configuration with sensible defaults
func DefaultRTTConfig() RTTConfig {
	return RTTConfig{
		BaudRate:  19200,
		ProbeByte: 0xa5,
		Timeout:   time.Second,
	}
}

// WithRTTBaudRate sets the baud rate used for the measurement
func WithRTTBaudRate(rate int) RTTOption {
	return func(c *RTTConfig) error {
		if _, err := rttBaudFlag(rate); err != nil {
			return err
		}
		c.BaudRate = rate
		return nil
	}
}

// WithRTTTimeout sets how long to wait for the echoed byte
func WithRTTTimeout(timeout time.Duration) RTTOption {
	return func(c *RTTConfig) error {
		if timeout <= 0 {
			return ErrInvalidConfig
		}
		c.Timeout = timeout
		return nil
	}
}

// WithProbeByte sets the byte value sent around the loop
func WithProbeByte(b byte) RTTOption {
	return func(c *RTTConfig) error {
		c.ProbeByte = b
		return nil
	}
}

// rttBaudFlag converts an integer baud rate to the unix constant
func rttBaudFlag(rate int) (uint32, error) {
	switch rate {
	case 1200:
		return unix.B1200, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	default:
		return 0, ErrInvalidBaudRate
	}
}

// MeasureRoundTrip sends a single byte out the named device and measures the
// time until it is read back. Unlike the register probes this is a plain
// open/configure/write/wait/read sequence through the tty layer. It never
// touches device registers, so it carries no hardware-state hazard and works
// on any serial device with an external loopback or echoing peer.
func MeasureRoundTrip(device string, opts ...RTTOption) (time.Duration, error) {
	config := DefaultRTTConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return 0, err
		}
	}

	// O_SYNC so the write returns only once handed to the hardware;
	// buffered writes would start the clock too early.
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY|unix.O_SYNC, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", device, err)
	}
	defer unix.Close(fd)

	if err := configureRaw(fd, config.BaudRate); err != nil {
		return 0, err
	}

	// Drop anything queued from before the measurement.
	if err := unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIOFLUSH); err != nil {
		return 0, fmt.Errorf("failed to flush %s: %w", device, err)
	}

	start := time.Now()
	if _, err := unix.Write(fd, []byte{config.ProbeByte}); err != nil {
		return 0, fmt.Errorf("failed to write probe byte: %w", err)
	}

	deadline := time.Now().Add(config.Timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, ErrReadTimeout
		}

		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(remaining.Milliseconds())+1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("poll failed: %w", err)
		}
		if n == 0 {
			return 0, ErrReadTimeout
		}

		buf := make([]byte, 1)
		if _, err := unix.Read(fd, buf); err != nil {
			return 0, fmt.Errorf("read failed: %w", err)
		}
		elapsed := time.Since(start)
		if buf[0] != config.ProbeByte {
			return 0, ErrEchoMismatch
		}
		return elapsed, nil
	}
}

// configureRaw puts the descriptor into raw 8N1 mode at the given baud rate:
// no input/output/line processing, no flow control, non-blocking reads.
func configureRaw(fd int, baudRate int) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %w", err)
	}

	baud, err := rttBaudFlag(baudRate)
	if err != nil {
		return err
	}

	termios.Cflag = unix.CS8 | unix.CREAD | unix.CLOCAL
	termios.Iflag = 0
	termios.Oflag = 0
	termios.Lflag = 0
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 0

	termios.Cflag = (termios.Cflag &^ unix.CBAUD) | baud
	termios.Ispeed = baud
	termios.Ospeed = baud

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %w", err)
	}
	return nil
}
