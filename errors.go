package uartprobe

import "errors"

// Predefined error types for robust error handling
var (
	// Resolution errors: reported before any register is touched.
	ErrDeviceNotFound    = errors.New("serial device not found")
	ErrUnsupportedDevice = errors.New("device lacks register access or loopback capability")

	// Contention errors: the device is open elsewhere or a probe is already
	// running against it. Also reported before any register is touched.
	ErrDeviceBusy = errors.New("serial device busy or opened by another user")

	// Inconclusive measurement results. The hardware has been restored when
	// any of these is returned; they describe the observation, not a fault.
	ErrNoTriggerDetected  = errors.New("no interrupt observed within trigger search bound")
	ErrOverrunNotDetected = errors.New("overflow not detected")
	ErrLoopbackFailed     = errors.New("loopback failed or no data received")

	// Round-trip measurement errors
	ErrReadTimeout  = errors.New("timed out waiting for echoed byte")
	ErrEchoMismatch = errors.New("echoed byte does not match transmitted byte")

	ErrInvalidBaudRate = errors.New("invalid baud rate")
	ErrInvalidConfig   = errors.New("invalid round-trip configuration")
)
