package uartprobe

import (
	"errors"
	"testing"
)

func TestRXTriggerLevel(t *testing.T) {
	tests := []struct {
		name      string
		triggerAt int
		want      int
		wantErr   error
	}{
		{"trigger at 1", 1, 1, nil},
		{"trigger at 8 (16550A default)", 8, 8, nil},
		{"trigger at 14", 14, 14, nil},
		{"trigger at bound", 255, 255, nil},
		{"no trigger", 0, 0, ErrNoTriggerDetected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockHandle()
			m.rxTriggerAt = tt.triggerAt
			p := testProber(m)

			got, err := p.RXTriggerLevel("ttyS0")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("trigger level = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRXTriggerLevelBoundIsExact(t *testing.T) {
	m := newMockHandle()
	p := testProber(m)

	if _, err := p.RXTriggerLevel("ttyS0"); !errors.Is(err, ErrNoTriggerDetected) {
		t.Fatalf("err = %v, want ErrNoTriggerDetected", err)
	}
	if m.thrWrites != maxTriggerSearch {
		t.Errorf("transmitted %d bytes, want exactly %d", m.thrWrites, maxTriggerSearch)
	}
}

func TestRXTriggerLevelCleansUp(t *testing.T) {
	m := newMockHandle()
	m.rxTriggerAt = 8
	p := testProber(m)

	if _, err := p.RXTriggerLevel("ttyS0"); err != nil {
		t.Fatal(err)
	}

	// The receive interrupt must be disarmed and the queue drained before
	// restoration, so no stale byte or interrupt leaks past the probe.
	if len(m.fifo) != 0 {
		t.Errorf("receive queue holds %d residual bytes, want 0", len(m.fifo))
	}

	if m.ier != 0 {
		t.Errorf("interrupt enable = %#02x after probe, want disarmed (0)", m.ier)
	}
}
