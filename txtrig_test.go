package uartprobe

import (
	"errors"
	"testing"
)

func TestTXTriggerLevel(t *testing.T) {
	tests := []struct {
		name        string
		txTrigAfter int
		want        int
		wantErr     error
	}{
		{"asserts after 1 drained byte", 1, 1, nil},
		{"asserts after 8 drained bytes", 8, 8, nil},
		{"asserts after rated size", 16, 16, nil},
		{"never asserts", 0, 0, ErrLoopbackFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockHandle()
			m.txTrigAfter = tt.txTrigAfter
			p := testProber(m)

			got, err := p.TXTriggerLevel("ttyS0")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("trigger level = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTXTriggerLevelCapsFill(t *testing.T) {
	for _, rated := range []int{16, 64, 128} {
		m := newMockHandle()
		m.rated = rated
		m.txTrigAfter = 2
		p := testProber(m)

		if _, err := p.TXTriggerLevel("ttyS0"); err != nil {
			t.Fatal(err)
		}

		// Overfilling past rated+1 makes the hardware drop and interleave
		// transmissions; the fill must never exceed that cap.
		if m.thrWrites > rated+1 {
			t.Errorf("rated %d: %d bytes written, cap is %d", rated, m.thrWrites, rated+1)
		}
	}
}

func TestTXTriggerLevelRestoresInterruptEnable(t *testing.T) {
	m := newMockHandle()
	m.txTrigAfter = 4
	p := testProber(m)

	before := m.ier
	if _, err := p.TXTriggerLevel("ttyS0"); err != nil {
		t.Fatal(err)
	}
	if m.ier != before {
		t.Errorf("interrupt enable = %#02x after probe, want %#02x restored", m.ier, before)
	}
	if len(m.fifo) != 0 {
		t.Errorf("receive queue holds %d residual bytes, want 0", len(m.fifo))
	}
}
