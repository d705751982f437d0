package uartprobe

import (
	"errors"
	"testing"
	"time"
)

func TestTXFIFOSize(t *testing.T) {
	tests := []struct {
		name      string
		echoLimit int
		want      int
		wantErr   error
	}{
		{"16 byte queue", 16, 16, nil},
		{"64 byte queue", 64, 64, nil},
		{"single byte echoed", 1, 1, nil},
		{"everything echoed", -1, maxFIFOProbe, nil},
		{"nothing echoed is loopback failure, not size 0", 0, 0, ErrLoopbackFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockHandle()
			m.echoLimit = tt.echoLimit
			p := testProber(m)

			got, err := p.TXFIFOSize("ttyS0")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("fifo size = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTXFIFOSizeStopsEarlyWhenAllBytesReturn(t *testing.T) {
	m := newMockHandle()
	p := testProber(m) // unlimited echo: every byte sent comes back

	start := time.Now()
	got, err := p.TXFIFOSize("ttyS0")
	elapsed := time.Since(start)

	if err != nil {
		t.Fatal(err)
	}
	if got != maxFIFOProbe {
		t.Errorf("fifo size = %d, want %d", got, maxFIFOProbe)
	}
	// With the full count echoed the poll must stop at the count, not ride
	// out its deadline.
	if elapsed >= fastTiming.txDeadline {
		t.Errorf("probe took %v, expected early stop before the %v deadline", elapsed, fastTiming.txDeadline)
	}
}
