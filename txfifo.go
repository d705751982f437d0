package uartprobe

import "time"

// txFIFOSize saturates the transmit queue with back-to-back writes, letting
// bytes past the hardware depth drop, then counts how many come back over
// loopback. The surviving count is the transmit queue depth.
func txFIFOSize(h Handle, t timing) (int, error) {
	sent := 0
	for i := 0; i < maxFIFOProbe; i++ {
		h.WriteRegister(RegTHR, fillByte)
		sent++
	}

	// Let the shifter and loopback path settle before counting.
	time.Sleep(t.txSettle)

	received := 0
	pollLoop{deadline: t.txDeadline}.run(func(int) bool {
		if h.ReadRegister(RegLSR)&lsrDataReady != 0 {
			if h.ReadRegister(RegRBR) == fillByte {
				received++
			}
		}
		return received >= sent
	})

	// Zero echoed bytes means the loopback never produced data, not that the
	// device has no transmit queue.
	if received == 0 {
		return 0, ErrLoopbackFailed
	}
	return received, nil
}
