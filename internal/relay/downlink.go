package relay

import (
	"errors"
	"io"
	"net"
)

// runDownlink is the spacecraft-downlink endpoint (TCP server, default
// port 5555): accepts one client at a time, reads exactly FrameSize bytes
// in a tight accumulator loop, and offers each complete TM frame to the
// telemetry queue without ever blocking the socket reader (spec.md
// §4.7).
func (e *Engine) runDownlink(ln net.Listener) {
	const endpoint = "spacecraft-downlink"
	for e.running.Load() {
		conn := e.acceptOne(ln, endpoint)
		if conn == nil {
			if !e.running.Load() {
				return
			}
			continue
		}
		e.serveDownlink(conn, endpoint)
		conn.Close()
		if e.running.Load() {
			e.backoff()
		}
	}
}

func (e *Engine) serveDownlink(conn net.Conn, endpoint string) {
	buf := make([]byte, e.cfg.FrameSize)
	for e.running.Load() {
		if err := readFull(conn, buf); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				e.log.Warn("downlink read error", "err", err)
			}
			return
		}
		e.metrics.received(endpoint)
		e.metrics.moved(endpoint, "in", len(buf))

		frame := make([]byte, len(buf))
		copy(frame, buf)
		if !e.telemetry.Offer(frame) {
			e.metrics.dropped(endpoint)
			e.log.Warn("telemetry queue full, frame dropped", "endpoint", endpoint)
		}
		e.metrics.setQueueDepth("telemetry", e.telemetry.Len())
	}
}
