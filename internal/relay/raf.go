package relay

import "net"

// runRAF is the MOC-RAF endpoint (TCP server, default port 5556): accepts
// one client at a time and writes every TM frame taken off the telemetry
// queue, byte-exact and in FIFO order, per spec.md §4.7.
func (e *Engine) runRAF(ln net.Listener) {
	const endpoint = "moc-raf"
	for e.running.Load() {
		conn := e.acceptOne(ln, endpoint)
		if conn == nil {
			if !e.running.Load() {
				return
			}
			continue
		}
		e.serveRAF(conn, endpoint)
		conn.Close()
		if e.running.Load() {
			e.backoff()
		}
	}
}

func (e *Engine) serveRAF(conn net.Conn, endpoint string) {
	for e.running.Load() {
		frame, ok := e.telemetry.Take(e.cfg.QueuePollTimeout)
		e.metrics.setQueueDepth("telemetry", e.telemetry.Len())
		if !ok {
			continue
		}
		if _, err := conn.Write(frame); err != nil {
			e.log.Warn("raf write error", "err", err)
			return
		}
		e.metrics.moved(endpoint, "out", len(frame))
	}
}
