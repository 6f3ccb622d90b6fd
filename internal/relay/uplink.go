package relay

import "net"

// runUplink is the spacecraft-uplink endpoint (TCP server, default port
// 5557): accepts one client at a time and writes every CLTU taken off the
// command queue, byte-exact (start sequence, encoded data, and tail
// included) and in FIFO order, per spec.md §4.7.
func (e *Engine) runUplink(ln net.Listener) {
	const endpoint = "spacecraft-uplink"
	for e.running.Load() {
		conn := e.acceptOne(ln, endpoint)
		if conn == nil {
			if !e.running.Load() {
				return
			}
			continue
		}
		e.serveUplink(conn, endpoint)
		conn.Close()
		if e.running.Load() {
			e.backoff()
		}
	}
}

func (e *Engine) serveUplink(conn net.Conn, endpoint string) {
	for e.running.Load() {
		cltu, ok := e.command.Take(e.cfg.QueuePollTimeout)
		e.metrics.setQueueDepth("command", e.command.Len())
		if !ok {
			continue
		}
		if _, err := conn.Write(cltu); err != nil {
			e.log.Warn("uplink write error", "err", err)
			return
		}
		e.metrics.moved(endpoint, "out", len(cltu))
	}
}
