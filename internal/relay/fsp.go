package relay

import (
	"errors"
	"io"
	"net"

	"groundrelay/internal/cltu"
)

// runFSP is the MOC-FSP endpoint (TCP server, default port 5558): accepts
// one client at a time, runs the CLTU streaming receiver over the
// incoming byte stream, and offers each emitted CLTU to the command
// queue, per spec.md §4.3/§4.7.
func (e *Engine) runFSP(ln net.Listener) {
	const endpoint = "moc-fsp"
	for e.running.Load() {
		conn := e.acceptOne(ln, endpoint)
		if conn == nil {
			if !e.running.Load() {
				return
			}
			continue
		}
		e.serveFSP(conn, endpoint)
		conn.Close()
		if e.running.Load() {
			e.backoff()
		}
	}
}

func (e *Engine) serveFSP(conn net.Conn, endpoint string) {
	recv := cltu.NewReceiver(e.cfg.MaxCLTUBuffer)
	buf := make([]byte, 4096)
	for e.running.Load() {
		n, err := conn.Read(buf)
		for i := 0; i < n; i++ {
			out, ferr := recv.Feed(buf[i])
			switch {
			case ferr != nil:
				e.log.Debug("cltu framing error, resynchronizing", "endpoint", endpoint, "err", ferr)
			case out != nil:
				e.metrics.received(endpoint)
				e.metrics.moved(endpoint, "in", len(out))
				if !e.command.Offer(out) {
					e.metrics.dropped(endpoint)
					e.log.Warn("command queue full, cltu dropped", "endpoint", endpoint)
				}
				e.metrics.setQueueDepth("command", e.command.Len())
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.log.Warn("fsp read error", "err", err)
			}
			return
		}
	}
}
