package relay

import "groundrelay/internal/serialport"

// runSerialUplink mirrors serveUplink but writes CLTUs to a serial radio
// modem instead of a TCP client, letting the uplink endpoint serve both
// transports against the same command queue. It runs only when
// cfg.SerialUplinkDevice is set.
func (e *Engine) runSerialUplink() {
	const endpoint = "spacecraft-uplink-serial"
	port, err := serialport.Open(e.cfg.SerialUplinkDevice, e.cfg.SerialUplinkBaud)
	if err != nil {
		e.log.Warn("serial uplink disabled", "err", err)
		return
	}
	defer port.Close()

	for e.running.Load() {
		cltu, ok := e.command.Take(e.cfg.QueuePollTimeout)
		e.metrics.setQueueDepth("command", e.command.Len())
		if !ok {
			continue
		}
		if _, err := port.Write(cltu); err != nil {
			e.log.Warn("serial uplink write error", "err", err)
			return
		}
		e.metrics.moved(endpoint, "out", len(cltu))
	}
}
