// Package serialport opens a radio-modem serial line as an
// io.ReadWriteCloser, generalized from stream.go's SerialComm/OpenSerial
// (which wraps github.com/tarm/goserial) onto its actively-maintained
// fork, github.com/tarm/serial.
package serialport

import (
	"fmt"
	"io"
	"sort"

	"github.com/tarm/serial"
)

var standardBauds = []int{300, 600, 1200, 2400, 4800, 9600, 19200, 38400,
	57600, 115200, 230400, 460800, 921600}

// Port wraps an open serial device, tracking its last I/O error the way
// SerialComm.err does, so a caller can ask StateSerial-style whether the
// link is healthy without inspecting individual Read/Write errors.
type Port struct {
	rwc     io.ReadWriteCloser
	lastErr error
}

// Open opens device at the given baud rate. An unrecognized baud rate is
// rejected up front, mirroring OpenSerial's sort.SearchInts bounds check.
func Open(device string, baud int) (*Port, error) {
	i := sort.SearchInts(standardBauds, baud)
	if i >= len(standardBauds) || standardBauds[i] != baud {
		return nil, fmt.Errorf("serialport: unsupported baud rate %d", baud)
	}
	cfg := &serial.Config{Name: device, Baud: baud}
	s, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", device, err)
	}
	return &Port{rwc: s}, nil
}

func (p *Port) Read(buf []byte) (int, error) {
	n, err := p.rwc.Read(buf)
	p.lastErr = err
	return n, err
}

func (p *Port) Write(buf []byte) (int, error) {
	n, err := p.rwc.Write(buf)
	p.lastErr = err
	return n, err
}

func (p *Port) Close() error {
	return p.rwc.Close()
}

// Healthy reports whether the most recent Read or Write succeeded.
func (p *Port) Healthy() bool {
	return p.lastErr == nil
}
