// Package config parses the groundrelay command line, following the
// flag-based option parsing str2str.go uses for its stream server (app
// name, numeric/string options bound directly to flag.*Var, a help text
// shown on -h or a parse error).
package config

import (
	"flag"
	"fmt"
	"io"

	"groundrelay/internal/relay"
)

// Options holds the parsed command-line configuration plus the ambient
// (non-relay) settings: log level/format and the metrics listener address.
type Options struct {
	Relay relay.Config

	LogLevel    string
	LogJSON     bool
	MetricsAddr string
}

var help = []string{
	"",
	" usage: groundrelay [options]",
	"",
	" Relay CCSDS TM Transfer Frames from a spacecraft downlink source to a",
	" MOC RAF consumer, and CLTUs from a MOC FSP source to a spacecraft",
	" uplink sink. Each of the four endpoints accepts one client at a time.",
	"",
	" options:",
	"   -tm-port addr        spacecraft TM source listen address (default :5555)",
	"   -raf-port addr       MOC RAF consumer listen address (default :5556)",
	"   -fsp-port addr       MOC FSP source listen address (default :5558)",
	"   -tc-port addr        spacecraft TC sink listen address (default :5557)",
	"   -frame-size n        TM/TC transfer frame length in bytes (default 1115)",
	"   -queue-capacity n    hand-off queue capacity, each direction (default 1000)",
	"   -backoff dur         reconnect delay after disconnect/error (default 1s)",
	"   -log-level level     log level: debug, info, warn, error (default info)",
	"   -log-json            emit logs as JSON instead of text",
	"   -metrics-addr addr   Prometheus /metrics listen address, empty disables",
	"   -serial dev          additionally write uplink CLTUs to this serial device",
	"   -serial-baud n       serial baud rate (default 9600)",
	"",
}

// Parse parses args (normally os.Args[1:]) into an Options, writing usage
// text to usageOut when requested or on a parse error.
func Parse(args []string, usageOut io.Writer) (Options, error) {
	fs := flag.NewFlagSet("groundrelay", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	fs.Usage = func() {
		for _, line := range help {
			fmt.Fprintln(usageOut, line)
		}
	}

	def := relay.DefaultConfig()
	opt := Options{MetricsAddr: ":9100"}

	fs.StringVar(&opt.Relay.SpacecraftTMAddr, "tm-port", def.SpacecraftTMAddr, "")
	fs.StringVar(&opt.Relay.MOCRAFAddr, "raf-port", def.MOCRAFAddr, "")
	fs.StringVar(&opt.Relay.MOCFSPAddr, "fsp-port", def.MOCFSPAddr, "")
	fs.StringVar(&opt.Relay.SpacecraftTCAddr, "tc-port", def.SpacecraftTCAddr, "")
	fs.IntVar(&opt.Relay.FrameSize, "frame-size", def.FrameSize, "")
	fs.IntVar(&opt.Relay.QueueCapacity, "queue-capacity", def.QueueCapacity, "")
	fs.IntVar(&opt.Relay.MaxCLTUBuffer, "cltubuf", def.MaxCLTUBuffer, "")
	fs.DurationVar(&opt.Relay.ReconnectBackoff, "backoff", def.ReconnectBackoff, "")
	fs.DurationVar(&opt.Relay.QueuePollTimeout, "polltimeout", def.QueuePollTimeout, "")
	fs.StringVar(&opt.LogLevel, "log-level", "info", "")
	fs.BoolVar(&opt.LogJSON, "log-json", false, "")
	fs.StringVar(&opt.MetricsAddr, "metrics-addr", opt.MetricsAddr, "")
	fs.StringVar(&opt.Relay.SerialUplinkDevice, "serial", "", "")
	fs.IntVar(&opt.Relay.SerialUplinkBaud, "serial-baud", 9600, "")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	return opt, nil
}
