package relay

import (
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"groundrelay/internal/queue"
)

// Engine is the bidirectional relay: four single-client TCP endpoints and
// two bounded FIFO queues, structured after the teacher codec's
// long-lived-goroutine-per-endpoint server shape (src/rtksvr.go's
// rtksvrthread, joined via sync.WaitGroup from RtkSvrStart/RtkSvrStop).
type Engine struct {
	cfg     Config
	log     *slog.Logger
	metrics *Metrics

	telemetry *queue.Queue // spacecraft TM -> MOC RAF
	command   *queue.Queue // MOC FSP -> spacecraft TC

	running atomic.Bool
	wg      sync.WaitGroup

	mu        sync.Mutex
	listeners []net.Listener
}

// New constructs an Engine. A nil logger defaults to slog.Default(); a nil
// registerer yields unregistered (but still live) metrics.
func New(cfg Config, log *slog.Logger, reg prometheus.Registerer) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		cfg:       cfg,
		log:       log,
		metrics:   NewMetrics(reg),
		telemetry: queue.New(cfg.QueueCapacity),
		command:   queue.New(cfg.QueueCapacity),
	}
}

// Start binds all four TCP listeners and launches one goroutine per
// endpoint. It returns an error, binding nothing further, if any listener
// fails to bind — spec.md §6's "non-zero [exit] if no endpoint could
// bind".
func (e *Engine) Start() error {
	e.running.Store(true)

	endpoints := []struct {
		name string
		addr string
		run  func(net.Listener)
	}{
		{"spacecraft-downlink", e.cfg.SpacecraftTMAddr, e.runDownlink},
		{"moc-raf", e.cfg.MOCRAFAddr, e.runRAF},
		{"moc-fsp", e.cfg.MOCFSPAddr, e.runFSP},
		{"spacecraft-uplink", e.cfg.SpacecraftTCAddr, e.runUplink},
	}

	for _, ep := range endpoints {
		ln, err := net.Listen("tcp", ep.addr)
		if err != nil {
			e.closeListeners()
			e.running.Store(false)
			return err
		}
		e.log.Info("endpoint listening", "endpoint", ep.name, "addr", ln.Addr().String())
		e.addListener(ln)

		e.wg.Add(1)
		run := ep.run
		ln := ln
		go func() {
			defer e.wg.Done()
			run(ln)
		}()
	}

	if e.cfg.SerialUplinkDevice != "" {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.runSerialUplink()
		}()
	}
	return nil
}

// Stop clears the running flag, closes every listener (unblocking any
// Accept/Read/Write in progress), and waits for all four endpoint
// goroutines to exit.
func (e *Engine) Stop() {
	e.running.Store(false)
	e.closeListeners()
	e.wg.Wait()
}

func (e *Engine) addListener(ln net.Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, ln)
}

func (e *Engine) closeListeners() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ln := range e.listeners {
		ln.Close()
	}
}

// acceptOne accepts a single client connection, returning nil if the
// engine has been asked to stop or the listener errored for another
// reason (logged by the caller).
func (e *Engine) acceptOne(ln net.Listener, endpoint string) net.Conn {
	conn, err := ln.Accept()
	if err != nil {
		if e.running.Load() {
			e.log.Warn("accept error", "endpoint", endpoint, "err", err)
		}
		return nil
	}
	return conn
}

func (e *Engine) backoff() {
	time.Sleep(e.cfg.ReconnectBackoff)
}

// readFull reads exactly len(buf) bytes from r, the frame-aligned read
// loop spec.md §4.7 requires for fixed-size TM frames.
func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}
