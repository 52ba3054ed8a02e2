// Package udp receives N1MM broadcasts and feeds decoded events to a sink.
package udp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"contestmon/event"
	"contestmon/metrics"
	"contestmon/n1mm"
)

const (
	DefaultMaxDatagramSize = 8192
	DefaultPollInterval    = 500 * time.Millisecond
)

// Sink receives every successfully decoded event. state.Store is the usual one.
type Sink interface {
	Apply(ev event.Event) error
}

type Options struct {
	// MaxDatagramSize is the receive buffer size. Anything larger is cut
	// short by the kernel and will fail to decode.
	MaxDatagramSize int
	// PollInterval bounds each read so a stop request is seen promptly.
	PollInterval time.Duration
}

// TransportError means the socket itself failed and the loop has ended.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("udp %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Listener owns an already bound socket and runs the receive loop.
type Listener struct {
	conn   net.PacketConn
	sink   Sink
	opts   Options
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
	done    chan struct{}
	err     error
}

func NewListener(conn net.PacketConn, sink Sink, opts Options, logger *slog.Logger) *Listener {
	if opts.MaxDatagramSize <= 0 {
		opts.MaxDatagramSize = DefaultMaxDatagramSize
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Listener{
		conn:   conn,
		sink:   sink,
		opts:   opts,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Start runs the receive loop on its own goroutine. Calling it again does
// nothing.
func (l *Listener) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return
	}
	l.started = true

	go func() {
		err := l.Run(l.ctx)

		l.mu.Lock()
		l.err = err
		l.mu.Unlock()

		close(l.done)
	}()
}

// RequestStop asks the loop to exit and returns without waiting. The loop
// notices within one poll interval.
func (l *Listener) RequestStop() {
	l.cancel()
}

// Wait blocks until the loop started by Start has exited. It returns nil
// after a requested stop and a *TransportError if the socket failed.
func (l *Listener) Wait() error {
	l.mu.Lock()
	started := l.started
	l.mu.Unlock()

	if !started {
		return nil
	}

	<-l.done

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.err
}

// Run is the receive loop. It returns nil when ctx is done and a
// *TransportError when the socket can no longer be read.
func (l *Listener) Run(ctx context.Context) error {
	buf := make([]byte, l.opts.MaxDatagramSize)

	l.logger.Info("listening for broadcasts", slog.String("addr", addrString(l.conn.LocalAddr())))

	for ctx.Err() == nil {
		if err := l.conn.SetReadDeadline(time.Now().Add(l.opts.PollInterval)); err != nil {
			if ctx.Err() != nil {
				break
			}
			return &TransportError{Op: "set deadline", Err: err}
		}

		n, from, err := l.conn.ReadFrom(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}

			if errors.Is(err, net.ErrClosed) {
				if ctx.Err() != nil {
					break
				}
				l.logger.Error("socket closed", slog.Any("error", err))
				return &TransportError{Op: "read", Err: err}
			}

			metrics.FramesDropped.WithLabelValues("read_error").Inc()
			l.logger.Warn("error reading datagram", slog.Any("error", err))
			continue
		}

		if n == len(buf) {
			l.logger.Warn("datagram filled the buffer and may be truncated",
				slog.Int("size", n), slog.String("from", addrString(from)))
		}

		l.handle(buf[:n], from)
	}

	l.logger.Info("listener stopped")

	return nil
}

func (l *Listener) handle(data []byte, from net.Addr) {
	metrics.DatagramBytes.Add(float64(len(data)))

	ev, err := n1mm.Decode(data)
	if err != nil {
		reason := "decode"
		var de *n1mm.DecodeError
		if errors.As(err, &de) {
			reason = de.Reason.String()
		}

		metrics.FramesDropped.WithLabelValues(reason).Inc()
		l.logger.Warn("dropping datagram", slog.String("from", addrString(from)), slog.Any("error", err))
		return
	}

	metrics.FramesDecoded.WithLabelValues(ev.Kind().String()).Inc()

	if u, ok := ev.(event.Unrecognized); ok {
		l.logger.Info("unexpected frame", slog.String("tag", u.Tag), slog.String("from", addrString(from)))
	} else {
		l.logger.Debug("frame", slog.String("kind", ev.Kind().String()), slog.String("from", addrString(from)))
	}

	if err := l.sink.Apply(ev); err != nil {
		metrics.FramesDropped.WithLabelValues("apply").Inc()
		l.logger.Warn("could not apply event", slog.String("kind", ev.Kind().String()), slog.Any("error", err))
	}
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}
