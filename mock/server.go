package mock

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hse-go/hses"
)

// Server is a deterministic stand-in for the controller side of the
// protocol: a dual-port UDP listener dispatching through a
// HandlerRegistry against a single shared State (§4.4).
type Server struct {
	logger    hses.LeveledLogger
	state     *State
	registry  *HandlerRegistry
	limiter   *rate.Limiter
	metrics   *metricSet
	robotPort int
	filePort  int

	robotConn *net.UDPConn
	fileConn  *net.UDPConn

	dropRemaining atomic.Int32

	closeOnce sync.Once
	closeCh   chan struct{}
	wg        sync.WaitGroup
}

// Option configures a Server at construction.
type Option func(*Server)

// WithLogger overrides the default logger.
func WithLogger(l hses.LeveledLogger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRateLimit caps handled datagrams per second across both ports,
// modelling the real controller's bounded request throughput. Datagrams
// beyond the limit are dropped without a reply, exactly like a malformed
// frame. For an exact drop sequence, use DropNextDatagrams.
func WithRateLimit(ratePerSecond float64, burst int) Option {
	return func(s *Server) { s.limiter = rate.NewLimiter(rate.Limit(ratePerSecond), burst) }
}

// WithMetrics registers request/error counters on reg. Off by default.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) { s.metrics = newMetricSet(reg) }
}

// WithPorts overrides the robot/file ports NewServer binds, in place of
// the real controller's fixed 10040/10041. Pass 0 for either to let the
// kernel assign a free ephemeral port, which RobotAddr/FileAddr then
// report back — the way a test suite isolates its own server instance
// instead of racing other packages for the fixed ports over
// SO_REUSEPORT.
func WithPorts(robotPort, filePort int) Option {
	return func(s *Server) { s.robotPort, s.filePort = robotPort, filePort }
}

// NewServer binds host's robot and file ports (10040/10041 by default,
// see WithPorts) and starts serving. state is taken as-is; callers seed
// it before or after construction (it's safe to mutate concurrently
// through its own accessors).
func NewServer(host string, state *State, opts ...Option) (*Server, error) {
	s := &Server{
		logger:    hses.NewLogger("hses-mock"),
		state:     state,
		registry:  NewHandlerRegistry(),
		robotPort: hses.RobotPort,
		filePort:  hses.FilePort,
		closeCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	registerDefaultHandlers(s.registry)

	robotConn, err := listenReusable(host, s.robotPort)
	if err != nil {
		return nil, fmt.Errorf("mock: robot port: %w", err)
	}
	fileConn, err := listenReusable(host, s.filePort)
	if err != nil {
		robotConn.Close()
		return nil, fmt.Errorf("mock: file port: %w", err)
	}
	s.robotConn = robotConn
	s.fileConn = fileConn

	s.wg.Add(2)
	go s.serveLoop(s.robotConn, hses.DivisionRobot)
	go s.serveLoop(s.fileConn, hses.DivisionFile)

	return s, nil
}

// Registry exposes the handler registry so tests can install or override
// handlers for specific command ids (§6.3).
func (s *Server) Registry() *HandlerRegistry { return s.registry }

// State returns the server's shared state.
func (s *Server) State() *State { return s.state }

// RobotAddr / FileAddr report the bound local addresses, including the
// actual port the kernel assigned when NewServer was built with
// WithPorts(0, 0).
func (s *Server) RobotAddr() *net.UDPAddr { return s.robotConn.LocalAddr().(*net.UDPAddr) }
func (s *Server) FileAddr() *net.UDPAddr  { return s.fileConn.LocalAddr().(*net.UDPAddr) }

// DropNextDatagrams makes the server silently swallow the next n
// received datagrams across both ports before resuming normal dispatch,
// modelling the retry scenario of §8.2 ("mock configured to drop the
// first datagram").
func (s *Server) DropNextDatagrams(n int) {
	s.dropRemaining.Store(int32(n))
}

// Close stops both accept loops and releases the sockets.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closeCh)
		if e := s.robotConn.Close(); e != nil {
			err = e
		}
		if e := s.fileConn.Close(); e != nil {
			err = e
		}
		s.wg.Wait()
	})
	return err
}

func (s *Server) serveLoop(conn *net.UDPConn, division hses.Division) {
	defer s.wg.Done()

	buf := make([]byte, hses.HeaderSize+hses.MaxPayloadSize)
	for {
		n, raddr, err := conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
				s.logger.Warningf("read error on %v port: %v", division, err)
				continue
			}
		}

		if s.limiter != nil && !s.limiter.Allow() {
			continue
		}

		if s.dropRemaining.Load() > 0 {
			s.dropRemaining.Add(-1)
			continue
		}

		frame, err := hses.DecodeRequest(buf[:n])
		if err != nil {
			// real controller does not reply to unrecognized framing (§4.4).
			s.logger.Warningf("dropping malformed request: %v", err)
			continue
		}

		if s.metrics != nil {
			s.metrics.observeRequest(frame.CommandID)
		}

		payload, status, addedStatus := s.registry.Dispatch(s.state, frame)

		if s.metrics != nil && status != hses.StatusSuccess {
			s.metrics.observeError(status)
		}

		resp, err := hses.EncodeResponse(frame.Service|0x80, status, addedStatus, frame.RequestID, frame.Division, hses.FinalBlockNumber(), payload)
		if err != nil {
			s.logger.Warningf("failed to encode response: %v", err)
			continue
		}

		if _, err := conn.WriteToUDP(resp, raddr); err != nil {
			s.logger.Warningf("write error: %v", err)
		}
	}
}

type metricSet struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
}

func newMetricSet(reg *prometheus.Registry) *metricSet {
	m := &metricSet{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hses_mock_requests_total",
			Help: "Requests handled by the mock server, by command id.",
		}, []string{"command"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hses_mock_errors_total",
			Help: "Non-success responses returned by the mock server, by status.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.requests, m.errors)
	return m
}

func (m *metricSet) observeRequest(commandID uint16) {
	m.requests.WithLabelValues(fmt.Sprintf("0x%04x", commandID)).Inc()
}

func (m *metricSet) observeError(status byte) {
	m.errors.WithLabelValues(fmt.Sprintf("0x%02x", status)).Inc()
}
