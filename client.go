package hses

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// pendingResult is what the receive loop hands back to a waiting Send
// call.
type pendingResult struct {
	frame *ResponseFrame
	err   error
}

// Client is a single-socket HSES client. One Client serves any number of
// concurrent callers; each Send allocates its own request id and awaits
// its own response independently (§4.3, §5).
type Client struct {
	conf Configuration
	conn *net.UDPConn
	ids  *idPool

	pendingMu sync.Mutex
	pending   map[byte]chan pendingResult

	closeOnce sync.Once
	closeCh   chan struct{}
	wg        sync.WaitGroup
}

// NewClient dials host on the robot command port (10040, §6.1) and starts
// the background receive loop. The returned Client owns the socket until
// Close is called.
func NewClient(host string, conf Configuration) (*Client, error) {
	raddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", host, RobotPort))
	if err != nil {
		return nil, err
	}
	return dial(raddr, conf)
}

// NewClientAddr dials a fully qualified "host:port" address instead of
// the fixed robot port NewClient assumes — for a mock server bound to an
// ephemeral port (mock.WithPorts(0, 0)) rather than the real controller.
func NewClientAddr(addr string, conf Configuration) (*Client, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	return dial(raddr, conf)
}

func dial(raddr *net.UDPAddr, conf Configuration) (*Client, error) {
	conf.applyDefaults()

	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, err
	}

	// seed the id allocator from a hash of the remote and local addresses
	// (each client has its own ephemeral local port) so two clients opened
	// back to back don't hand out identical id sequences.
	seed := byte(xxhash.Sum64String(raddr.String() + "|" + conn.LocalAddr().String()))

	c := &Client{
		conf:    conf,
		conn:    conn,
		ids:     newIDPool(seed),
		pending: make(map[byte]chan pendingResult),
		closeCh: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.receiveLoop()

	return c, nil
}

// Close releases the socket and stops the receive loop. Close does not
// cancel pending Send calls early: each returns once its own timeout and
// retries run out, with ErrTimeout or the write error from the closed
// socket.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.conn.Close()
		c.wg.Wait()
	})
	return err
}

func (c *Client) receiveLoop() {
	defer c.wg.Done()

	buf := make([]byte, c.conf.BufferSize)
	for {
		n, err := c.conn.Read(buf)
		if err != nil {
			select {
			case <-c.closeCh:
				return
			default:
				c.conf.Logger.Warningf("read error: %v", err)
				continue
			}
		}

		frame, err := DecodeResponse(buf[:n])
		if err != nil {
			c.conf.Logger.Warningf("dropping malformed response: %v", err)
			continue
		}

		c.pendingMu.Lock()
		ch, ok := c.pending[frame.RequestID]
		c.pendingMu.Unlock()

		if !ok {
			c.conf.Logger.Warningf("dropping response for unmatched request id %d", frame.RequestID)
			continue
		}

		select {
		case ch <- pendingResult{frame: frame}:
		default:
			// slot already fulfilled or abandoned; drop silently.
		}
	}
}

func (c *Client) registerPending(id byte) chan pendingResult {
	ch := make(chan pendingResult, 1)
	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()
	return ch
}

// completeAndRelease removes id's pending entry and frees it for reuse
// immediately — used once a response has actually been consumed.
func (c *Client) completeAndRelease(id byte) {
	c.pendingMu.Lock()
	delete(c.pending, id)
	c.pendingMu.Unlock()
	c.ids.release(id)
}

// abandon removes id's pending entry so a late-arriving frame is dropped
// as unmatched, but keeps the id quarantined in the pool for one more
// timeout window before it can be handed out again (§7).
func (c *Client) abandon(id byte) {
	c.pendingMu.Lock()
	delete(c.pending, id)
	c.pendingMu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		select {
		case <-time.After(c.conf.Timeout):
		case <-c.closeCh:
		}
		c.ids.release(id)
	}()
}

// Send runs cmd across the client's transport and returns its decoded
// result (§4.3). It is safe to call concurrently from multiple
// goroutines sharing the same Client.
func Send[T any](c *Client, cmd *Command[T]) (T, error) {
	var zero T

	for attempt := 0; ; attempt++ {
		id := c.ids.allocate()
		ch := c.registerPending(id)

		frameBytes, err := cmd.EncodeRequestFrame(id)
		if err != nil {
			c.completeAndRelease(id)
			return zero, err
		}

		if _, err := c.conn.Write(frameBytes); err != nil {
			c.abandon(id)
			if attempt < c.conf.RetryCount {
				time.Sleep(backoff(c.conf.RetryDelay, attempt))
				continue
			}
			return zero, err
		}

		select {
		case res := <-ch:
			c.completeAndRelease(id)
			if res.err != nil {
				return zero, res.err
			}
			if res.frame.Status != StatusSuccess {
				return zero, &ControllerError{Status: res.frame.Status, AddedStatus: res.frame.AddedStatus}
			}
			return cmd.DecodeResult(c.conf.TextEncoding, res.frame.Payload)

		case <-time.After(c.conf.Timeout):
			c.abandon(id)
			if attempt < c.conf.RetryCount {
				time.Sleep(backoff(c.conf.RetryDelay, attempt))
				continue
			}
			return zero, ErrTimeout
		}
	}
}

func backoff(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(uint64(1)<<uint(attempt))
}
