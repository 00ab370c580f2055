package obd

import (
	"bufio"
	"context"
	"encoding/hex"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/errors"
	"obd-dashboard.klederson.com/internal/logger"
)

// Reset, echo off, linefeeds off, spaces off, headers off, auto protocol.
var initSequence = []string{"ATZ", "ATE0", "ATL0", "ATS0", "ATH0", "ATSP0"}

var nullReplies = []string{"NO DATA", "UNABLE TO CONNECT", "STOPPED", "BUS INIT", "CAN ERROR", "BUFFER FULL"}

// Option configures Dial.
type Option func(*Conn)

// WithQueryTimeout bounds every request/reply exchange.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Conn) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Conn is a connection to an ELM327 adapter. Requests are serialized, so a
// Conn may be shared between the sampler and user-triggered actions.
type Conn struct {
	mu        sync.Mutex
	nc        net.Conn
	r         *bufio.Reader
	timeout   time.Duration
	connected atomic.Bool
	addr      string
}

// Dial connects to the adapter at addr, runs the init sequence and checks
// that the vehicle answers.
func Dial(ctx context.Context, addr string, opts ...Option) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConnectionFailure, err, "dial %s", addr)
	}

	c := &Conn{
		nc:      nc,
		r:       bufio.NewReader(nc),
		timeout: config.DefaultQueryTimeout,
		addr:    addr,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.connected.Store(true)

	if err := c.initialize(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Conn) initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, at := range initSequence {
		lines, err := c.exchange(ctx, at)
		if err != nil {
			return errors.Wrapf(errors.ErrConnectionFailure, err, "adapter init %s", at)
		}
		if hasReply(lines, "?") {
			return errors.Newf(errors.ErrConnectionFailure, "adapter rejected %s", at)
		}
		logger.Debug().Str("cmd", at).Strs("reply", lines).Msg("adapter init")
	}

	ping := commands["PIDS_A"]
	lines, err := c.exchange(ctx, ping.Request())
	if err != nil {
		return errors.Wrapf(errors.ErrConnectionFailure, err, "ping vehicle")
	}
	if resp, perr := interpret(ping, lines); perr != nil || resp.Null {
		return errors.Newf(errors.ErrConnectionFailure, "vehicle not responding on %s", c.addr)
	}
	logger.Debug().Str("addr", c.addr).Msg("vehicle answered")
	return nil
}

// Query sends cmd and decodes the reply. NO DATA and similar adapter
// messages yield a null Response and no error.
func (c *Conn) Query(ctx context.Context, cmd *Command) (Response, error) {
	if cmd == nil {
		return Response{Null: true}, errors.Newf(errors.ErrMetricRead, "nil command")
	}
	if !c.Connected() {
		return Response{Command: cmd, Null: true}, errors.New(errors.ErrConnectionFailure)
	}

	c.mu.Lock()
	lines, err := c.exchange(ctx, cmd.Request())
	c.mu.Unlock()
	if err != nil {
		return Response{Command: cmd, Null: true}, errors.Wrapf(errors.ErrMetricRead, err, "query %s", cmd.Name)
	}

	return interpret(cmd, lines)
}

// Connected reports whether the socket is still usable.
func (c *Conn) Connected() bool {
	return c.connected.Load()
}

// Close releases the socket. It is safe to call more than once.
func (c *Conn) Close() error {
	if !c.connected.Swap(false) {
		return nil
	}
	return c.nc.Close()
}

// exchange writes one request and reads up to the '>' prompt. The caller
// holds c.mu.
func (c *Conn) exchange(ctx context.Context, req string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.nc.SetDeadline(deadline); err != nil {
		return nil, err
	}

	if _, err := c.nc.Write([]byte(req + "\r")); err != nil {
		c.markBroken(err)
		return nil, err
	}

	raw, err := c.r.ReadString('>')
	if err != nil {
		c.markBroken(err)
		return nil, err
	}

	return splitReply(raw, req), nil
}

// A timeout leaves the socket usable; anything else means the adapter is
// gone.
func (c *Conn) markBroken(err error) {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return
	}
	c.connected.Store(false)
}

func splitReply(raw, req string) []string {
	raw = strings.TrimSuffix(raw, ">")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case strings.HasPrefix(line, "SEARCHING"):
		case strings.EqualFold(strings.ReplaceAll(line, " ", ""), req):
		default:
			lines = append(lines, line)
		}
	}
	return lines
}

func hasReply(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}

func interpret(cmd *Command, lines []string) (Response, error) {
	for _, l := range lines {
		upper := strings.ToUpper(l)
		for _, n := range nullReplies {
			if strings.Contains(upper, n) {
				return Response{Command: cmd, Null: true}, nil
			}
		}
		if l == "?" || strings.Contains(upper, "ERROR") {
			return Response{Command: cmd, Null: true}, errors.Newf(errors.ErrMetricRead, "%s: adapter replied %q", cmd.Name, l)
		}
	}

	frames, multi := collectFrames(lines)
	echo := cmd.Mode + 0x40

	switch cmd.Kind {
	case KindTroubleCodes:
		var codes []DTC
		found := false
		for _, f := range frames {
			if len(f) == 0 || f[0] != echo {
				continue
			}
			found = true
			// A single CAN frame is echo, count and pairs, so its payload
			// length is odd. Legacy frames are six bytes of pairs.
			payload := f[1:]
			codes = append(codes, ParseDTCs(payload, multi || len(payload)%2 == 1)...)
		}
		if !found {
			return Response{Command: cmd, Null: true}, nil
		}
		return Response{Command: cmd, Codes: codes}, nil

	case KindClearTroubleCodes:
		for _, f := range frames {
			if len(f) > 0 && f[0] == echo {
				return Response{Command: cmd}, nil
			}
		}
		return Response{Command: cmd, Null: true}, errors.Newf(errors.ErrTroubleCodeAction, "clear not acknowledged")

	default:
		for _, f := range frames {
			if len(f) >= 2 && f[0] == echo && f[1] == cmd.PID {
				return cmd.Decode(f[2:]), nil
			}
		}
		return Response{Command: cmd, Null: true}, nil
	}
}

// collectFrames hex-decodes reply lines. A multi-frame CAN reply is a
// length line ("00A") followed by "0:", "1:" prefixed frames; its frames
// are joined into one and cut to the announced length, which drops the
// padding of the last frame. multi reports whether that happened.
func collectFrames(lines []string) (frames [][]byte, multi bool) {
	var joined []byte
	total := -1

	for _, l := range lines {
		l = strings.ReplaceAll(l, " ", "")
		if i := strings.IndexByte(l, ':'); i > 0 {
			if _, err := strconv.ParseUint(l[:i], 16, 8); err != nil {
				continue
			}
			multi = true
			l = l[i+1:]
		} else if len(l)%2 == 1 {
			if n, err := strconv.ParseUint(l, 16, 16); err == nil {
				total = int(n)
			}
			continue
		}
		b, err := hex.DecodeString(l)
		if err != nil {
			continue
		}
		if multi {
			joined = append(joined, b...)
			continue
		}
		frames = append(frames, b)
	}

	if multi {
		if total >= 0 && total < len(joined) {
			joined = joined[:total]
		}
		frames = append(frames, joined)
	}
	return frames, multi
}
