// Package window holds the state of the desktop dashboard: the current
// page, banners and pending trouble code actions. It is driven from the
// window's update callback and never blocks it; adapter calls run on their
// own goroutines and their results are applied on the next Poll.
package window

import (
	"context"
	"fmt"
	"sync"
	"time"

	"obd-dashboard.klederson.com/internal/dashboard"
	"obd-dashboard.klederson.com/internal/logger"
	"obd-dashboard.klederson.com/internal/refresh"
	"obd-dashboard.klederson.com/internal/telemetry"
)

const (
	snapshotBuffer = 16
	actionTimeout  = 10 * time.Second
)

const confirmPrompt = "Clear all trouble codes, distance and time since clear? [Y]es / [N]o"

type result struct {
	clear bool
	codes []telemetry.TroubleCode
	err   error
}

// Controller is the window's model. Apart from Start and Stop its methods
// must be called from one goroutine.
type Controller struct {
	Dash *dashboard.Dashboard

	source  telemetry.Source
	loop    *refresh.Loop
	snaps   chan telemetry.Snapshot
	results chan result
	closed  chan struct{}
	once    sync.Once

	page       dashboard.Page
	banner     string
	bannerErr  bool
	report     string
	confirming bool
	busy       bool
}

// New creates a controller reading from source every interval.
func New(source telemetry.Source, interval time.Duration) *Controller {
	return &Controller{
		Dash:    dashboard.New(),
		source:  source,
		loop:    refresh.New(source, interval),
		snaps:   make(chan telemetry.Snapshot, snapshotBuffer),
		results: make(chan result, 1),
		closed:  make(chan struct{}),
	}
}

// Start runs the refresh loop in the background.
func (c *Controller) Start() {
	c.loop.Start(c.post)
}

// Stop halts the refresh loop. Safe to call more than once.
func (c *Controller) Stop() {
	c.once.Do(func() { close(c.closed) })
	c.loop.Stop()
}

func (c *Controller) post(snap telemetry.Snapshot) {
	select {
	case c.snaps <- snap:
	case <-c.closed:
	}
}

// Poll applies every snapshot and action result that arrived since the last
// call and returns how many snapshots were applied.
func (c *Controller) Poll() int {
	n := 0
	for {
		select {
		case snap := <-c.snaps:
			if refresh.Guard("apply", func() { c.Dash.Apply(snap) }) {
				n++
			}
		case r := <-c.results:
			c.finish(r)
		default:
			return n
		}
	}
}

func (c *Controller) finish(r result) {
	c.busy = false
	if r.clear {
		if r.err != nil {
			logger.WarnWithCode(r.err).Msg("trouble code clear failed")
		} else {
			logger.Info().Msg("trouble codes cleared")
		}
		c.banner = c.Dash.TroubleCodesCleared(r.err)
		c.bannerErr = r.err != nil
		c.report = ""
		return
	}

	if r.err != nil {
		logger.WarnWithCode(r.err).Msg("trouble code read failed")
		c.banner, c.bannerErr = r.err.Error(), true
		return
	}
	c.report = dashboard.TroubleCodeReport(r.codes)
	c.banner, c.bannerErr = c.report, len(r.codes) > 0
}

// SetBanner shows a message until dismissed.
func (c *Controller) SetBanner(text string, isErr bool) {
	c.banner, c.bannerErr = text, isErr
}

// NextPage cycles to the following page.
func (c *Controller) NextPage() {
	c.page = c.page.Next()
}

// GotoPage jumps to p if it exists.
func (c *Controller) GotoPage(p dashboard.Page) {
	for _, known := range dashboard.Pages() {
		if known == p {
			c.page = p
			return
		}
	}
}

// ReadCodes starts a trouble code read unless an action is running.
func (c *Controller) ReadCodes() {
	if c.busy || c.confirming {
		return
	}
	c.busy = true
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		codes, err := c.source.TroubleCodes(ctx)
		c.results <- result{codes: codes, err: err}
	}()
}

// RequestClear asks for confirmation before clearing.
func (c *Controller) RequestClear() {
	if c.busy {
		return
	}
	c.confirming = true
}

// Confirm answers yes to a pending clear.
func (c *Controller) Confirm() {
	if !c.confirming {
		return
	}
	c.confirming = false
	c.busy = true
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		c.results <- result{clear: true, err: c.source.ClearTroubleCodes(ctx)}
	}()
}

// Cancel declines a pending clear or dismisses the banner.
func (c *Controller) Cancel() {
	if c.confirming {
		c.confirming = false
		return
	}
	c.banner, c.bannerErr = "", false
}

func (c *Controller) Page() dashboard.Page { return c.page }

// Banner is the message to overlay, if any. A pending confirmation takes
// precedence.
func (c *Controller) Banner() (string, bool) {
	if c.confirming {
		return confirmPrompt, false
	}
	return c.banner, c.bannerErr
}

func (c *Controller) Confirming() bool { return c.confirming }

func (c *Controller) Busy() bool { return c.busy }

// Report is the last trouble code report read.
func (c *Controller) Report() string { return c.report }

func (c *Controller) Source() telemetry.Source { return c.source }

// Title is the window title, which carries the data mode.
func (c *Controller) Title() string {
	return fmt.Sprintf("OBD Dashboard - %s", c.source.Mode())
}
