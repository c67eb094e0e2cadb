// Package hover implements the hover lifecycle state machine that owns
// popover timers, the current anchor, and race-condition cancellation.
// Exactly one hover session is live at a time; starting a hover on a new
// anchor tears down the previous session's pending timers.
package hover

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// State is the controller's lifecycle phase.
type State int

const (
	// Idle: no current anchor, nothing pending.
	Idle State = iota
	// ShowPending: a show timer is armed for the current anchor.
	ShowPending
	// Visible: a popover is mounted.
	Visible
	// HidePending: a hide timer is armed while the popover stays mounted.
	HidePending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ShowPending:
		return "show-pending"
	case Visible:
		return "visible"
	case HidePending:
		return "hide-pending"
	default:
		return "unknown"
	}
}

const (
	// DefaultShowDelay is how long the pointer must rest on an anchor
	// before content is fetched and shown.
	DefaultShowDelay = 300 * time.Millisecond
	// DefaultHideDelay is the grace period for moving the pointer between
	// the anchor and its popover.
	DefaultHideDelay = 150 * time.Millisecond
)

// Anchor identifies a hovered reference node. Anchors are compared by
// interface equality: the same hovered node must present as the same
// Anchor value for the lifetime of the hover.
type Anchor interface {
	// Key is the record name or URL the anchor references.
	Key() string
}

// Provider resolves an anchor to renderable content. A false result
// means no popover (not-found or failed fetch, both silent).
type Provider[C any] interface {
	Resolve(ctx context.Context, anchor Anchor) (C, bool)
}

// Surface is the host-owned popover slot. Mount replaces whatever was
// mounted before; at most one popover exists at a time.
type Surface[C any] interface {
	Mount(anchor Anchor, content C)
	Unmount()
}

// Navigator performs fire-and-forget navigation to a record.
type Navigator interface {
	NavigateToRecord(name string)
}

// Controller drives popover show/hide for one kind of content. Methods
// are safe for concurrent use; all state lives behind one mutex.
type Controller[C any] struct {
	provider Provider[C]
	surface  Surface[C]
	nav      Navigator
	clock    Clock
	logger   *slog.Logger

	showDelay time.Duration
	hideDelay time.Duration

	mu         sync.Mutex
	state      State
	current    Anchor // anchor of the live session
	visibleFor Anchor // anchor whose popover is mounted
	showTimer  Timer
	hideTimer  Timer
	seq        uint64 // session counter; stale fetch results are discarded
	closed     bool
}

// Option configures a Controller.
type Option[C any] func(*Controller[C])

// WithShowDelay overrides the show delay.
func WithShowDelay[C any](d time.Duration) Option[C] {
	return func(c *Controller[C]) {
		c.showDelay = d
	}
}

// WithHideDelay overrides the hide delay.
func WithHideDelay[C any](d time.Duration) Option[C] {
	return func(c *Controller[C]) {
		c.hideDelay = d
	}
}

// WithClock replaces the timer source, for tests.
func WithClock[C any](clock Clock) Option[C] {
	return func(c *Controller[C]) {
		c.clock = clock
	}
}

// WithNavigator wires record navigation for title activation.
func WithNavigator[C any](nav Navigator) Option[C] {
	return func(c *Controller[C]) {
		c.nav = nav
	}
}

// WithLogger sets the logger.
func WithLogger[C any](logger *slog.Logger) Option[C] {
	return func(c *Controller[C]) {
		c.logger = logger
	}
}

// NewController creates a hover controller over a content provider and a
// popover surface.
func NewController[C any](provider Provider[C], surface Surface[C], opts ...Option[C]) *Controller[C] {
	c := &Controller[C]{
		provider:  provider,
		surface:   surface,
		clock:     NewClock(),
		logger:    slog.Default(),
		showDelay: DefaultShowDelay,
		hideDelay: DefaultHideDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the current lifecycle phase.
func (c *Controller[C]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PointerEnterAnchor handles the pointer entering a reference node.
//
// Re-entering the anchor whose popover is already mounted only cancels a
// pending hide: no refetch, no re-render. Entering a different anchor
// tears down the previous session's timers and arms a fresh show timer.
func (c *Controller[C]) PointerEnterAnchor(anchor Anchor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || anchor == nil {
		return
	}

	if anchor == c.current && c.visibleFor == anchor {
		c.stopHideTimer()
		c.state = Visible
		return
	}

	c.stopShowTimer()
	c.stopHideTimer()
	c.current = anchor
	c.seq++
	seq := c.seq

	c.state = ShowPending
	c.showTimer = c.clock.AfterFunc(c.showDelay, func() {
		c.onShowTimer(seq, anchor)
	})
}

// PointerLeaveAnchor handles the pointer leaving the current anchor. A
// mounted popover gets a hide grace period; a still-pending show is
// cancelled outright.
func (c *Controller[C]) PointerLeaveAnchor(anchor Anchor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || anchor != c.current {
		return
	}

	c.stopShowTimer()

	if c.visibleFor != nil {
		c.armHideTimer()
		return
	}

	c.current = nil
	c.state = Idle
}

// PointerEnterPopover cancels a pending hide while the pointer is inside
// the popover.
func (c *Controller[C]) PointerEnterPopover() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.visibleFor == nil {
		return
	}
	c.stopHideTimer()
	c.state = Visible
}

// PointerLeavePopover arms the hide timer when the pointer leaves the
// popover.
func (c *Controller[C]) PointerLeavePopover() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.visibleFor == nil {
		return
	}
	c.armHideTimer()
}

// Dismiss unmounts immediately, bypassing the hide delay. Used for
// activation clicks on the anchor.
func (c *Controller[C]) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Activate navigates to a record from the popover's title action and
// dismisses the popover.
func (c *Controller[C]) Activate(name string) {
	c.mu.Lock()
	nav := c.nav
	c.reset()
	c.mu.Unlock()

	if nav != nil {
		nav.NavigateToRecord(name)
	}
}

// Teardown forces Idle from any state and marks the controller closed.
// Further events are ignored.
func (c *Controller[C]) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	c.closed = true
}

// onShowTimer runs when the show delay elapses. The session is verified
// before the fetch and again after it resolves; a session superseded in
// the meantime discards the result.
func (c *Controller[C]) onShowTimer(seq uint64, anchor Anchor) {
	c.mu.Lock()
	if c.closed || seq != c.seq || c.current != anchor {
		c.mu.Unlock()
		return
	}
	c.showTimer = nil
	c.mu.Unlock()

	content, ok := c.provider.Resolve(context.Background(), anchor)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || seq != c.seq || c.current != anchor {
		c.logger.Debug("hover: stale result discarded", slog.String("key", anchor.Key()))
		return
	}

	if !ok {
		// No usable data: no popover, session stays until pointer leave.
		c.state = Idle
		return
	}

	if c.visibleFor != nil && c.visibleFor != anchor {
		c.surface.Unmount()
	}
	c.surface.Mount(anchor, content)
	c.visibleFor = anchor
	c.state = Visible
}

// onHideTimer unmounts the popover and ends the session.
func (c *Controller[C]) onHideTimer(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || seq != c.seq || c.state != HidePending {
		return
	}
	c.hideTimer = nil
	c.reset()
}

// armHideTimer replaces any pending hide timer for the current session.
func (c *Controller[C]) armHideTimer() {
	c.stopHideTimer()
	seq := c.seq
	c.state = HidePending
	c.hideTimer = c.clock.AfterFunc(c.hideDelay, func() {
		c.onHideTimer(seq)
	})
}

// reset forces Idle: stops timers, unmounts, clears the session. Caller
// holds the lock.
func (c *Controller[C]) reset() {
	c.stopShowTimer()
	c.stopHideTimer()
	if c.visibleFor != nil {
		c.surface.Unmount()
		c.visibleFor = nil
	}
	c.current = nil
	c.seq++
	c.state = Idle
}

func (c *Controller[C]) stopShowTimer() {
	if c.showTimer != nil {
		c.showTimer.Stop()
		c.showTimer = nil
	}
}

func (c *Controller[C]) stopHideTimer() {
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
}
