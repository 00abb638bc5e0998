package flow

import (
	"sync"
	"time"
)

// Defaults mirror the observed flow: a six second splash, a 50ms
// typewriter tick, eight reel frames per second.
const (
	DefaultSplashDelay    = 6 * time.Second
	DefaultRevealInterval = 50 * time.Millisecond
	DefaultFrameInterval  = 125 * time.Millisecond
)

// Config carries the flow's fixed parameters. Zero values fall back to
// the defaults above.
type Config struct {
	Variant        Variant
	SplashDelay    time.Duration
	RevealInterval time.Duration
	FrameInterval  time.Duration
	RevealText     string
}

func (c Config) withDefaults() Config {
	if c.SplashDelay <= 0 {
		c.SplashDelay = DefaultSplashDelay
	}
	if c.RevealInterval <= 0 {
		c.RevealInterval = DefaultRevealInterval
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = DefaultFrameInterval
	}
	return c
}

// Snapshot is the immutable view of the flow the presentation layer
// renders from. Subscribers receive a fresh one after every mutation.
type Snapshot struct {
	Stage          Stage
	Variant        Variant
	GalleryIndex   int
	PaneCount      int
	CanPrev        bool
	CanNext        bool
	Unlocked       bool
	DossierVisible bool
	Revealed       string
	RevealDone     bool
	Frame          uint64
}

// Controller is the explicit state holder for the whole flow. The
// presentation layer calls the operations below and subscribes to
// snapshots; it never mutates flow state directly. Timer and
// end-of-stream callbacks are serialized behind one mutex.
type Controller struct {
	mu      sync.Mutex
	cfg     Config
	clock   Clock
	session *Session
	gallery *Gallery
	dossier *Dossier

	stage       Stage
	activated   bool
	closed      bool
	frame       uint64
	cancelStage func()
	cancelFrame func()
	subs        []chan Snapshot

	// OnPlayRequested is the hook behind the dossier's play action.
	// The observed behavior has no transition here; leaving it nil
	// keeps the action a no-op.
	OnPlayRequested func()
}

func NewController(cfg Config, clock Clock, session *Session) *Controller {
	cfg = cfg.withDefaults()
	panes := make([]string, cfg.Variant.Panes())
	for i := range panes {
		panes[i] = PaneStream(i)
	}
	return &Controller{
		cfg:     cfg,
		clock:   clock,
		session: session,
		gallery: NewGallery(session, panes),
		dossier: NewDossier(cfg.RevealText),
	}
}

// Subscribe returns a channel carrying state snapshots. Delivery is
// conflated: a slow consumer sees the latest state, not every
// intermediate one.
func (c *Controller) Subscribe() <-chan Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Snapshot, 1)
	ch <- c.snapshotLocked()
	c.subs = append(c.subs, ch)
	return ch
}

// Activate starts the intro streams, schedules the single stage
// transition, and begins the frame tick. Calling it twice is a no-op.
func (c *Controller) Activate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activated || c.closed {
		return
	}
	c.activated = true
	c.session.Start(StreamAmbient)
	c.session.Start(StreamIntro)
	c.cancelStage = c.clock.After(c.cfg.SplashDelay, c.enterGallery)
	c.cancelFrame = c.clock.Every(c.cfg.FrameInterval, c.frameTick)
	c.publishLocked()
}

// enterGallery fires exactly once; the stage never goes back.
func (c *Controller) enterGallery() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stage == StageGallery {
		return
	}
	c.stage = StageGallery
	c.cancelStage = nil
	c.session.Pause(StreamIntro)
	c.gallery.Activate()
	c.publishLocked()
}

func (c *Controller) frameTick() {
	c.session.AdvanceFrames()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.frame++
	c.publishLocked()
}

// Navigate moves the gallery by delta. Moves past a bound, or before
// the gallery stage, are refused.
func (c *Controller) Navigate(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stage != StageGallery {
		return
	}
	if c.gallery.Move(delta) {
		c.publishLocked()
	}
}

// OpenDossier raises the overlay. Locked panes cannot open it. The
// underlying streams keep playing while the overlay is up.
func (c *Controller) OpenDossier() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stage != StageGallery || c.dossier.Visible() {
		return
	}
	if !c.gallery.Unlocked() {
		return
	}
	c.dossier.show()
	c.dossier.setTimer(c.clock.Every(c.cfg.RevealInterval, c.revealTick))
	c.publishLocked()
}

// CloseDossier dismisses the overlay and cancels a reveal still in
// progress.
func (c *Controller) CloseDossier() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.dossier.Visible() {
		return
	}
	c.dossier.hide()
	c.publishLocked()
}

func (c *Controller) revealTick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.dossier.advance()
	c.publishLocked()
}

// PlayRequested forwards the dossier's play action to the hook, if one
// is installed. No flow state changes either way.
func (c *Controller) PlayRequested() {
	c.mu.Lock()
	if c.closed || !c.dossier.Visible() {
		c.mu.Unlock()
		return
	}
	hook := c.OnPlayRequested
	c.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels every outstanding timer and tears the session down.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancelStage != nil {
		c.cancelStage()
		c.cancelStage = nil
	}
	if c.cancelFrame != nil {
		c.cancelFrame()
		c.cancelFrame = nil
	}
	c.dossier.hide()
	c.mu.Unlock()
	c.session.Close()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Stage:          c.stage,
		Variant:        c.cfg.Variant,
		GalleryIndex:   c.gallery.Index(),
		PaneCount:      c.gallery.Len(),
		CanPrev:        c.gallery.CanMove(-1),
		CanNext:        c.gallery.CanMove(1),
		Unlocked:       c.gallery.Unlocked(),
		DossierVisible: c.dossier.Visible(),
		Revealed:       c.dossier.Revealed(),
		RevealDone:     c.dossier.Done(),
		Frame:          c.frame,
	}
}

func (c *Controller) publishLocked() {
	snap := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
