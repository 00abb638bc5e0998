package flow

// Gallery tracks which of the fixed panes is active. Navigation is
// clamped by refusing moves past a bound rather than wrapping. Exactly
// one pane stream plays at a time.
type Gallery struct {
	session *Session
	panes   []string
	index   int
}

func NewGallery(session *Session, panes []string) *Gallery {
	return &Gallery{session: session, panes: panes}
}

func (g *Gallery) Len() int   { return len(g.panes) }
func (g *Gallery) Index() int { return g.index }

// Unlocked reports whether the active pane may open the dossier. Only
// the first pane is unlocked.
func (g *Gallery) Unlocked() bool { return g.index == 0 }

// CanMove reports whether a move by delta stays in bounds. The
// presentation layer uses this to disable the corresponding action.
func (g *Gallery) CanMove(delta int) bool {
	next := g.index + delta
	return next >= 0 && next < len(g.panes)
}

// Activate starts the active pane's stream.
func (g *Gallery) Activate() {
	if len(g.panes) == 0 {
		return
	}
	g.session.Start(g.panes[g.index])
}

// Move shifts the active pane by delta. The outgoing pane's stream is
// paused and the incoming one plays from the start.
func (g *Gallery) Move(delta int) bool {
	if !g.CanMove(delta) || delta == 0 {
		return false
	}
	prev := g.index
	g.index += delta
	g.session.Pause(g.panes[prev])
	g.session.Resume(g.panes[g.index])
	return true
}
