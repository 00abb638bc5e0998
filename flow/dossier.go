package flow

// Dossier is the modal overlay with its typewriter reveal. All mutation
// happens under the owning controller's lock; the reveal timer is a
// cancellable handle owned here and cancelled on hide, so no stale tick
// ever writes into a hidden overlay.
type Dossier struct {
	text     []rune
	progress int
	visible  bool
	cancel   func()
}

func NewDossier(text string) *Dossier {
	return &Dossier{text: []rune(text)}
}

func (d *Dossier) Visible() bool { return d.visible }

// Revealed returns the portion of the text shown so far.
func (d *Dossier) Revealed() string { return string(d.text[:d.progress]) }

func (d *Dossier) Progress() int { return d.progress }

func (d *Dossier) Done() bool { return d.progress >= len(d.text) }

// show makes the overlay visible and resets the reveal cursor.
func (d *Dossier) show() {
	d.visible = true
	d.progress = 0
}

// hide dismisses the overlay and stops a still-running reveal timer.
func (d *Dossier) hide() {
	d.visible = false
	d.stopTimer()
}

// advance moves the reveal cursor one rune. It reports whether the
// timer should keep ticking; on completion it cancels itself.
func (d *Dossier) advance() bool {
	if !d.visible || d.Done() {
		d.stopTimer()
		return false
	}
	d.progress++
	if d.Done() {
		d.stopTimer()
		return false
	}
	return true
}

func (d *Dossier) setTimer(cancel func()) {
	d.stopTimer()
	d.cancel = cancel
}

func (d *Dossier) stopTimer() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
