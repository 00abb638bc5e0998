package media

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// frameSep divides frames inside a reel file. Everything between
// separators is one frame, rendered verbatim.
const frameSep = "---"

// Reel is the visual analog of a looping video: a deck of text frames.
// Its position advances on the flow's frame tick rather than a hardware
// clock, and reaching the last frame raises end-of-stream so the
// session's rewind-and-resume policy produces the loop.
type Reel struct {
	mu      sync.Mutex
	frames  []string
	pos     int
	playing bool
	endFn   func()
	ended   bool
}

func NewReel() *Reel { return &Reel{} }

func (r *Reel) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read reel: %w", err)
	}
	frames := splitFrames(string(data))
	if len(frames) == 0 {
		return fmt.Errorf("reel %s has no frames", path)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = frames
	r.pos = 0
	r.ended = false
	return nil
}

func splitFrames(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var frames []string
	var cur []string
	flush := func() {
		frame := strings.TrimRight(strings.Join(cur, "\n"), "\n")
		if strings.TrimSpace(frame) != "" {
			frames = append(frames, frame)
		}
		cur = cur[:0]
	}
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == frameSep {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return frames
}

func (r *Reel) Play() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return
	}
	r.playing = true
}

func (r *Reel) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playing = false
}

func (r *Reel) SeekStart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pos = 0
	r.ended = false
}

// SetMuted is a no-op: reels carry no audio track.
func (r *Reel) SetMuted(bool) {}

// SetLoopCount is a no-op: reels loop through end-of-stream
// notification, never through an explicit repeat count.
func (r *Reel) SetLoopCount(int) {}

func (r *Reel) SetEndFunc(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endFn = fn
}

func (r *Reel) Playing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}

// Advance moves to the next frame. Hitting the end raises the end func
// once; the stream then holds on the final frame until the end handler
// rewinds it.
func (r *Reel) Advance() {
	r.mu.Lock()
	if !r.playing || len(r.frames) == 0 {
		r.mu.Unlock()
		return
	}
	var fire func()
	if r.pos+1 < len(r.frames) {
		r.pos++
	} else if !r.ended {
		r.ended = true
		fire = r.endFn
	}
	r.mu.Unlock()
	// The end handler re-enters SeekStart/Play; call it unlocked.
	if fire != nil {
		fire()
	}
}

// Frame returns the frame under the playhead.
func (r *Reel) Frame() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return ""
	}
	return r.frames[r.pos]
}

// FrameCount reports the deck size.
func (r *Reel) FrameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *Reel) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playing = false
	r.frames = nil
}
