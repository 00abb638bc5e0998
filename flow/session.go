package flow

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Resolver locates a logical asset name against an ordered list of
// candidate extensions. A miss is a value, not an error.
type Resolver interface {
	Resolve(name string, exts []string) (path string, ok bool)
}

// Player is the playback collaborator for a single stream. End-of-stream
// notification is scoped to the player instance via SetEndFunc; players
// never share a process-wide bus.
type Player interface {
	Load(path string) error
	Play()
	Pause()
	SeekStart()
	SetMuted(muted bool)
	SetLoopCount(n int)
	SetEndFunc(fn func())
	Playing() bool
	Close()
}

// FrameAdvancer is implemented by players whose playback position is
// driven by the flow's frame tick rather than a hardware clock.
type FrameAdvancer interface {
	Advance()
}

// LoopForever is the loop count requesting an explicit infinite repeat
// at start time. Only audio streams use it; reels loop through the
// end-of-stream notification instead.
const LoopForever = -1

type StreamKind int

const (
	StreamAudio StreamKind = iota
	StreamReel
)

// Candidate extensions per stream kind, probed in order.
var (
	audioExts = []string{".wav", ".mp3", ".flac", ".ogg"}
	reelExts  = []string{".reel", ".frames", ".txt"}
)

func extsFor(kind StreamKind) []string {
	if kind == StreamAudio {
		return audioExts
	}
	return reelExts
}

// Logical stream identifiers used across the flow.
const (
	StreamIntro   = "intro"
	StreamAmbient = "ambient"
)

// PaneStream returns the stream ID for gallery pane i.
func PaneStream(i int) string {
	return "reel-" + string(rune('a'+i))
}

type stream struct {
	id       string
	kind     StreamKind
	name     string
	muted    bool
	player   Player
	instance uuid.UUID
	started  bool
}

// Session owns the looping streams. A started stream is always either
// playing or in the middle of a rewind-and-restart; it is never left
// paused at end-of-stream.
type Session struct {
	mu       sync.Mutex
	resolver Resolver
	streams  map[string]*stream
	order    []string
}

func NewSession(resolver Resolver) *Session {
	return &Session{
		resolver: resolver,
		streams:  make(map[string]*stream),
	}
}

// Register adds a stream under a logical ID. The player is owned by the
// session from here on.
func (s *Session) Register(id string, kind StreamKind, name string, muted bool, p Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.streams[id]; !exists {
		s.order = append(s.order, id)
	}
	s.streams[id] = &stream{id: id, kind: kind, name: name, muted: muted, player: p}
}

// Start resolves and begins playback of a stream. If no candidate file
// exists the call is a silent no-op and the stream stays not-started;
// a missing asset is never fatal.
func (s *Session) Start(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startLocked(id)
}

func (s *Session) startLocked(id string) {
	st, ok := s.streams[id]
	if !ok || st.started {
		if ok && st.started {
			st.player.Play()
		}
		return
	}
	path, found := s.resolver.Resolve(st.name, extsFor(st.kind))
	if !found {
		return
	}
	if err := st.player.Load(path); err != nil {
		log.Printf("debug: stream %s: load %s: %v", id, path, err)
		return
	}
	st.instance = uuid.New()
	instance := st.instance
	st.player.SetEndFunc(func() { s.handleEnd(id, instance) })
	st.player.SetMuted(st.muted)
	if st.kind == StreamAudio {
		st.player.SetLoopCount(LoopForever)
	}
	st.player.Play()
	st.started = true
}

// handleEnd is the end-of-stream handler: unconditionally rewind and
// resume, producing an effectively infinite loop. Events from a replaced
// stream instance are ignored.
func (s *Session) handleEnd(id string, instance uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.streams[id]
	if !ok || !st.started || st.instance != instance {
		return
	}
	st.player.SeekStart()
	st.player.Play()
}

// Pause halts a stream without touching its position.
func (s *Session) Pause(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.streams[id]; ok && st.started {
		st.player.Pause()
	}
}

// Resume rewinds a started stream to the beginning and plays it, or
// starts it for the first time.
func (s *Session) Resume(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.streams[id]
	if !ok {
		return
	}
	if !st.started {
		s.startLocked(id)
		return
	}
	st.player.SeekStart()
	st.player.Play()
}

// Playing reports whether a stream is currently playing. Never-started
// streams report false.
func (s *Session) Playing(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.streams[id]
	return ok && st.started && st.player.Playing()
}

// AdvanceFrames moves every playing frame-driven stream forward one
// frame. Reels that hit their last frame raise end-of-stream, which
// handleEnd turns into a rewind.
func (s *Session) AdvanceFrames() {
	s.mu.Lock()
	advancers := make([]FrameAdvancer, 0, len(s.order))
	for _, id := range s.order {
		st := s.streams[id]
		if !st.started || !st.player.Playing() {
			continue
		}
		if fa, ok := st.player.(FrameAdvancer); ok {
			advancers = append(advancers, fa)
		}
	}
	s.mu.Unlock()
	// Outside the lock: an advance may fire the end func, which
	// re-enters handleEnd.
	for _, fa := range advancers {
		fa.Advance()
	}
}

// Close tears every player down.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		s.streams[id].player.Close()
	}
}
