package media

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// All audio is mixed at a single rate; decoded streams are resampled.
const mixerRate = beep.SampleRate(44100)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(mixerRate, mixerRate.N(100*time.Millisecond))
	})
	return speakerErr
}

// AudioPlayer plays one decoded audio stream through the shared speaker
// mixer. A loop count of -1 wraps the stream in beep.Loop at start time,
// the explicit infinite-repeat mechanism; end-of-stream notification is
// only used for finite playback.
//
// If the speaker cannot be initialized the player degrades to a silent
// no-op: the flow proceeds with no audio rather than failing.
type AudioPlayer struct {
	mu      sync.Mutex
	stream  beep.StreamSeekCloser
	format  beep.Format
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	loop    int
	muted   bool
	playing bool
	started bool
	silent  bool
	endFn   func()
}

func NewAudioPlayer() *AudioPlayer { return &AudioPlayer{} }

func (p *AudioPlayer) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported audio extension %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stream = stream
	p.format = format
	if err := initSpeaker(); err != nil {
		log.Printf("debug: audio output unavailable, continuing silent: %v", err)
		p.silent = true
	}
	return nil
}

func (p *AudioPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return
	}
	p.playing = true
	if p.silent {
		return
	}
	if p.started {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		return
	}
	var src beep.Streamer = p.stream
	if p.loop == -1 {
		src = beep.Loop(-1, p.stream)
	}
	if p.format.SampleRate != mixerRate {
		src = beep.Resample(4, p.format.SampleRate, mixerRate, src)
	}
	p.ctrl = &beep.Ctrl{Streamer: src}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Volume: 0, Silent: p.muted}
	speaker.Play(beep.Seq(p.volume, beep.Callback(p.fireEnd)))
	p.started = true
}

// fireEnd runs inside the speaker's mixing pass; the handler is moved
// to its own goroutine so it may call back into speaker-locked methods.
func (p *AudioPlayer) fireEnd() {
	p.mu.Lock()
	fn := p.endFn
	p.playing = false
	p.started = false
	p.mu.Unlock()
	if fn != nil {
		go fn()
	}
}

func (p *AudioPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	if p.started && !p.silent {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
	}
}

func (p *AudioPlayer) SeekStart() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil || p.silent {
		return
	}
	speaker.Lock()
	if err := p.stream.Seek(0); err != nil {
		log.Printf("debug: audio rewind: %v", err)
	}
	speaker.Unlock()
}

func (p *AudioPlayer) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if p.volume != nil && !p.silent {
		speaker.Lock()
		p.volume.Silent = muted
		speaker.Unlock()
	}
}

func (p *AudioPlayer) SetLoopCount(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loop = n
}

func (p *AudioPlayer) SetEndFunc(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endFn = fn
}

func (p *AudioPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *AudioPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	if p.started && !p.silent {
		speaker.Lock()
		p.ctrl.Streamer = nil
		speaker.Unlock()
	}
	if p.stream != nil {
		p.stream.Close()
		p.stream = nil
	}
}
