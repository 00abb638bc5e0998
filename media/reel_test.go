package media

import (
	"os"
	"path/filepath"
	"testing"
)

func writeReel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.reel")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write reel: %v", err)
	}
	return path
}

func loadReel(t *testing.T, content string) *Reel {
	t.Helper()
	r := NewReel()
	if err := r.Load(writeReel(t, content)); err != nil {
		t.Fatalf("load: %v", err)
	}
	return r
}

func TestReelSplitsFramesOnSeparator(t *testing.T) {
	r := loadReel(t, "one\n---\ntwo a\ntwo b\n---\nthree\n")
	if r.FrameCount() != 3 {
		t.Fatalf("frame count = %d, want 3", r.FrameCount())
	}
	if r.Frame() != "one" {
		t.Fatalf("first frame = %q", r.Frame())
	}
}

func TestReelLoadRejectsEmptyDeck(t *testing.T) {
	r := NewReel()
	if err := r.Load(writeReel(t, "\n---\n \n")); err == nil {
		t.Fatalf("expected an error for a reel with no frames")
	}
}

func TestReelAdvanceRaisesEndOfStreamOnce(t *testing.T) {
	r := loadReel(t, "a\n---\nb\n")
	ends := 0
	r.SetEndFunc(func() { ends++ })
	r.Play()
	r.Advance() // a -> b
	if r.Frame() != "b" || ends != 0 {
		t.Fatalf("frame %q ends %d after first advance", r.Frame(), ends)
	}
	r.Advance() // end of deck
	r.Advance() // held at final frame, no repeat signal
	if ends != 1 {
		t.Fatalf("end signals = %d, want 1", ends)
	}
	if r.Frame() != "b" {
		t.Fatalf("reel must hold the final frame, showing %q", r.Frame())
	}
}

func TestReelLoopsViaRewindAndResume(t *testing.T) {
	r := loadReel(t, "a\n---\nb\n")
	// Wire the end signal the way the media session does.
	r.SetEndFunc(func() {
		r.SeekStart()
		r.Play()
	})
	r.Play()
	for i := 0; i < 5; i++ {
		r.Advance()
	}
	if !r.Playing() {
		t.Fatalf("looping reel must keep playing")
	}
	if r.Frame() != "b" {
		t.Fatalf("after 5 advances over a 2-frame loop, frame = %q, want %q", r.Frame(), "b")
	}
}

func TestReelPauseFreezesPosition(t *testing.T) {
	r := loadReel(t, "a\n---\nb\n---\nc\n")
	r.Play()
	r.Advance()
	r.Pause()
	r.Advance()
	if r.Frame() != "b" {
		t.Fatalf("paused reel advanced to %q", r.Frame())
	}
	if r.Playing() {
		t.Fatalf("paused reel reports playing")
	}
}

func TestReelSeekStartClearsEndState(t *testing.T) {
	r := loadReel(t, "a\n---\nb\n")
	ends := 0
	r.SetEndFunc(func() { ends++ })
	r.Play()
	r.Advance()
	r.Advance()
	r.SeekStart()
	r.Advance()
	r.Advance()
	if ends != 2 {
		t.Fatalf("end signals = %d, want one per lap", ends)
	}
}
