package media

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestResolvePrefersEarlierCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ambient.mp3")
	want := writeFile(t, dir, "ambient.wav")
	r := DirResolver{Dir: dir}
	got, ok := r.Resolve("ambient", []string{".wav", ".mp3"})
	if !ok || got != want {
		t.Fatalf("Resolve = %q, %v; want %q", got, ok, want)
	}
}

func TestResolveFallsThroughCandidates(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "intro.txt")
	r := DirResolver{Dir: dir}
	got, ok := r.Resolve("intro", []string{".reel", ".frames", ".txt"})
	if !ok || got != want {
		t.Fatalf("Resolve = %q, %v; want %q", got, ok, want)
	}
}

func TestResolveMissIsNotAnError(t *testing.T) {
	r := DirResolver{Dir: t.TempDir()}
	if _, ok := r.Resolve("ghost", []string{".wav", ".mp3"}); ok {
		t.Fatalf("expected a miss")
	}
}

func TestResolveSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "ambient.wav"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	r := DirResolver{Dir: dir}
	if _, ok := r.Resolve("ambient", []string{".wav"}); ok {
		t.Fatalf("directories must not resolve as assets")
	}
}
