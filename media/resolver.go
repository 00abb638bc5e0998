// Package media provides the playback collaborators: asset resolution,
// the beep-backed audio player, and the frame-reel player.
package media

import (
	"os"
	"path/filepath"
)

// DirResolver resolves logical asset names inside a single directory by
// probing each candidate extension in order. A miss is reported as
// ok=false, never as an error; missing assets are non-fatal by contract.
type DirResolver struct {
	Dir string
}

func (r DirResolver) Resolve(name string, exts []string) (string, bool) {
	for _, ext := range exts {
		path := filepath.Join(r.Dir, name+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
