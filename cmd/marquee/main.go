package main

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"marquee/flow"
	"marquee/internal/config"
	"marquee/media"
	"marquee/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	variant, err := flow.ParseVariant(cfg.Flow.Variant)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	session := flow.NewSession(media.DirResolver{Dir: cfg.Assets.Dir})

	// Reels double as frame sources for the view.
	frames := make(map[string]tui.FrameSource)

	session.Register(flow.StreamAmbient, flow.StreamAudio, flow.StreamAmbient, cfg.Audio.Muted, media.NewAudioPlayer())

	intro := media.NewReel()
	session.Register(flow.StreamIntro, flow.StreamReel, flow.StreamIntro, false, intro)
	frames[flow.StreamIntro] = intro

	for i := 0; i < variant.Panes(); i++ {
		reel := media.NewReel()
		id := flow.PaneStream(i)
		session.Register(id, flow.StreamReel, id, false, reel)
		frames[id] = reel
	}

	ctrl := flow.NewController(flow.Config{
		Variant:        variant,
		SplashDelay:    cfg.Flow.SplashDelay,
		RevealInterval: cfg.Flow.RevealInterval,
		FrameInterval:  cfg.Flow.FrameInterval,
		RevealText:     cfg.Dossier.Text(cfg.Flow.Variant),
	}, flow.SystemClock(), session)
	ctrl.OnPlayRequested = func() {
		log.Printf("play requested from dossier")
	}

	p := tea.NewProgram(tui.New(ctrl, frames, cfg.Flow.SplashDelay), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
	ctrl.Close()
}
