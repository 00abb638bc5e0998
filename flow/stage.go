package flow

import (
	"fmt"
	"strings"
)

// Stage is the top-level phase of the flow. Once the gallery is entered
// the flow never returns to the intro within a session.
type Stage int

const (
	StageIntro Stage = iota
	StageGallery
)

func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StageGallery:
		return "gallery"
	default:
		return "unknown"
	}
}

// Variant selects the gallery shape: a single pane with an open-dossier
// button, or two panes where only the first is unlocked.
type Variant int

const (
	VariantSolo Variant = iota
	VariantDuo
)

// Panes reports how many gallery panes the variant shows.
func (v Variant) Panes() int {
	if v == VariantDuo {
		return 2
	}
	return 1
}

func (v Variant) String() string {
	if v == VariantDuo {
		return "duo"
	}
	return "solo"
}

// ParseVariant maps a config value to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solo":
		return VariantSolo, nil
	case "duo":
		return VariantDuo, nil
	default:
		return VariantSolo, fmt.Errorf("unknown variant %q (want solo or duo)", s)
	}
}
