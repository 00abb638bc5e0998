package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"marquee/flow"
)

func (m Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	header := m.renderHeader()
	status := m.renderStatus()
	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.snap.Stage == flow.StageIntro {
		body = m.renderIntro(bodyHeight)
	} else {
		body = m.renderGallery(bodyHeight)
	}
	if m.snap.DossierVisible {
		body = RenderDossierPopup(body, m.renderDossier(), m.width, bodyHeight)
	}
	body = fitHeight(body, bodyHeight)

	view := strings.Join([]string{header, status, body, footer}, "\n")
	return appStyle.Width(maxOf(1, m.width)).MaxWidth(maxOf(1, m.width)).Render(view)
}

func (m Model) renderHeader() string {
	left := headerAppStyle.Render("Marquee")
	right := introHintStyle.Render(m.snap.Stage.String())
	leftW := ansi.StringWidth(left)
	rightW := ansi.StringWidth(right)
	gap := 1
	if leftW+rightW+1 < m.width {
		gap = m.width - leftW - rightW
	}
	return renderBar(headerBarStyle, maxOf(1, m.width), left+strings.Repeat(" ", gap)+right)
}

func (m Model) renderStatus() string {
	msg := strings.TrimSpace(m.status)
	if msg == "" {
		msg = "Ready"
	}
	return renderBar(statusBarStyle, maxOf(1, m.width), msg)
}

func (m Model) renderFooter() string {
	bindings := m.keys.BindingsForScope(m.scope())
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	descStyle := lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle)
	space := lipgloss.NewStyle().Background(colorMantle).Render(" ")
	sep := lipgloss.NewStyle().Background(colorMantle).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
		h := kb.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+space+descStyle.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	return renderBar(footerStyle, maxOf(1, m.width), line)
}

// renderIntro draws the splash: title card, the intro reel if one
// resolved, and a countdown bar for the time left before the gallery.
func (m Model) renderIntro(height int) string {
	elapsed := time.Since(m.started)
	pct := float64(elapsed) / float64(m.splash)
	if pct > 1 {
		pct = 1
	}
	prog := m.prog
	prog.Width = minOf(48, maxOf(20, m.width-20))

	parts := []string{
		titleCardStyle.Render("M A R Q U E E"),
		"",
	}
	if frame := m.frame(flow.StreamIntro); frame != "" {
		parts = append(parts, frame, "")
	}
	parts = append(parts,
		prog.ViewAs(pct),
		"",
		introHintStyle.Render("the gallery opens shortly"),
	)
	card := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(maxOf(1, m.width), height, lipgloss.Center, lipgloss.Center, card)
}

func (m Model) renderGallery(height int) string {
	panes := make([]string, 0, m.snap.PaneCount)
	for i := 0; i < m.snap.PaneCount; i++ {
		panes = append(panes, m.renderPane(i, height-2))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	return lipgloss.Place(maxOf(1, m.width), height, lipgloss.Center, lipgloss.Center, row)
}

func (m Model) renderPane(i, height int) string {
	locked := i != 0
	title := paneTitleStyle.Render(fmt.Sprintf("Reel %c", 'A'+i))
	if locked {
		title += " " + lockedBadgStyle.Render("[locked]")
	}
	content := m.frame(flow.PaneStream(i))
	if content == "" {
		content = introHintStyle.Render("no signal")
	}
	body := title + "\n\n" + content

	style := paneStyle
	if i == m.snap.GalleryIndex {
		style = activePaneStyle
	}
	paneWidth := maxOf(20, (m.width-6)/maxOf(1, m.snap.PaneCount))
	return style.Width(paneWidth).Render(body)
}

func (m Model) renderDossier() string {
	text := m.snap.Revealed
	if !m.snap.RevealDone {
		text += "█"
	}
	hint := "enter play  esc close"
	if !m.snap.RevealDone {
		hint = "esc close"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		dossierTitleStyle.Render("Dossier"),
		"",
		dossierTextStyle.Width(minOf(46, maxOf(24, m.width-20))).Render(text),
		"",
		dossierHintStyle.Render(hint),
	)
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := ansi.Truncate(strings.ReplaceAll(text, "\n", " "), width, "")
	lineW := ansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}
