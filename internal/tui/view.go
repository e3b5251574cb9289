/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"slidedeck/internal/domain"
	"slidedeck/internal/ingest"
	"slidedeck/internal/present"
)

var fallbackAccent = domain.RGB{R: 0xbe, G: 0xf2, B: 0x64}

var (
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#71717a"))
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e4e4e7"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#18181b")).Background(lipgloss.Color("#f43f5e")).Padding(0, 1)
	noticeStyle  = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("#f43f5e")).Padding(1, 3)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.notice != "" {
		box := noticeStyle.Render(m.notice + "\n\n" + dimStyle.Render("press any key"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	if m.sess.IntroActive() {
		return m.introView()
	}
	v := m.sess.View()
	accent := lipgloss.Color(v.Slide.Accent(fallbackAccent).Hex())
	inner := max(m.width-4, 20)

	parts := []string{
		dimStyle.Render(m.marqueeLine()),
		header(v, accent, m.width),
		"",
		lipgloss.PlaceHorizontal(m.width, position(m.motion), renderSlide(v, accent, min(inner, 100))),
		"",
	}
	if v.Warning != "" {
		parts = append(parts, warningStyle.Render(v.Warning))
	}
	if p := m.editPanel(v, accent); p != "" {
		parts = append(parts, p)
	}
	keys := m.keys.forMode(m.mode, v.Editing, v.CanUndo, m.sess.CanRedo(), v.Warning != "")
	parts = append(parts, m.help.View(keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func header(v present.View, accent lipgloss.Color, width int) string {
	left := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(strings.ToUpper(string(v.Slide.Type)))
	if v.Editing {
		left += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("#18181b")).Background(accent).Padding(0, 1).Render("EDIT")
	}
	right := dimStyle.Render(fmt.Sprintf("%02d / %02d", v.Index+1, v.Total))
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) marqueeLine() string {
	r := []rune(present.Marquee)
	if len(r) == 0 || m.width <= 0 {
		return ""
	}
	var b strings.Builder
	off := m.marquee % len(r)
	for i := 0; i < m.width; i++ {
		b.WriteRune(r[(off+i)%len(r)])
	}
	return b.String()
}

func (m Model) introView() string {
	phase, prog := m.sess.IntroFrame()
	t := present.DefaultIntroText
	accent := lipgloss.Color(m.sess.Current().Accent(fallbackAccent).Hex())
	var top, sub string
	switch phase {
	case present.IntroLoading:
		top = lipgloss.NewStyle().Bold(true).Render(t.Loading)
		sub = dimStyle.Render(t.LoadingSub)
	case present.IntroCredit:
		top = lipgloss.NewStyle().Bold(true).Render(spaced(t.Credit))
		sub = dimStyle.Render(t.CreditSub)
	default:
		top = lipgloss.NewStyle().Bold(true).Foreground(accent).Render(spaced(t.Title))
	}
	block := lipgloss.JoinVertical(lipgloss.Center, top, sub, "", m.bar.ViewAs(prog))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

// renderSlide draws the slide body for its layout kind. Kinds whose
// structured data is empty fall back to the split layout.
func renderSlide(v present.View, accent lipgloss.Color, width int) string {
	s := v.Slide
	switch s.Type {
	case domain.KindHero:
		return renderHero(s, accent, width)
	case domain.KindQuote:
		return renderQuote(s, accent, width)
	case domain.KindImage:
		return renderImage(s, accent, width)
	case domain.KindFooter:
		return renderFooter(s, accent, width)
	case domain.KindStats:
		if len(s.Stats) > 0 {
			return renderStats(s, accent, width)
		}
	case domain.KindGrid:
		if len(s.GridInfo) > 0 {
			return renderGrid(s, accent, width)
		}
	case domain.KindProcess:
		if len(s.ProcessSteps) > 0 {
			return renderProcess(s, accent, width)
		}
	}
	return renderSplit(s, v.Layout, accent, width)
}

func title(s domain.Slide, accent lipgloss.Color) string {
	first, rest := present.SplitTitle(s.Title)
	out := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(first)
	if rest != "" {
		out += " " + lipgloss.NewStyle().Bold(true).Render(rest)
	}
	return out
}

func subtitle(s domain.Slide) string {
	if s.Subtitle == "" {
		return ""
	}
	return lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#a1a1aa")).Render(s.Subtitle)
}

func body(s domain.Slide, width int) string {
	return textStyle.Width(width).Render(s.Content)
}

func join(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, kept...)
}

func renderHero(s domain.Slide, accent lipgloss.Color, width int) string {
	tag := lipgloss.NewStyle().Foreground(accent).Border(lipgloss.NormalBorder()).BorderForeground(accent).Padding(0, 1)
	var tags []string
	for _, t := range s.Tags {
		tags = append(tags, tag.Render(t))
	}
	head := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(present.Heading(s))
	return join(
		lipgloss.JoinHorizontal(lipgloss.Top, tags...),
		"",
		head,
		subtitle(s),
		"",
		body(s, width),
	)
}

func imagePanel(s domain.Slide, accent lipgloss.Color, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Render(imageLabel(s.ImageURL))
}

// imageLabel describes the slide image; a terminal cannot show the pixels.
func imageLabel(u string) string {
	if u == "" {
		return "no image"
	}
	if strings.HasPrefix(u, "data:") {
		data, mt, err := ingest.DecodeDataURL(u)
		if err != nil {
			return "embedded image (unreadable)"
		}
		return fmt.Sprintf("embedded %s · %s", mt, formatBytes(int64(len(data))))
	}
	return u
}

func renderSplit(s domain.Slide, lay present.Layout, accent lipgloss.Color, width int) string {
	col := max((width-2)/2, 10)
	text := join(title(s, accent), subtitle(s), "", body(s, col))
	text = lipgloss.NewStyle().Width(col).Render(text)
	img := imagePanel(s, accent, col-4)
	if lay.ImageRight {
		return lipgloss.JoinHorizontal(lipgloss.Top, text, "  ", img)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, img, "  ", text)
}

func renderImage(s domain.Slide, accent lipgloss.Color, width int) string {
	return join(imagePanel(s, accent, width-4), "", title(s, accent), subtitle(s), body(s, width))
}

func renderQuote(s domain.Slide, accent lipgloss.Color, width int) string {
	quote := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(accent).
		PaddingLeft(2).
		Italic(true).
		Width(width - 3).
		Render("“" + s.Content + "”")
	return join(title(s, accent), subtitle(s), "", quote)
}

func renderFooter(s domain.Slide, accent lipgloss.Color, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return join(
		center.Bold(true).Foreground(accent).Render(present.Heading(s)),
		center.Render(subtitle(s)),
		"",
		center.Foreground(lipgloss.Color("#e4e4e7")).Render(s.Content),
	)
}

func renderStats(s domain.Slide, accent lipgloss.Color, width int) string {
	cell := lipgloss.NewStyle().Width(max(width/len(s.Stats)-2, 8)).Align(lipgloss.Center).Border(lipgloss.RoundedBorder()).BorderForeground(accent)
	var cells []string
	for _, st := range s.Stats {
		cells = append(cells, cell.Render(lipgloss.NewStyle().Bold(true).Foreground(accent).Render(st.Val)+"\n"+st.Label))
	}
	return join(title(s, accent), subtitle(s), "", lipgloss.JoinHorizontal(lipgloss.Top, cells...), "", body(s, width))
}

func renderGrid(s domain.Slide, accent lipgloss.Color, width int) string {
	cell := lipgloss.NewStyle().Width(max(width/2-2, 10)).Border(lipgloss.NormalBorder()).BorderForeground(accent).Padding(0, 1)
	var rows []string
	for i := 0; i < len(s.GridInfo); i += 2 {
		var row []string
		for _, g := range s.GridInfo[i:min(i+2, len(s.GridInfo))] {
			row = append(row, cell.Render(lipgloss.NewStyle().Bold(true).Render(g.Title)+"\n"+dimStyle.Render(g.Label)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return join(title(s, accent), subtitle(s), "", lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderProcess(s domain.Slide, accent lipgloss.Color, width int) string {
	num := lipgloss.NewStyle().Bold(true).Foreground(accent)
	var steps []string
	for i, st := range s.ProcessSteps {
		steps = append(steps, num.Render(fmt.Sprintf("%02d %s", i+1, st.Step))+"  "+textStyle.Width(max(width-len(st.Step)-6, 10)).Render(st.Desc))
	}
	return join(title(s, accent), subtitle(s), "", lipgloss.JoinVertical(lipgloss.Left, steps...))
}

func (m Model) editPanel(v present.View, accent lipgloss.Color) string {
	switch m.mode {
	case modeConfirmReset:
		return lipgloss.NewStyle().Bold(true).Render("Reset the deck to its defaults? Saved changes are cleared. (y/n)")
	case modeImage:
		return m.path.View()
	case modeField:
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(accent).Render("editing "+string(m.currentField())),
			m.editor.View())
	}
	if !v.Editing {
		return ""
	}
	sel := lipgloss.NewStyle().Foreground(lipgloss.Color("#18181b")).Background(accent).Padding(0, 1)
	item := dimStyle.Padding(0, 1)
	var fields []string
	for i, f := range domain.EditableFields() {
		if i == m.field {
			fields = append(fields, sel.Render(string(f)))
		} else {
			fields = append(fields, item.Render(string(f)))
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, fields...)
	if m.uploading {
		line += dimStyle.Render("  reading image…")
	}
	return line
}
