package tui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidedeck/internal/deck"
	"slidedeck/internal/domain"
	"slidedeck/internal/present"
	"slidedeck/internal/storage"
)

func newModel(t *testing.T) (Model, *present.Session, *storage.Gateway) {
	t.Helper()
	gw := storage.NewGateway(storage.NewMemoryKV(), "")
	store := deck.Open(context.Background(), gw, domain.DefaultSlides)
	p := deck.NewPersister(gw)
	t.Cleanup(p.Attach(store))
	s := present.NewSession(store, p, present.Options{})
	m := New(context.Background(), s)
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40}), s, gw
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func typed(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, runes(string(r)))
	}
	return out
}

func TestArrowKeysNavigate(t *testing.T) {
	m, s, _ := newModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 2, s.Index())
	assert.True(t, m.motion.Active())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, s.Index())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, s.Index())
	assert.Contains(t, m.View(), "01 / 07")
}

func TestFramesSettleMotion(t *testing.T) {
	m, _, _ := newModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.True(t, m.motion.Active())
	assert.Equal(t, lipgloss.Right, position(m.motion))

	for i := 0; i < 5*fps && m.motion.Active(); i++ {
		m = send(t, m, frameMsg{})
	}
	assert.False(t, m.motion.Active())
	assert.Equal(t, lipgloss.Center, position(m.motion))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, lipgloss.Left, position(m.motion))
}

func TestEditModeBlocksNavigation(t *testing.T) {
	m, s, _ := newModel(t)
	m = send(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, s.Editing())
	assert.Equal(t, 0, s.Index())
	assert.Contains(t, m.View(), "EDIT")

	m = send(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyRight})
	assert.False(t, s.Editing())
	assert.Equal(t, 1, s.Index())
	_ = m
}

func TestEditFieldPersists(t *testing.T) {
	m, s, gw := newModel(t)
	m = send(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modeField, m.mode)
	assert.Equal(t, "SOPAN & ETIKA", m.editor.Value())

	msgs := append(typed("!"), tea.KeyMsg{Type: tea.KeyCtrlS})
	m = send(t, m, msgs...)
	assert.Equal(t, modeView, m.mode)
	assert.Equal(t, "SOPAN & ETIKA!", s.Current().Title)

	raw, ok, err := gw.LoadRaw(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), "SOPAN & ETIKA!")

	m = send(t, m, runes("u"))
	assert.Equal(t, "SOPAN & ETIKA", s.Current().Title)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, "SOPAN & ETIKA!", s.Current().Title)
}

func TestTabCyclesFieldsAndEscCancels(t *testing.T) {
	m, s, _ := newModel(t)
	m = send(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.FieldSubtitle, m.currentField())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, typed("zzz")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeView, m.mode)
	assert.Equal(t, domain.DefaultSlides()[0].Subtitle, s.Current().Subtitle)
}

func writePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	p := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o600))
	return p
}

func TestImageUpload(t *testing.T) {
	m, s, _ := newModel(t)
	path := writePNG(t)

	m = send(t, m, runes("e"), runes("i"))
	require.Equal(t, modeImage, m.mode)
	m = send(t, m, typed(path)...)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.uploading)

	m = send(t, m, cmd())
	assert.False(t, m.uploading)
	assert.Empty(t, m.notice)
	assert.True(t, strings.HasPrefix(s.Current().ImageURL, "data:image/png;base64,"))
	assert.Contains(t, imageLabel(s.Current().ImageURL), "embedded image/png")
}

func TestOversizedImageShowsNotice(t *testing.T) {
	m, s, _ := newModel(t)
	p := filepath.Join(t.TempDir(), "big.png")
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(3<<20))
	require.NoError(t, f.Close())
	before := s.Current().ImageURL

	m = send(t, m, runes("e"), runes("i"))
	m = send(t, m, typed(p)...)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = send(t, next.(Model), cmd())

	assert.Equal(t, "Image is too large. The limit is 2 MiB.", m.notice)
	assert.Contains(t, m.View(), "press any key")
	assert.Equal(t, before, s.Current().ImageURL)

	m = send(t, m, runes("k"))
	assert.Empty(t, m.notice)
}

func TestResetNeedsConfirmation(t *testing.T) {
	m, s, gw := newModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, runes("e"), tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, append(typed("?"), tea.KeyMsg{Type: tea.KeyCtrlS})...)
	require.Equal(t, "Fondasi Dasar?", s.Current().Title)

	m = send(t, m, runes("R"), runes("n"))
	assert.Equal(t, "Fondasi Dasar?", s.Current().Title)

	m = send(t, m, runes("R"))
	assert.Contains(t, m.View(), "(y/n)")
	m = send(t, m, runes("y"))
	assert.Equal(t, 0, s.Index())
	assert.False(t, s.Editing())
	assert.True(t, domain.DefaultSlides().Equal(s.Store().Slides()))

	_, ok, err := gw.LoadRaw(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIntroSwallowsFirstKey(t *testing.T) {
	gw := storage.NewGateway(storage.NewMemoryKV(), "")
	store := deck.Open(context.Background(), gw, domain.DefaultSlides)
	s := present.NewSession(store, nil, present.Options{Intro: present.DefaultIntro})
	m := send(t, New(context.Background(), s), tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.True(t, s.IntroActive())
	assert.Contains(t, m.View(), present.DefaultIntroText.Loading)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.False(t, s.IntroActive())
	assert.Equal(t, 0, s.Index())

	send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, s.Index())
}

func TestRendersEveryKind(t *testing.T) {
	v := present.View{Slide: domain.Slide{
		ID: 4, Title: "Angka Penting", Content: "isi", AccentColor: "#22d3ee",
		Stats:        []domain.Stat{{Val: "90%", Label: "hadir"}},
		GridInfo:     []domain.GridCell{{Title: "A", Label: "satu"}, {Title: "B", Label: "dua"}, {Title: "C", Label: "tiga"}},
		ProcessSteps: []domain.Step{{Step: "Dengar", Desc: "pahami dulu"}},
		Tags:         []string{"LEVEL UP"},
	}}
	want := map[domain.Kind]string{
		domain.KindHero:    "ANGKA PENTING",
		domain.KindGrid:    "tiga",
		domain.KindSplit:   "no image",
		domain.KindQuote:   "“isi”",
		domain.KindStats:   "90%",
		domain.KindImage:   "no image",
		domain.KindProcess: "01 Dengar",
		domain.KindFooter:  "ANGKA PENTING",
	}
	for _, k := range domain.Kinds() {
		t.Run(string(k), func(t *testing.T) {
			v.Slide.Type = k
			v.Layout = present.LayoutFor(v.Slide.ID)
			out := renderSlide(v, "#22d3ee", 90)
			assert.Contains(t, out, want[k])
		})
	}
}

func TestImageLabel(t *testing.T) {
	assert.Equal(t, "no image", imageLabel(""))
	assert.Equal(t, "https://example.com/a.png", imageLabel("https://example.com/a.png"))
	assert.Equal(t, "embedded image/png · 3 B", imageLabel("data:image/png;base64,YWJj"))
	assert.Equal(t, "embedded image (unreadable)", imageLabel("data:image/png,abc"))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "2 MiB", formatBytes(2<<20))
	assert.Equal(t, "1.5 MiB", formatBytes(3<<19))
	assert.Equal(t, "4 KiB", formatBytes(4096))
	assert.Equal(t, "12 B", formatBytes(12))
}

func TestReplayRestartsIntroAndKeepsEdits(t *testing.T) {
	gw := storage.NewGateway(storage.NewMemoryKV(), "")
	store := deck.Open(context.Background(), gw, domain.DefaultSlides)
	s := present.NewSession(store, nil, present.Options{Intro: present.DefaultIntro})
	m := send(t, New(context.Background(), s), tea.WindowSizeMsg{Width: 100, Height: 30})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	m = send(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, append(typed("!"), tea.KeyMsg{Type: tea.KeyCtrlS})...)
	require.Equal(t, 2, s.Index())
	title := s.Current().Title

	m = send(t, m, runes("g"))
	assert.True(t, s.IntroActive())
	assert.Equal(t, 0, s.Index())
	assert.Contains(t, m.View(), present.DefaultIntroText.Loading)

	send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.False(t, s.IntroActive())
	assert.Equal(t, title, store.Slides()[2].Title)
}
