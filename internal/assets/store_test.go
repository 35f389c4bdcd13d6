package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-ski/internal/core"
)

func writeSprite(t *testing.T, dir, name, art string) {
	t.Helper()
	spriteDir := filepath.Join(dir, "sprites")
	if err := os.MkdirAll(spriteDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(spriteDir, name+SpriteExt), []byte(art), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedSprites(t *testing.T) {
	s := NewStore(Options{})

	tests := []struct {
		name       string
		cols, rows int
	}{
		{"skier", 3, 3},
		{"skier-shadow", 3, 3},
		{"tree", 3, 3},
		{"flag", 2, 2},
		{"ramp", 4, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sp := s.Sprite(tc.name)
			if sp.Source != SourceEmbedded {
				t.Fatalf("source = %v, expected embedded", sp.Source)
			}
			if sp.Cols() != tc.cols || sp.Rows() != tc.rows {
				t.Errorf("size = %dx%d, expected %dx%d", sp.Cols(), sp.Rows(), tc.cols, tc.rows)
			}
		})
	}
}

func TestPlaceholderFallback(t *testing.T) {
	s := NewStore(Options{Dir: t.TempDir()})

	sp := s.Sprite("yeti")
	if sp == nil {
		t.Fatal("Sprite() must never return nil")
	}
	if sp.Source != SourcePlaceholder {
		t.Errorf("source = %v, expected placeholder", sp.Source)
	}
	if string(sp.Lines[0]) != "yeti" || sp.Color != core.ColorBrightRed {
		t.Errorf("placeholder should show the name in red, got %q %v", string(sp.Lines[0]), sp.Color)
	}

	w, h := s.Size("yeti", 6, 12)
	if w != 24 || h != 12 {
		t.Errorf("placeholder size = %dx%d units, expected 24x12", w, h)
	}
}

func TestOverrideAndReload(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, dir, "tree", "A\nA\nA\nA\n")

	s := NewStore(Options{Dir: dir, Colors: map[string]string{"tree": "green"}})

	sp := s.Sprite("tree")
	if sp.Source != SourceFile || sp.Rows() != 4 {
		t.Fatalf("expected 4-row file sprite, got %v with %d rows", sp.Source, sp.Rows())
	}
	if sp.Color != core.ColorGreen {
		t.Errorf("color = %v, expected green", sp.Color)
	}

	writeSprite(t, dir, "tree", "BB\n")
	if s.Sprite("tree").Rows() != 4 {
		t.Error("cached sprite should not change before Reload")
	}

	s.Reload("tree")
	if got := s.Sprite("tree"); got.Rows() != 1 || got.Cols() != 2 {
		t.Errorf("after Reload size = %dx%d, expected 2x1", got.Cols(), got.Rows())
	}
}

func TestEmptyOverrideFallsBackToEmbedded(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, dir, "flag", "\n\n")

	s := NewStore(Options{Dir: dir})
	if sp := s.Sprite("flag"); sp.Source != SourceEmbedded {
		t.Errorf("source = %v, expected embedded", sp.Source)
	}
}

func TestSpriteDraw(t *testing.T) {
	sp, ok := parseSprite("box", []byte("a b\n c \r\n"))
	if !ok {
		t.Fatal("parseSprite failed")
	}
	sp.Color = core.ColorCyan

	dst := core.NewScreen(5, 3)
	dst.Set(2, 1, 'x')
	sp.Draw(dst, 1, 1)

	// Spaces are transparent
	if dst.Row(1) != " axb " {
		t.Errorf("row 1 = %q", dst.Row(1))
	}
	if dst.Get(3, 2) != ' ' || dst.Get(2, 2) != 'c' {
		t.Errorf("row 2 = %q", dst.Row(2))
	}
	if dst.GetCell(2, 2).Color != core.ColorCyan {
		t.Error("drawn glyphs should carry the sprite color")
	}
}

func TestInventory(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, dir, "flag", "F\n")

	s := NewStore(Options{Dir: dir})
	entries := s.Inventory([]string{"tree", "flag", "yeti", "tree"})

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := map[string]Source{"flag": SourceFile, "tree": SourceEmbedded, "yeti": SourcePlaceholder}
	for _, e := range entries {
		if want[e.Name] != e.Source {
			t.Errorf("%s source = %v, expected %v", e.Name, e.Source, want[e.Name])
		}
	}
	if entries[0].Name != "flag" || entries[2].Name != "yeti" {
		t.Error("inventory should be sorted by name")
	}
}

func TestWatcherReportsSpriteChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	// Non-sprite files are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tree.txt"), []byte("T"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != "tree" {
			t.Errorf("event = %q, expected tree", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sprite change")
	}
}

func TestSpriteName(t *testing.T) {
	tests := []struct {
		path string
		name string
		ok   bool
	}{
		{"/a/sprites/tree.txt", "tree", true},
		{"skier-se.TXT", "skier-se", true},
		{"/a/readme.md", "", false},
		{".txt", "", false},
	}
	for _, tc := range tests {
		name, ok := spriteName(tc.path)
		if name != tc.name || ok != tc.ok {
			t.Errorf("spriteName(%q) = %q, %v; expected %q, %v", tc.path, name, ok, tc.name, tc.ok)
		}
	}
}
