package app

import (
	"context"
	"testing"

	"mathbook/internal/content"
	"mathbook/internal/game"
	"mathbook/internal/state"
)

func testGame(t *testing.T) *game.Game {
	t.Helper()
	pack, err := content.Builtin()
	if err != nil {
		t.Fatalf("builtin pack: %v", err)
	}
	g := game.New(content.BuildLevels(pack), game.Options{Store: state.NewMemory()})
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func TestThemeModeCodec(t *testing.T) {
	cases := []struct {
		stored string
		want   ThemeMode
	}{
		{"v1:dark", ThemeDark},
		{"v1:light", ThemeLight},
		{"v1:system", ThemeSystem},
		{"v1:neon", ThemeSystem},
		// Unversioned legacy value, and a future version unknown here:
		// both fall back to the default instead of erroring.
		{"dark", ThemeSystem},
		{"v2:dark", ThemeSystem},
		{"", ThemeSystem},
	}
	for _, tc := range cases {
		if got := decodeThemeMode(tc.stored); got != tc.want {
			t.Fatalf("decode %q = %v, want %v", tc.stored, got, tc.want)
		}
	}
	for _, m := range []ThemeMode{ThemeSystem, ThemeLight, ThemeDark} {
		if got := decodeThemeMode(encodeThemeMode(m)); got != m {
			t.Fatalf("round trip %v = %v", m, got)
		}
	}
	if got := encodeThemeMode(ThemeMode("neon")); got != "v1:system" {
		t.Fatalf("encode unknown mode = %q", got)
	}
}

func TestBoolCodec(t *testing.T) {
	if !decodeBool(encodeBool(true)) || decodeBool(encodeBool(false)) {
		t.Fatalf("bool codec does not round trip")
	}
	if decodeBool("true") || decodeBool("v2:true") || decodeBool("") {
		t.Fatalf("unknown encodings must decode to false")
	}
}

func TestSettingsDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewSettings(testGame(t))
	if got := s.ThemeMode(ctx); got != ThemeSystem {
		t.Fatalf("default theme = %v", got)
	}
	if s.PureBlack(ctx) {
		t.Fatalf("default pure black = true")
	}
}

func TestSettingsPersistThroughGame(t *testing.T) {
	ctx := context.Background()
	g := testGame(t)
	s := NewSettings(g)

	s.SetThemeMode(ThemeDark)
	s.SetPureBlack(true)
	g.Flush()

	if got := s.ThemeMode(ctx); got != ThemeDark {
		t.Fatalf("theme = %v after set", got)
	}
	if !s.PureBlack(ctx) {
		t.Fatalf("pure black not persisted")
	}
}
