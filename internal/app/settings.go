package app

import (
	"context"
	"strings"

	"mathbook/internal/game"
)

// Stored settings use an explicit versioned codec per field so a future
// format change can coexist with old rows. Unknown or unversioned
// values decode to the field's default, never to an error.
const (
	keyThemeMode = "theme_mode"
	keyPureBlack = "pure_black"

	codecV1 = "v1:"
)

type ThemeMode string

const (
	ThemeSystem ThemeMode = "system"
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
)

func encodeThemeMode(m ThemeMode) string {
	switch m {
	case ThemeLight, ThemeDark:
		return codecV1 + string(m)
	default:
		return codecV1 + string(ThemeSystem)
	}
}

func decodeThemeMode(s string) ThemeMode {
	v, ok := strings.CutPrefix(s, codecV1)
	if !ok {
		return ThemeSystem
	}
	switch ThemeMode(v) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeSystem
	}
}

func encodeBool(v bool) string {
	if v {
		return codecV1 + "true"
	}
	return codecV1 + "false"
}

func decodeBool(s string) bool {
	return s == codecV1+"true"
}

// Settings exposes the typed theme settings stored in the game's
// key-value table.
type Settings struct {
	game *game.Game
}

func NewSettings(g *game.Game) *Settings {
	return &Settings{game: g}
}

func (s *Settings) ThemeMode(ctx context.Context) ThemeMode {
	v, ok := s.game.LoadKeyValue(ctx, keyThemeMode)
	if !ok {
		return ThemeSystem
	}
	return decodeThemeMode(v)
}

func (s *Settings) SetThemeMode(m ThemeMode) {
	s.game.StoreKeyValue(keyThemeMode, encodeThemeMode(m))
}

func (s *Settings) PureBlack(ctx context.Context) bool {
	v, ok := s.game.LoadKeyValue(ctx, keyPureBlack)
	if !ok {
		return false
	}
	return decodeBool(v)
}

func (s *Settings) SetPureBlack(v bool) {
	s.game.StoreKeyValue(keyPureBlack, encodeBool(v))
}
