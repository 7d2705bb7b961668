package board

import (
	"fmt"
	"strings"

	"github.com/FlyingObject1024/information-board/config"
)

// Color is an RGB triple for the panel. The display hardware has no alpha
// channel; black doubles as "off".
type Color struct {
	R, G, B uint8
}

var (
	ColorBlack   = Color{0, 0, 0}
	ColorWhite   = Color{255, 255, 255}
	ColorRed     = Color{255, 0, 0}
	ColorGreen   = Color{0, 255, 0}
	ColorBlue    = Color{0, 0, 255}
	ColorMagenta = Color{255, 0, 255}
	ColorOrange  = Color{255, 172, 0}
	ColorYellow  = Color{255, 255, 0}
	ColorCyan    = Color{0, 255, 255}
)

var colorNames = map[string]Color{
	"black":   ColorBlack,
	"white":   ColorWhite,
	"red":     ColorRed,
	"green":   ColorGreen,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"orange":  ColorOrange,
	"yellow":  ColorYellow,
	"cyan":    ColorCyan,
}

// ParseColor resolves a configured color name.
func ParseColor(name string) (Color, error) {
	c, ok := colorNames[strings.ToLower(name)]
	if !ok {
		return Color{}, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

// ColorRule binds a train-type keyword to a display color. Rules form an
// ordered table: the first rule whose keyword is a substring of the train
// type wins, so longer compound types must precede their components
// (快速急行 before 急行 and 快速).
type ColorRule struct {
	Keyword string
	Color   Color
}

// DefaultTypeColors is the built-in train-type color table.
func DefaultTypeColors() []ColorRule {
	return []ColorRule{
		{"快速急行", ColorOrange},
		{"通勤特快", ColorMagenta},
		{"中央特快", ColorBlue},
		{"区間快速", ColorGreen},
		{"各駅停車", ColorBlue},
		{"新快速", ColorBlue},
		{"特快", ColorMagenta},
		{"特急", ColorRed},
		{"急行", ColorRed},
		{"快速", ColorRed},
		{"準急", ColorGreen},
		{"普通", ColorGreen},
		{"各駅", ColorBlue},
		{"各停", ColorBlue},
	}
}

// TypeColorsFromConfig builds the rule table from configuration, falling
// back to the built-in table when no rules are configured.
func TypeColorsFromConfig(rules []config.ColorRuleConfig) ([]ColorRule, error) {
	if len(rules) == 0 {
		return DefaultTypeColors(), nil
	}
	out := make([]ColorRule, 0, len(rules))
	for _, r := range rules {
		c, err := ParseColor(r.Color)
		if err != nil {
			return nil, fmt.Errorf("type color for %q: %w", r.Keyword, err)
		}
		out = append(out, ColorRule{Keyword: r.Keyword, Color: c})
	}
	return out, nil
}

// ClassifyType returns the color for a train type, first matching rule wins.
// Unmatched types display in white.
func ClassifyType(rules []ColorRule, trainType string) Color {
	for _, r := range rules {
		if strings.Contains(trainType, r.Keyword) {
			return r.Color
		}
	}
	return ColorWhite
}
