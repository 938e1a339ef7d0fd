// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an sRGB color with 8-bit channels.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// ParseHex parses #RGB or #RRGGBB into an RGB value.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return RGB{}, fmt.Errorf("invalid hex color %q: want #RGB or #RRGGBB", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Hex formats the color as #RRGGBB.
func (c RGB) Hex() string {
	return strings.ToUpper(c.toColorful().Hex())
}

// String formats the color the way CSS does.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// ColorCombination is one background/text pair under evaluation.
type ColorCombination struct {
	Background RGB
	Text       RGB
	Name       string
}

// FeedbackRecord stores one submitted comfort rating.
type FeedbackRecord struct {
	Combination   ColorCombination
	Rating        int
	ContrastRatio float64
}

// ScoredRecord pairs a feedback record with its composite score.
type ScoredRecord struct {
	FeedbackRecord
	Score float64
}

// Result summarizes a completed contrast test.
type Result struct {
	BestCombination string
	ContrastRatio   float64
	ComfortRating   int
	Recommendations []string
}

// Config defines contrast test settings after flags and config are merged.
type Config struct {
	PromptsPath   string
	DefaultRating int
	SaveTheme     bool
}

// AppliedTheme is a color combination chosen as the display theme.
type AppliedTheme struct {
	ID            int64
	Name          string
	Background    RGB
	Text          RGB
	ContrastRatio float64
	ComfortRating int
	AppliedAt     time.Time
}
