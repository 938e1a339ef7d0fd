// Package contrast implements WCAG 2.x relative luminance and contrast ratio math.
package contrast

import (
	"math"

	"github.com/verte-zerg/readease/internal/model"
)

// WCAG thresholds for normal-size text.
const (
	AALargeThreshold = 3.0
	AAThreshold      = 4.5
	AAAThreshold     = 7.0
)

// Level is the WCAG conformance level a contrast ratio reaches.
type Level int

const (
	Fail Level = iota
	AALarge
	AA
	AAA
)

func (l Level) String() string {
	switch l {
	case AAA:
		return "AAA"
	case AA:
		return "AA"
	case AALarge:
		return "AA Large"
	default:
		return "Fail"
	}
}

// Luminance returns the relative luminance of c, from 0 (black) to 1 (white).
func Luminance(c model.RGB) float64 {
	r := linearize(float64(c.R) / 255.0)
	g := linearize(float64(c.G) / 255.0)
	b := linearize(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Ratio returns the contrast ratio between bg and text, in [1, 21].
// The result does not depend on argument order.
func Ratio(bg, text model.RGB) float64 {
	l1 := Luminance(bg)
	l2 := Luminance(text)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// LevelFor classifies ratio against the WCAG thresholds.
func LevelFor(ratio float64) Level {
	switch {
	case ratio >= AAAThreshold:
		return AAA
	case ratio >= AAThreshold:
		return AA
	case ratio >= AALargeThreshold:
		return AALarge
	default:
		return Fail
	}
}
