package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/verte-zerg/readease/internal/catalog"
	"github.com/verte-zerg/readease/internal/model"
	"github.com/verte-zerg/readease/internal/session"
)

func TestRenderPalette(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPalette(&buf, catalog.Default(), false); err != nil {
		t.Fatalf("render palette: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header + 5 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !containsAll(lines[0], []string{"Name", "Background", "Text", "Ratio", "WCAG"}) {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if strings.Contains(lines[0], "Sample") {
		t.Fatalf("sample column must be omitted without color")
	}
	if !containsAll(lines[1], []string{"1", "Cream & Black", "#FFF8E5", "#000000", "19.81:1", "AAA"}) {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if !containsAll(lines[4], []string{"Dark Mode", "#2C2C2C", "#FFF8E5", "13.17:1"}) {
		t.Fatalf("unexpected dark mode row: %q", lines[4])
	}
}

func TestRenderSession(t *testing.T) {
	e := session.New(catalog.Default())
	for _, rating := range []int{9, 4} {
		if err := e.RecordFeedback(rating); err != nil {
			t.Fatalf("record: %v", err)
		}
		e.Advance()
	}
	var buf bytes.Buffer
	if err := RenderSession(&buf, e); err != nil {
		t.Fatalf("render session: %v", err)
	}
	out := buf.String()
	want := []string{
		"Best Color Combination: Cream & Black",
		"Contrast Ratio: 19.81:1",
		"Comfort Rating: 9/10",
		"- Use this color combination for reading materials",
		"- Take regular breaks to reduce visual stress",
		"Ranking (ratings @ )",
		"Mint & Black",
		"5.80",
		"2.80",
	}
	if !containsAll(out, want) {
		t.Fatalf("session output missing segments:\n%s", out)
	}
	if !strings.Contains(out, "   1  Cream & Black    9/10  19.81:1   5.80") {
		t.Fatalf("expected cream ranked with its rating:\n%s", out)
	}
}

func TestRenderSessionNoData(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSession(&buf, session.New(catalog.Default())); err == nil {
		t.Fatalf("expected error for empty session")
	}
}

func TestWriteJSON(t *testing.T) {
	res := model.Result{
		BestCombination: "Dark Mode",
		ContrastRatio:   13.17,
		ComfortRating:   8,
		Recommendations: session.Recommendations(),
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if got["best_combination"] != "Dark Mode" || got["contrast_ratio"] != "13.17" || got["comfort_rating"] != float64(8) {
		t.Fatalf("unexpected json: %s", buf.String())
	}
	if recs, ok := got["recommendations"].([]any); !ok || len(recs) != 3 {
		t.Fatalf("expected 3 recommendations: %s", buf.String())
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 10, 5.5}); got != " @+" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{5, 5}); got != "++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
}

func TestSwatchContainsSample(t *testing.T) {
	combo, _ := catalog.Default().Lookup("Dark Mode")
	if !strings.Contains(Swatch(combo), "Aa") {
		t.Fatalf("swatch must contain sample text")
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
