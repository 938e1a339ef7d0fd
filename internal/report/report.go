package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/readease/internal/catalog"
	"github.com/verte-zerg/readease/internal/contrast"
	"github.com/verte-zerg/readease/internal/model"
	"github.com/verte-zerg/readease/internal/session"
)

const swatchText = " Aa "

// RenderPalette prints every catalog entry with its contrast ratio and WCAG level.
// When useColor is set, a swatch rendered in the pair's own colors is included.
func RenderPalette(w io.Writer, cat *catalog.Catalog, useColor bool) error {
	headers := []string{"#", "Name", "Background", "Text", "Ratio", "WCAG"}
	if useColor {
		headers = append(headers, "Sample")
	}
	rows := make([][]string, 0, cat.Len())
	for i, combo := range cat.Combinations() {
		ratio := contrast.Ratio(combo.Background, combo.Text)
		row := []string{
			strconv.Itoa(i + 1),
			combo.Name,
			combo.Background.Hex(),
			combo.Text.Hex(),
			FormatRatio(ratio),
			contrast.LevelFor(ratio).String(),
		}
		if useColor {
			row = append(row, Swatch(combo))
		}
		rows = append(rows, row)
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 4: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderResult prints the recommendation block of a finished test.
func RenderResult(w io.Writer, res model.Result) error {
	if _, err := fmt.Fprintln(w, "Test Results"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Color Combination: %s\n", res.BestCombination); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Contrast Ratio: %.2f:1\n", res.ContrastRatio); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Comfort Rating: %d/10\n", res.ComfortRating); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Recommendations:"); err != nil {
		return err
	}
	for _, rec := range res.Recommendations {
		if _, err := fmt.Fprintf(w, "- %s\n", rec); err != nil {
			return err
		}
	}
	return nil
}

// RenderSession prints the result of e followed by every rated candidate, best first.
func RenderSession(w io.Writer, e *session.Engine) error {
	res, err := e.Results()
	if err != nil {
		return err
	}
	if err := RenderResult(w, res); err != nil {
		return err
	}
	records := e.Records()
	ratings := make([]float64, len(records))
	for i, rec := range records {
		ratings[i] = float64(rec.Rating)
	}
	if _, err := fmt.Fprintf(w, "\nRanking (ratings %s)\n", Sparkline(ratings)); err != nil {
		return err
	}
	lines := formatTable(RankingHeaders(), RankingRows(e.Ranking()), map[int]bool{0: true, 2: true, 3: true, 4: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RankingHeaders returns the column titles used for ranking tables.
func RankingHeaders() []string {
	return []string{"Rank", "Name", "Rating", "Ratio", "Score"}
}

// RankingRows formats ranking entries as table cells.
func RankingRows(ranking []model.ScoredRecord) [][]string {
	rows := make([][]string, 0, len(ranking))
	for i, r := range ranking {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Combination.Name,
			fmt.Sprintf("%d/10", r.Rating),
			FormatRatio(r.ContrastRatio),
			fmt.Sprintf("%.2f", r.Score),
		})
	}
	return rows
}

// FormatRatio formats a contrast ratio as "x.xx:1".
func FormatRatio(ratio float64) string {
	return fmt.Sprintf("%.2f:1", ratio)
}

// Swatch renders a short sample in the combination's colors.
func Swatch(combo model.ColorCombination) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(combo.Background.Hex())).
		Foreground(lipgloss.Color(combo.Text.Hex())).
		Render(swatchText)
}

type resultJSON struct {
	BestCombination string   `json:"best_combination"`
	ContrastRatio   string   `json:"contrast_ratio"`
	ComfortRating   int      `json:"comfort_rating"`
	Recommendations []string `json:"recommendations"`
}

// WriteJSON writes res as an indented JSON object.
func WriteJSON(w io.Writer, res model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resultJSON{
		BestCombination: res.BestCombination,
		ContrastRatio:   strconv.FormatFloat(res.ContrastRatio, 'f', 2, 64),
		ComfortRating:   res.ComfortRating,
		Recommendations: res.Recommendations,
	})
}
