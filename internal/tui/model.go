// Package tui provides the Bubble Tea contrast comfort test interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/readease/internal/model"
	"github.com/verte-zerg/readease/internal/report"
	"github.com/verte-zerg/readease/internal/session"
)

type screen int

const (
	screenIntro screen = iota
	screenTest
	screenResults
)

const sliderCells = session.MaxRating

// ThemeSaver persists the theme chosen on the results screen.
type ThemeSaver interface {
	SaveTheme(ctx context.Context, theme model.AppliedTheme) (int64, error)
}

// Model implements the Bubble Tea contrast test UI.
type Model struct {
	engine        *session.Engine
	saver         ThemeSaver
	defaultRating int
	theme         *model.ColorCombination

	screen screen
	rating int
	combo  model.ColorCombination
	prompt string

	result  model.Result
	ranking table.Model
	applied bool

	errMsg string
	notice string

	width  int
	height int
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	sliderOnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cardStyle     = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// NewModel constructs a contrast test model. saver and theme may be nil; theme
// colors the surrounding chrome when set.
func NewModel(engine *session.Engine, defaultRating int, saver ThemeSaver, theme *model.ColorCombination) *Model {
	if defaultRating < session.MinRating || defaultRating > session.MaxRating {
		defaultRating = 5
	}
	return &Model{
		engine:        engine,
		saver:         saver,
		defaultRating: defaultRating,
		theme:         theme,
		rating:        defaultRating,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Result returns the final result and whether the test completed.
func (m *Model) Result() (model.Result, bool) {
	return m.result, m.screen == screenResults
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || key == "q" || key == "esc" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenIntro:
			if key == "enter" || key == " " {
				m.start()
			}
		case screenTest:
			m.handleTestKey(key)
		case screenResults:
			m.handleResultsKey(msg)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) start() {
	m.errMsg = ""
	if err := m.loadCurrent(); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.screen = screenTest
}

func (m *Model) handleTestKey(key string) {
	switch key {
	case "left", "h", "-":
		m.setRating(m.rating - 1)
	case "right", "l", "+", "=":
		m.setRating(m.rating + 1)
	case "0":
		m.setRating(session.MaxRating)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.setRating(int(key[0] - '0'))
	case "enter", " ":
		m.submit()
	}
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "a":
		m.applyTheme()
	default:
		m.ranking, _ = m.ranking.Update(msg)
	}
}

func (m *Model) setRating(r int) {
	if r < session.MinRating {
		r = session.MinRating
	}
	if r > session.MaxRating {
		r = session.MaxRating
	}
	m.rating = r
}

func (m *Model) loadCurrent() error {
	combo, err := m.engine.CurrentCombination()
	if err != nil {
		return err
	}
	prompt, err := m.engine.CurrentPrompt()
	if err != nil {
		return err
	}
	m.combo = combo
	m.prompt = prompt
	return nil
}

// submit records the rating and advances, in that order.
func (m *Model) submit() {
	m.errMsg = ""
	if err := m.engine.RecordFeedback(m.rating); err != nil {
		m.errMsg = err.Error()
		return
	}
	if m.engine.Advance() {
		if err := m.loadCurrent(); err != nil {
			m.errMsg = err.Error()
			return
		}
		m.rating = m.defaultRating
		return
	}
	m.finish()
}

func (m *Model) finish() {
	res, err := m.engine.Results()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.result = res
	m.ranking = buildRankingTable(m.engine.Ranking())
	m.screen = screenResults
}

func (m *Model) applyTheme() {
	combo, ok := m.engine.Catalog().Lookup(m.result.BestCombination)
	if !ok {
		m.errMsg = fmt.Sprintf("combination %q not in catalog", m.result.BestCombination)
		return
	}
	m.theme = &combo
	m.applied = true
	m.errMsg = ""
	if m.saver == nil {
		m.notice = fmt.Sprintf("Applied %s", combo.Name)
		return
	}
	_, err := m.saver.SaveTheme(context.Background(), model.AppliedTheme{
		Name:          combo.Name,
		Background:    combo.Background,
		Text:          combo.Text,
		ContrastRatio: m.result.ContrastRatio,
		ComfortRating: m.result.ComfortRating,
	})
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to save theme: %v", err)
		return
	}
	m.notice = fmt.Sprintf("Applied and saved %s", combo.Name)
}

func buildRankingTable(ranking []model.ScoredRecord) table.Model {
	headers := report.RankingHeaders()
	rows := report.RankingRows(ranking)
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		w := lipgloss.Width(h)
		for _, row := range rows {
			if cw := lipgloss.Width(row[i]); cw > w {
				w = cw
			}
		}
		columns[i] = table.Column{Title: h, Width: w}
	}
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}
	return table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(len(tableRows)+1),
		table.WithFocused(true),
	)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.screen {
	case screenTest:
		content = m.renderTest()
	case screenResults:
		content = m.renderResults()
	default:
		content = m.renderIntro()
	}
	if msg := m.renderStatus(); msg != "" {
		content += "\n\n" + msg
	}
	content = m.chromeStyle().Render(cardStyle.Render(content))
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	opts := m.whitespaceOptions()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content, opts...)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content, opts...)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer, opts...)
	return body + "\n" + footerLine
}

func (m *Model) chromeStyle() lipgloss.Style {
	if m.theme == nil {
		return lipgloss.NewStyle()
	}
	return themeStyle(*m.theme)
}

func (m *Model) whitespaceOptions() []lipgloss.WhitespaceOption {
	if m.theme == nil {
		return nil
	}
	return []lipgloss.WhitespaceOption{lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background.Hex()))}
}

func themeStyle(combo model.ColorCombination) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(combo.Background.Hex())).
		Foreground(lipgloss.Color(combo.Text.Hex()))
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := int(float64(m.width) * 0.70)
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) renderIntro() string {
	lines := []string{
		titleStyle.Render("Contrast Comfort Test"),
		"",
		wrapText("This test will help determine the most comfortable text and background color combination for your reading experience.", m.contentWidth()-6),
		"",
		mutedStyle.Render(fmt.Sprintf("%d combinations. Press enter to start.", m.engine.Len())),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTest() string {
	inner := m.contentWidth() - 6
	stimulus := themeStyle(m.combo).
		Padding(2, 3).
		Width(inner).
		Align(lipgloss.Center).
		Render(wrapText(m.prompt, inner-6))
	lines := []string{
		stimulus,
		"",
		fmt.Sprintf("Current combination: %s", m.combo.Name),
		"How comfortable is this combination for reading?",
		"",
		renderSlider(m.rating),
		mutedStyle.Render("Uncomfortable (1)  ·  Very Comfortable (10)"),
	}
	return strings.Join(lines, "\n")
}

func renderSlider(rating int) string {
	filled := strings.Repeat("■", rating)
	empty := strings.Repeat("□", sliderCells-rating)
	return fmt.Sprintf("[%s%s] %2d/10", sliderOnStyle.Render(filled), mutedStyle.Render(empty), rating)
}

func (m *Model) renderResults() string {
	lines := []string{
		titleStyle.Render("Test Results"),
		"",
		fmt.Sprintf("Best Color Combination: %s", m.result.BestCombination),
		fmt.Sprintf("Contrast Ratio: %s", report.FormatRatio(m.result.ContrastRatio)),
		fmt.Sprintf("Comfort Rating: %d/10", m.result.ComfortRating),
		"",
		titleStyle.Render("Recommendations:"),
	}
	for _, rec := range m.result.Recommendations {
		lines = append(lines, "• "+rec)
	}
	lines = append(lines, "", m.ranking.View())
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	switch {
	case m.errMsg != "":
		return errorStyle.Render(m.errMsg)
	case m.notice != "":
		return noticeStyle.Render(m.notice)
	default:
		return ""
	}
}

func (m *Model) renderFooter() string {
	var segments []string
	switch m.screen {
	case screenIntro:
		segments = []string{"enter: start", "q: quit"}
	case screenTest:
		segments = []string{
			fmt.Sprintf("Candidate %d/%d", m.engine.Cursor()+1, m.engine.Len()),
			"←/→ or 1-9,0: rate",
			"enter: continue",
			"q: quit",
		}
	case screenResults:
		apply := "a: apply theme"
		if m.applied {
			apply = "theme applied"
		}
		segments = []string{apply, "↑/↓: scroll", "q: quit"}
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
