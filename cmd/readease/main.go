// Package main provides the CLI entrypoint for readease.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/readease/internal/catalog"
	"github.com/verte-zerg/readease/internal/config"
	"github.com/verte-zerg/readease/internal/contrast"
	"github.com/verte-zerg/readease/internal/model"
	"github.com/verte-zerg/readease/internal/report"
	"github.com/verte-zerg/readease/internal/session"
	"github.com/verte-zerg/readease/internal/store"
	"github.com/verte-zerg/readease/internal/tui"
)

const (
	defaultRating  = 5
	defaultHistory = 0
)

var (
	testPrompts       string
	testDefaultRating int
	testSaveTheme     bool

	rateJSON  bool
	rateApply bool

	themeHistory int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "readease",
		Short:         "Find the most comfortable reading colors",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	rootCmd.PersistentFlags().StringVar(&testPrompts, "prompts", "", "file with one test prompt per line")
	rootCmd.Flags().IntVar(&testDefaultRating, "default-rating", defaultRating, "initial slider position (1-10)")
	rootCmd.Flags().BoolVar(&testSaveTheme, "save-theme", true, "store the applied theme")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPaletteCmd())
	rootCmd.AddCommand(newRateCmd())
	rootCmd.AddCommand(newThemeCmd())

	return rootCmd
}

func loadSettings(cmd *cobra.Command) (config.FileConfig, model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "prompts", &testPrompts, fileCfg.Test.Prompts)
	applyIntConfig(cmd, "default-rating", &testDefaultRating, fileCfg.Test.DefaultRating)
	applyBoolConfig(cmd, "save-theme", &testSaveTheme, fileCfg.Test.SaveTheme)

	cfg := model.Config{
		PromptsPath:   testPrompts,
		DefaultRating: testDefaultRating,
		SaveTheme:     testSaveTheme,
	}
	if err := validateConfig(cfg); err != nil {
		return config.FileConfig{}, model.Config{}, err
	}
	return fileCfg, cfg, nil
}

func loadCatalog(fileCfg config.FileConfig, cfg model.Config) (*catalog.Catalog, error) {
	var prompts []string
	if cfg.PromptsPath != "" {
		loaded, err := catalog.LoadPrompts(cfg.PromptsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load prompts from %s: %w", cfg.PromptsPath, err)
		}
		prompts = loaded
	}
	cat, err := catalog.Resolve(fileCfg.Palette, prompts)
	if err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}
	return cat, nil
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(fileCfg, cfg)
	if err != nil {
		return err
	}

	var (
		saver tui.ThemeSaver
		theme *model.ColorCombination
	)
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open theme db, themes will not be saved: %v\n", err)
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		if cfg.SaveTheme {
			saver = st
		}
		theme = currentThemeCombination(st)
	}

	engine := session.New(cat)
	m := tui.NewModel(engine, cfg.DefaultRating, saver, theme)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if _, done := m.Result(); done {
		if err := report.RenderSession(cmd.OutOrStdout(), engine); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
	return nil
}

func currentThemeCombination(st *store.Store) *model.ColorCombination {
	applied, ok, err := st.CurrentTheme(context.Background())
	if err != nil {
		logErrf("failed to load current theme: %v\n", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &model.ColorCombination{Background: applied.Background, Text: applied.Text, Name: applied.Name}
}

func newPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List test color combinations with contrast ratios",
		Args:  cobra.NoArgs,
		RunE:  runPaletteCmd,
	}
}

func runPaletteCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(fileCfg, cfg)
	if err != nil {
		return err
	}
	return report.RenderPalette(cmd.OutOrStdout(), cat, isTerminal(os.Stdout))
}

func newRateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate RATING...",
		Short: "Score comfort ratings without the TUI, one per combination in palette order",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRateCmd,
	}
	cmd.Flags().BoolVar(&rateJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&rateApply, "apply", false, "store the best combination as the applied theme")
	return cmd
}

func runRateCmd(cmd *cobra.Command, args []string) error {
	fileCfg, cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(fileCfg, cfg)
	if err != nil {
		return err
	}
	ratings, err := parseRatings(args)
	if err != nil {
		return err
	}
	engine, err := runRatings(cat, ratings)
	if err != nil {
		return err
	}
	res, err := engine.Results()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rateJSON {
		err = report.WriteJSON(out, res)
	} else {
		err = report.RenderSession(out, engine)
	}
	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if rateApply {
		return applyResult(cat, res)
	}
	return nil
}

func parseRatings(args []string) ([]int, error) {
	ratings := make([]int, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			r, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid rating %q: %w", part, err)
			}
			ratings = append(ratings, r)
		}
	}
	if len(ratings) == 0 {
		return nil, fmt.Errorf("at least one rating is required")
	}
	return ratings, nil
}

// runRatings drives an engine the same way the TUI does: record, then advance.
func runRatings(cat *catalog.Catalog, ratings []int) (*session.Engine, error) {
	if len(ratings) > cat.Len() {
		return nil, fmt.Errorf("got %d ratings for %d combinations", len(ratings), cat.Len())
	}
	engine := session.New(cat)
	for i, r := range ratings {
		if err := engine.RecordFeedback(r); err != nil {
			return nil, fmt.Errorf("rating %d: %w", i+1, err)
		}
		engine.Advance()
	}
	return engine, nil
}

func applyResult(cat *catalog.Catalog, res model.Result) error {
	combo, ok := cat.Lookup(res.BestCombination)
	if !ok {
		return fmt.Errorf("combination %q not in palette", res.BestCombination)
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if _, err := st.SaveTheme(context.Background(), model.AppliedTheme{
		Name:          combo.Name,
		Background:    combo.Background,
		Text:          combo.Text,
		ContrastRatio: res.ContrastRatio,
		ComfortRating: res.ComfortRating,
	}); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	logErrf("Applied theme %s\n", combo.Name)
	return nil
}

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the applied theme",
		Args:  cobra.NoArgs,
		RunE:  runThemeCmd,
	}
	cmd.Flags().IntVar(&themeHistory, "history", defaultHistory, "also list the last N applied themes")
	return cmd
}

func runThemeCmd(cmd *cobra.Command, _ []string) error {
	if themeHistory < 0 {
		return fmt.Errorf("--history must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	current, ok, err := st.CurrentTheme(ctx)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	if !ok {
		logErrln("No theme applied yet. Run: readease")
		return errors.New("no theme applied")
	}
	out := cmd.OutOrStdout()
	useColor := isTerminal(os.Stdout)
	if err := writeTheme(out, current, useColor); err != nil {
		return err
	}
	if themeHistory == 0 {
		return nil
	}
	history, err := st.ListThemes(ctx, themeHistory)
	if err != nil {
		return fmt.Errorf("failed to load theme history: %w", err)
	}
	if _, err := fmt.Fprintln(out, "\nHistory"); err != nil {
		return err
	}
	for _, theme := range history {
		if _, err := fmt.Fprintf(out, "%s  %s  %s\n", theme.AppliedAt.Local().Format("2006-01-02 15:04"), theme.Name, report.FormatRatio(theme.ContrastRatio)); err != nil {
			return err
		}
	}
	return nil
}

func writeTheme(w io.Writer, theme model.AppliedTheme, useColor bool) error {
	combo := model.ColorCombination{Background: theme.Background, Text: theme.Text, Name: theme.Name}
	ratio := contrast.Ratio(theme.Background, theme.Text)
	lines := []string{
		fmt.Sprintf("Theme: %s", theme.Name),
		fmt.Sprintf("Background: %s (%s)", theme.Background.Hex(), theme.Background),
		fmt.Sprintf("Text: %s (%s)", theme.Text.Hex(), theme.Text),
		fmt.Sprintf("Contrast: %s %s", report.FormatRatio(ratio), contrast.LevelFor(ratio)),
		fmt.Sprintf("Comfort Rating: %d/10", theme.ComfortRating),
		fmt.Sprintf("Applied: %s", theme.AppliedAt.Local().Format("2006-01-02 15:04")),
	}
	if useColor {
		lines = append(lines, "Sample: "+report.Swatch(combo))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# readease configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# prompts = "/path/to/prompts.txt"  # One prompt per line, paired with palette entries by position
# default-rating = %d               # Initial slider position (1-10)
# save-theme = true                 # Store the applied theme

# Custom palette. Replaces the built-in combinations when present.
# [[palette]]
# name = "Cream & Black"
# background = "#FFF8E5"
# text = "#000000"
# prompt = "Reading should be comfortable for your eyes."
`,
		defaultRating,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.DefaultRating < session.MinRating || cfg.DefaultRating > session.MaxRating {
		return fmt.Errorf("--default-rating must be between %d and %d", session.MinRating, session.MaxRating)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
