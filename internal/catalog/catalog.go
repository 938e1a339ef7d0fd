// Package catalog holds the ordered color combinations and prompts a contrast test walks through.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/verte-zerg/readease/internal/config"
	"github.com/verte-zerg/readease/internal/model"
)

var (
	ErrEmpty          = errors.New("catalog is empty")
	ErrLengthMismatch = errors.New("combinations and prompts differ in length")
	ErrEmptyName      = errors.New("combination name is empty")
	ErrDuplicateName  = errors.New("duplicate combination name")
	ErrEmptyPrompt    = errors.New("prompt is empty")
)

// Catalog is an immutable, ordered list of combinations paired 1:1 with prompts.
// A Catalog may be shared between any number of sessions.
type Catalog struct {
	combos  []model.ColorCombination
	prompts []string
	byName  map[string]int
}

// New validates and copies combos and prompts into a Catalog.
func New(combos []model.ColorCombination, prompts []string) (*Catalog, error) {
	if len(combos) == 0 {
		return nil, ErrEmpty
	}
	if len(combos) != len(prompts) {
		return nil, fmt.Errorf("%w: %d combinations, %d prompts", ErrLengthMismatch, len(combos), len(prompts))
	}
	c := &Catalog{
		combos:  make([]model.ColorCombination, len(combos)),
		prompts: make([]string, len(prompts)),
		byName:  make(map[string]int, len(combos)),
	}
	for i, combo := range combos {
		name := strings.TrimSpace(combo.Name)
		if name == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyName, i)
		}
		if _, ok := c.byName[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		prompt := strings.TrimSpace(prompts[i])
		if prompt == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyPrompt, i)
		}
		combo.Name = name
		c.combos[i] = combo
		c.prompts[i] = prompt
		c.byName[name] = i
	}
	return c, nil
}

// Len returns the number of candidates.
func (c *Catalog) Len() int {
	return len(c.combos)
}

// Combination returns the combination at position i.
func (c *Catalog) Combination(i int) (model.ColorCombination, bool) {
	if i < 0 || i >= len(c.combos) {
		return model.ColorCombination{}, false
	}
	return c.combos[i], true
}

// Prompt returns the prompt at position i.
func (c *Catalog) Prompt(i int) (string, bool) {
	if i < 0 || i >= len(c.prompts) {
		return "", false
	}
	return c.prompts[i], true
}

// Combinations returns a copy of all combinations in order.
func (c *Catalog) Combinations() []model.ColorCombination {
	return append([]model.ColorCombination(nil), c.combos...)
}

// Prompts returns a copy of all prompts in order.
func (c *Catalog) Prompts() []string {
	return append([]string(nil), c.prompts...)
}

// Lookup finds a combination by name.
func (c *Catalog) Lookup(name string) (model.ColorCombination, bool) {
	i, ok := c.byName[strings.TrimSpace(name)]
	if !ok {
		return model.ColorCombination{}, false
	}
	return c.combos[i], true
}

var defaultCombos = []model.ColorCombination{
	{Background: model.RGB{R: 255, G: 248, B: 229}, Text: model.RGB{}, Name: "Cream & Black"},
	{Background: model.RGB{R: 204, G: 232, B: 207}, Text: model.RGB{}, Name: "Mint & Black"},
	{Background: model.RGB{R: 203, G: 225, B: 241}, Text: model.RGB{}, Name: "Light Blue & Black"},
	{Background: model.RGB{R: 44, G: 44, B: 44}, Text: model.RGB{R: 255, G: 248, B: 229}, Name: "Dark Mode"},
	{Background: model.RGB{R: 250, G: 226, B: 197}, Text: model.RGB{}, Name: "Peach & Black"},
}

var defaultPrompts = []string{
	"Reading should be comfortable for your eyes.",
	"Focus on the clarity of these letters.",
	"Does this combination reduce visual stress?",
	"Are the words stable or do they move?",
	"Can you distinguish letters easily?",
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := New(defaultCombos, defaultPrompts)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
})

// Default returns the built-in catalog. Every call returns the same instance.
func Default() *Catalog {
	return defaultCatalog()
}

// DefaultPrompts returns a copy of the built-in prompts.
func DefaultPrompts() []string {
	return append([]string(nil), defaultPrompts...)
}

// FromConfig builds a catalog from palette entries. When prompts is nil, each
// entry's own prompt is used.
func FromConfig(entries []config.PaletteConfig, prompts []string) (*Catalog, error) {
	combos := make([]model.ColorCombination, 0, len(entries))
	entryPrompts := make([]string, 0, len(entries))
	for i, entry := range entries {
		bg, err := model.ParseHex(entry.Background)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d background: %w", i+1, err)
		}
		text, err := model.ParseHex(entry.Text)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d text: %w", i+1, err)
		}
		combos = append(combos, model.ColorCombination{Background: bg, Text: text, Name: entry.Name})
		entryPrompts = append(entryPrompts, entry.Prompt)
	}
	if prompts == nil {
		prompts = entryPrompts
	}
	return New(combos, prompts)
}

// Resolve picks the catalog for a run: configured palette entries first, then the
// built-in combinations with custom prompts, then the built-in catalog.
func Resolve(entries []config.PaletteConfig, prompts []string) (*Catalog, error) {
	if len(entries) > 0 {
		return FromConfig(entries, prompts)
	}
	if prompts != nil {
		return New(defaultCombos, prompts)
	}
	return Default(), nil
}
