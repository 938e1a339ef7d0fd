// Package session runs one contrast comfort test: it walks a catalog in order,
// collects comfort ratings and picks the best combination.
//
// An Engine is the session. It is not safe for concurrent use; each test taker
// needs an Engine of their own. Engines may share a catalog.
package session

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/verte-zerg/readease/internal/catalog"
	"github.com/verte-zerg/readease/internal/contrast"
	"github.com/verte-zerg/readease/internal/model"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 10
)

// Score weights. The contrast term saturates at the WCAG AAA ratio.
const (
	ratingWeight   = 0.6
	contrastWeight = 0.4
	contrastCap    = contrast.AAAThreshold
)

var (
	ErrOutOfRange    = errors.New("no candidate at cursor: sequence exhausted")
	ErrInvalidRating = errors.New("rating must be between 1 and 10")
	ErrNoData        = errors.New("no feedback recorded")
	ErrAlreadyRated  = errors.New("current candidate already rated")
)

var recommendations = []string{
	"Use this color combination for reading materials",
	"Consider adjusting text size and spacing",
	"Take regular breaks to reduce visual stress",
}

// Recommendations returns the advisory lines attached to every result.
func Recommendations() []string {
	return append([]string(nil), recommendations...)
}

// State is the lifecycle stage of a session.
type State int

const (
	NotStarted State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Completed:
		return "completed"
	default:
		return "not started"
	}
}

// Engine holds the cursor and feedback history of a single test run.
type Engine struct {
	catalog *catalog.Catalog
	cursor  int
	rated   bool
	started bool
	records []model.FeedbackRecord
}

// New starts a session over cat.
func New(cat *catalog.Catalog) *Engine {
	return &Engine{catalog: cat}
}

// Len returns the number of candidates in the session.
func (e *Engine) Len() int {
	return e.catalog.Len()
}

// Cursor returns the index of the current candidate.
func (e *Engine) Cursor() int {
	return e.cursor
}

// Catalog returns the catalog the session walks.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// State reports where the session is in its lifecycle.
func (e *Engine) State() State {
	switch {
	case e.cursor >= e.catalog.Len():
		return Completed
	case e.started:
		return InProgress
	default:
		return NotStarted
	}
}

// CurrentCombination returns the candidate under the cursor.
func (e *Engine) CurrentCombination() (model.ColorCombination, error) {
	combo, ok := e.catalog.Combination(e.cursor)
	if !ok {
		return model.ColorCombination{}, fmt.Errorf("%w (cursor %d of %d)", ErrOutOfRange, e.cursor, e.catalog.Len())
	}
	return combo, nil
}

// CurrentPrompt returns the prompt paired with the current candidate.
func (e *Engine) CurrentPrompt() (string, error) {
	prompt, ok := e.catalog.Prompt(e.cursor)
	if !ok {
		return "", fmt.Errorf("%w (cursor %d of %d)", ErrOutOfRange, e.cursor, e.catalog.Len())
	}
	return prompt, nil
}

// Advance moves to the next candidate and reports whether one remains.
// Once the sequence is exhausted, further calls return false.
func (e *Engine) Advance() bool {
	e.started = true
	if e.cursor < e.catalog.Len() {
		e.cursor++
		e.rated = false
	}
	return e.cursor < e.catalog.Len()
}

// RecordFeedback stores rating for the current candidate. It does not advance.
func (e *Engine) RecordFeedback(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	combo, err := e.CurrentCombination()
	if err != nil {
		return err
	}
	if e.rated {
		return fmt.Errorf("%w: %q", ErrAlreadyRated, combo.Name)
	}
	e.records = append(e.records, model.FeedbackRecord{
		Combination:   combo,
		Rating:        rating,
		ContrastRatio: contrast.Ratio(combo.Background, combo.Text),
	})
	e.rated = true
	e.started = true
	return nil
}

// Records returns a copy of the feedback recorded so far, in submission order.
func (e *Engine) Records() []model.FeedbackRecord {
	return append([]model.FeedbackRecord(nil), e.records...)
}

// Score combines a comfort rating with its capped contrast ratio.
func Score(rec model.FeedbackRecord) float64 {
	return float64(rec.Rating)*ratingWeight + math.Min(rec.ContrastRatio/contrastCap, 1.0)*contrastWeight
}

// Results picks the highest-scoring record. Ties go to the earliest record.
func (e *Engine) Results() (model.Result, error) {
	if len(e.records) == 0 {
		return model.Result{}, ErrNoData
	}
	best := e.records[0]
	bestScore := Score(best)
	for _, rec := range e.records[1:] {
		if s := Score(rec); s > bestScore {
			best, bestScore = rec, s
		}
	}
	return model.Result{
		BestCombination: best.Combination.Name,
		ContrastRatio:   roundTo(best.ContrastRatio, 2),
		ComfortRating:   best.Rating,
		Recommendations: Recommendations(),
	}, nil
}

// Ranking returns every record with its score, best first. Equal scores keep
// submission order.
func (e *Engine) Ranking() []model.ScoredRecord {
	out := make([]model.ScoredRecord, len(e.records))
	for i, rec := range e.records {
		out[i] = model.ScoredRecord{FeedbackRecord: rec, Score: Score(rec)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
