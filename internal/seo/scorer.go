// Package seo provides the Scorer seam used by SEO ingestion. The only
// implementation is a placeholder: it crawls nothing and draws a score from
// the injected random source.
package seo

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/tbourn/go-optimizer-dashboard/internal/randx"
)

// ErrInvalidURL is returned for a URL that cannot be parsed.
var ErrInvalidURL = errors.New("invalid url")

// Result is one scorer verdict.
type Result struct {
	Score           int
	TitleOptimized  bool
	MetaDescription string
	Suggestions     []string
}

// Scorer assesses a URL.
type Scorer interface {
	Score(ctx context.Context, rawURL string) (Result, error)
}

// DefaultSuggestions are returned, in order, by PlaceholderScorer.
var DefaultSuggestions = []string{
	"Optimize page title for target keywords",
	"Improve meta description length",
	"Add structured data markup",
	"Enhance internal linking",
}

// PlaceholderMeta is the meta description PlaceholderScorer reports.
const PlaceholderMeta = "AI-generated meta description optimized for search engines"

// PlaceholderScorer scores uniformly in [MinScore, MaxScore].
type PlaceholderScorer struct {
	Rand     *randx.Source
	MinScore int
	MaxScore int
}

// NewPlaceholderScorer returns a scorer drawing from [70, 95].
func NewPlaceholderScorer(r *randx.Source) *PlaceholderScorer {
	return &PlaceholderScorer{Rand: r, MinScore: 70, MaxScore: 95}
}

// Score validates rawURL loosely and returns a random score with the fixed
// suggestion list.
func (s *PlaceholderScorer) Score(ctx context.Context, rawURL string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if _, err := url.Parse(strings.TrimSpace(rawURL)); err != nil {
		return Result{}, ErrInvalidURL
	}
	sugg := make([]string, len(DefaultSuggestions))
	copy(sugg, DefaultSuggestions)
	return Result{
		Score:           s.Rand.IntRange(s.MinScore, s.MaxScore),
		TitleOptimized:  s.Rand.Bool(),
		MetaDescription: PlaceholderMeta,
		Suggestions:     sugg,
	}, nil
}
