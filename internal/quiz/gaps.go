package quiz

import (
	"fmt"
	"regexp"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

const (
	DefaultGapOpen  = "[["
	DefaultGapClose = "]]"
)

// GapCounter finds gap markers in question text and derives item counts and
// question numbering from them.
type GapCounter struct {
	open    string
	close   string
	pattern *regexp.Regexp
}

// NewGapCounter builds a counter for the given marker delimiters. Empty
// delimiters fall back to the defaults.
func NewGapCounter(open, close string) *GapCounter {
	if open == "" {
		open = DefaultGapOpen
	}
	if close == "" {
		close = DefaultGapClose
	}
	pattern := regexp.MustCompile(regexp.QuoteMeta(open) + `(.*?)` + regexp.QuoteMeta(close))
	return &GapCounter{open: open, close: close, pattern: pattern}
}

var defaultGaps = NewGapCounter(DefaultGapOpen, DefaultGapClose)

// DefaultGapCounter returns the counter for "[[...]]" markers.
func DefaultGapCounter() *GapCounter {
	return defaultGaps
}

// Delimiters returns the marker pair.
func (g *GapCounter) Delimiters() (string, string) {
	return g.open, g.close
}

// CountGaps returns the number of gap markers in text.
func (g *GapCounter) CountGaps(text string) int {
	return len(g.pattern.FindAllStringIndex(text, -1))
}

// CountItems returns how many scoreable items the question contributes.
func (g *GapCounter) CountItems(q models.Question) int {
	switch {
	case q.Type.IsContentOnly():
		return 0
	case q.Type.IsGapped():
		if n := g.CountGaps(q.GapSource()); n > 0 {
			return n
		}
		return 1
	default:
		return 1
	}
}

// TotalItems sums CountItems over questions.
func (g *GapCounter) TotalItems(questions []models.Question) int {
	total := 0
	for _, q := range questions {
		total += g.CountItems(q)
	}
	return total
}

// DisplayNumber returns the number shown for questions[index]: one more than
// the items of every earlier question. Zero-count questions are not numbered
// and get 0.
func (g *GapCounter) DisplayNumber(questions []models.Question, index int) int {
	if index < 0 || index >= len(questions) {
		return 0
	}
	if g.CountItems(questions[index]) == 0 {
		return 0
	}
	return g.TotalItems(questions[:index]) + 1
}

// DisplayLabel renders "Question N", or "Questions N–M" when the question spans
// several gaps.
func (g *GapCounter) DisplayLabel(questions []models.Question, index int) string {
	first := g.DisplayNumber(questions, index)
	if first == 0 {
		return ""
	}
	count := g.CountItems(questions[index])
	if count == 1 {
		return fmt.Sprintf("Question %d", first)
	}
	return fmt.Sprintf("Questions %d–%d", first, first+count-1)
}

// Segment is one piece of gapped text: literal text, or a gap with its index.
type Segment struct {
	Text  string `json:"text,omitempty"`
	IsGap bool   `json:"is_gap"`
	Gap   int    `json:"gap"`
	Hint  string `json:"hint,omitempty"`
}

// Segments splits text into literal and gap segments in source order.
func (g *GapCounter) Segments(text string) []Segment {
	matches := g.pattern.FindAllStringSubmatchIndex(text, -1)
	segments := make([]Segment, 0, 2*len(matches)+1)

	last := 0
	for i, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]]})
		}
		segments = append(segments, Segment{IsGap: true, Gap: i, Hint: text[m[2]:m[3]]})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// CountItems counts with the default "[[...]]" markers.
func CountItems(q models.Question) int {
	return defaultGaps.CountItems(q)
}

// DisplayNumber numbers with the default "[[...]]" markers.
func DisplayNumber(questions []models.Question, index int) int {
	return defaultGaps.DisplayNumber(questions, index)
}

// TotalItems sums item counts with the default "[[...]]" markers.
func TotalItems(questions []models.Question) int {
	return defaultGaps.TotalItems(questions)
}
