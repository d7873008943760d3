package document

import "strings"

// LineKind classifies a line of the minutes by its leading character.
type LineKind int

const (
	KindBody LineKind = iota
	KindHeading
	KindItem
)

const (
	headingPrefix = "■"
	itemPrefix    = "・"
	dashPrefix    = "-"
)

// Style is how a line is drawn.
type Style struct {
	Bold bool
	Size float64
}

// Line is one placed line; Y is the text baseline.
type Line struct {
	Text  string
	Kind  LineKind
	X     float64
	Y     float64
	Style Style
}

// Page is one finished fixed-size page.
type Page struct {
	Number int
	Lines  []Line
}

// Layout holds page geometry and per-kind styling, in points.
type Layout struct {
	PageWidth      float64
	PageHeight     float64
	Margin         float64
	HeadingSpacing float64
	BodySpacing    float64
	HeadingSize    float64
	BodySize       float64
	ItemIndent     float64
}

// DefaultLayout is an A4 page with 40pt margins.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:      595,
		PageHeight:     842,
		Margin:         40,
		HeadingSpacing: 32,
		BodySpacing:    24,
		HeadingSize:    20,
		BodySize:       14,
		ItemIndent:     40,
	}
}

func (l Layout) UsableWidth() float64  { return l.PageWidth - 2*l.Margin }
func (l Layout) UsableHeight() float64 { return l.PageHeight - 2*l.Margin }

// BodyStyle is the style lines are measured in for wrapping.
func (l Layout) BodyStyle() Style { return Style{Size: l.BodySize} }

// Classify looks only at the first character of the line.
func Classify(line string) LineKind {
	switch {
	case strings.HasPrefix(line, headingPrefix):
		return KindHeading
	case strings.HasPrefix(line, itemPrefix), strings.HasPrefix(line, dashPrefix):
		return KindItem
	default:
		return KindBody
	}
}

// place returns style, x position and vertical advance for a kind.
func (l Layout) place(kind LineKind) (Style, float64, float64) {
	switch kind {
	case KindHeading:
		return Style{Bold: true, Size: l.HeadingSize}, l.Margin, l.HeadingSpacing
	case KindItem:
		return Style{Bold: true, Size: l.BodySize}, l.Margin + l.ItemIndent, l.BodySpacing
	default:
		return Style{Size: l.BodySize}, l.Margin, l.BodySpacing
	}
}

// Wrap splits line rune by rune into the fewest segments that each measure
// within maxWidth. It does not look for word boundaries, so a word may be
// split. A single rune wider than maxWidth gets a segment of its own.
func Wrap(line string, maxWidth float64, measure func(string) float64) []string {
	if measure(line) <= maxWidth {
		return []string{line}
	}

	var (
		segments []string
		current  []rune
	)
	for _, r := range line {
		next := append(current, r)
		if len(current) > 0 && measure(string(next)) > maxWidth {
			segments = append(segments, string(current))
			current = []rune{r}
			continue
		}
		current = next
	}
	if len(current) > 0 {
		segments = append(segments, string(current))
	}
	return segments
}

// Paginate wraps every line of text and places it on pages. A line that
// exactly reaches the bottom margin stays on the current page.
func (l Layout) Paginate(text string, m Measurer) []Page {
	body := l.BodyStyle()
	measure := func(s string) float64 { return m.Measure(s, body) }

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		lines = append(lines, Wrap(strings.TrimSuffix(raw, "\r"), l.UsableWidth(), measure)...)
	}

	var pages []Page
	page := Page{Number: 1}
	y := l.Margin
	bottom := l.PageHeight - l.Margin

	for _, text := range lines {
		kind := Classify(text)
		style, x, spacing := l.place(kind)

		if y+spacing > bottom {
			pages = append(pages, page)
			page = Page{Number: page.Number + 1}
			y = l.Margin
		}

		page.Lines = append(page.Lines, Line{Text: text, Kind: kind, X: x, Y: y, Style: style})
		y += spacing
	}

	return append(pages, page)
}
