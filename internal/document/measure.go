package document

import "github.com/mattn/go-runewidth"

// Measurer reports the rendered width of text in points.
type Measurer interface {
	Measure(text string, style Style) float64
}

// cellMeasurer approximates glyph widths from terminal cell widths: an East
// Asian wide character is one em, everything else half an em. Ambiguous
// characters such as ■ are wide, as in Japanese fonts.
type cellMeasurer struct {
	cond *runewidth.Condition
}

func newCellMeasurer() cellMeasurer {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = true
	return cellMeasurer{cond: cond}
}

func (c cellMeasurer) Measure(text string, style Style) float64 {
	return float64(c.cond.StringWidth(text)) * style.Size / 2
}
